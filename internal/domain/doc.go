// Package domain models the site inventory location hierarchy and the CSV
// rows that feed it.
//
// # Hierarchy
//
// Locations form a three-level tree:
//
//	State → City → Site (Data Center or Branch)
//
// State and City locations are shared infrastructure, created once and reused
// by every site beneath them. They are identified by name plus type (plus
// parent for cities). Sites are identified by bare name: a site name is
// globally unique, so re-importing a site under a different city moves the
// existing record rather than creating a second one.
//
// # Naming conventions
//
// CSV state tokens are expected to be 2-letter USPS abbreviations ("TX",
// "CA") and are expanded to full names via a fixed table. Tokens not in the
// table pass through title-cased, so a file that already carries "Texas"
// imports cleanly.
//
// Site names encode their kind in a suffix:
//
//	"-DC" → Data Center    e.g. "HQ-DC"
//	"-BR" → Branch         e.g. "BR1-BR"
//
// Any other suffix is a hard error; no site reaches the store without a kind.
//
// # CSV format
//
// The header row must contain the columns "name", "city", and "state"
// (case-sensitive). Additional columns are ignored. Rows are processed in
// file order.
package domain
