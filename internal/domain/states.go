package domain

import "strings"

// stateNames maps USPS 2-letter abbreviations to full state names.
// Lookups are case-sensitive: only the canonical uppercase form matches.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// NormalizeState expands a 2-letter abbreviation to the full state name.
// Tokens not in the table fall back to a title-cased transform, so inputs
// that already carry a full name ("Texas", "new york") pass through with a
// cosmetic normalization instead of failing.
func NormalizeState(state string) string {
	if full, ok := stateNames[state]; ok {
		return full
	}
	return titleCase(state)
}

// IsStateAbbreviation reports whether state is a canonical USPS 2-letter
// abbreviation.
func IsStateAbbreviation(state string) bool {
	_, ok := stateNames[state]
	return ok
}

// titleCase capitalizes the first letter of each space-separated word and
// lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
