// Command csvcheck validates a location CSV file offline, before it is
// submitted as an import job. It checks file structure, site name suffixes,
// state values, and duplicate site names, and reports per-phase results.
//
// Usage:
//
//	go run ./cmd/csvcheck -file locations.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jmpettit/location-import-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "path to the CSV file to validate")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*file))
}

func run(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read csv file: %v\n", err)
		return 1
	}

	fmt.Println("=== Location CSV Validation ===")
	fmt.Println()

	structure := &phase{name: "Phase 1: Structure (columns and fields)"}
	rows := validateStructure(structure, string(data))

	phases := []*phase{
		structure,
		validateSiteNames(rows),
		validateStates(rows),
		validateDuplicates(rows),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d\n", len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateStructure parses the CSV and checks every row carries all three
// fields. Returns the parsed rows for the later phases; a parse failure
// returns nil and fails the remaining phases implicitly by leaving them
// nothing to check.
func validateStructure(p *phase, data string) []domain.SiteRow {
	rows, err := domain.ParseSiteCSV(data)
	if err != nil {
		p.errorf("%v", err)
		return nil
	}
	if len(rows) == 0 {
		p.errorf("no data rows")
		return nil
	}

	for i, row := range rows {
		line := i + 2 // header occupies line 1
		if row.Name == "" {
			p.errorf("line %d: empty name", line)
		}
		if row.City == "" {
			p.errorf("line %d: empty city", line)
		}
		if row.State == "" {
			p.errorf("line %d: empty state", line)
		}
	}
	return rows
}

// validateSiteNames checks the -DC / -BR suffix on every site name. A row
// that fails here would abort the whole import job.
func validateSiteNames(rows []domain.SiteRow) *phase {
	p := &phase{name: "Phase 2: Site Names (-DC / -BR suffix)"}
	for i, row := range rows {
		if _, err := domain.ClassifySite(row.Name); err != nil {
			p.errorf("line %d: %v", i+2, err)
		}
	}
	return p
}

// validateStates flags 2-letter state values that are not USPS abbreviations.
// The importer would title-case them into nonsense state records ("Zz").
// Longer values are assumed to be full state names and pass through.
func validateStates(rows []domain.SiteRow) *phase {
	p := &phase{name: "Phase 3: States (USPS abbreviations)"}
	for i, row := range rows {
		if row.State == "" {
			continue // already reported by the structure phase
		}
		if len(row.State) == 2 && !domain.IsStateAbbreviation(row.State) {
			p.errorf("line %d: %q is not a USPS state abbreviation (would import as %q)",
				i+2, row.State, domain.NormalizeState(row.State))
		}
	}
	return p
}

// validateDuplicates flags repeated site names. The importer keys sites on
// bare name, so a later duplicate silently relocates the earlier one.
func validateDuplicates(rows []domain.SiteRow) *phase {
	p := &phase{name: "Phase 4: Duplicates (site names)"}
	firstSeen := make(map[string]int, len(rows))
	for i, row := range rows {
		line := i + 2
		if prev, ok := firstSeen[row.Name]; ok {
			p.errorf("line %d: duplicate site name %q (first seen on line %d, this row wins)",
				line, row.Name, prev)
			continue
		}
		firstSeen[row.Name] = line
	}
	return p
}
