package domain

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// requiredColumns are the header names a site CSV must carry, case-sensitive.
var requiredColumns = []string{"name", "city", "state"}

// ParseSiteCSV parses a CSV blob into site rows. The header row must contain
// the columns "name", "city", and "state"; extra columns are ignored and row
// order is preserved. Field values are trimmed of surrounding whitespace.
func ParseSiteCSV(data string) ([]SiteRow, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(data)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", col)
		}
	}

	rows := make([]SiteRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, SiteRow{
			Name:  strings.TrimSpace(rec[colIdx["name"]]),
			City:  strings.TrimSpace(rec[colIdx["city"]]),
			State: strings.TrimSpace(rec[colIdx["state"]]),
		})
	}
	return rows, nil
}
