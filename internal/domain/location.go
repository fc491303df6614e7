package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Well-known location type names as provisioned in the inventory store.
const (
	TypeState      = "State"
	TypeCity       = "City"
	TypeDataCenter = "Data Center"
	TypeBranch     = "Branch"
)

// StatusActive is the singleton status applied to every location this
// importer touches.
const StatusActive = "Active"

// LocationType is a reference to a pre-provisioned type record in the store.
type LocationType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Status is a reference to a pre-provisioned status record in the store.
type Status struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Location is a node in the inventory hierarchy. Records are owned by the
// external store; the importer holds them only for the duration of a run and
// mutates them by reference when a site is re-imported.
type Location struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      LocationType `json:"location_type"`
	Status    Status       `json:"status"`
	Parent    *Location    `json:"parent,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
	UpdatedAt time.Time    `json:"updated_at,omitempty"`
}

// SiteRow is one parsed CSV line: a site name plus the city and state it
// belongs under. Rows are consumed immediately and not retained after the
// hierarchy write completes.
type SiteRow struct {
	Name  string
	City  string
	State string
}

// Summary is the result of one import run: the leaf locations touched, in
// row order, and the window the run covered.
type Summary struct {
	Locations   []*Location
	StartedAt   time.Time
	CompletedAt time.Time
}

// Processed returns the number of leaf rows that completed.
func (s Summary) Processed() int {
	return len(s.Locations)
}

// Message renders the human-readable run result.
func (s Summary) Message() string {
	return fmt.Sprintf("Successfully processed %d locations", len(s.Locations))
}
