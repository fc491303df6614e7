// Package postgres implements the importer's Inventory interface directly on
// a Postgres database using database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/importer"
	_ "github.com/lib/pq" // postgres driver
)

// Inventory is a Postgres-backed inventory store.
type Inventory struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the database at dsn and verifies the connection.
func Open(dsn string, logger *slog.Logger) (*Inventory, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Inventory{db: db, logger: logger}, nil
}

// NewInventory wraps an existing database handle. Used by tests.
func NewInventory(db *sql.DB, logger *slog.Logger) *Inventory {
	return &Inventory{db: db, logger: logger}
}

// Close releases the underlying connection pool.
func (inv *Inventory) Close() error {
	return inv.db.Close()
}

// CheckReadiness reports whether the database is reachable.
func (inv *Inventory) CheckReadiness(ctx context.Context) error {
	return inv.db.PingContext(ctx)
}

// GetOrCreateLocation looks a location up by the key's identity fields and
// inserts one with the defaults when absent. The lookup-then-insert is not
// atomic across concurrent runs; the unique indexes on locations make the
// race surface as a constraint error rather than a duplicate.
func (inv *Inventory) GetOrCreateLocation(ctx context.Context, key importer.LocationKey, defaults importer.LocationDefaults) (*domain.Location, bool, error) {
	loc, err := inv.findLocation(ctx, key)
	if err == nil {
		return loc, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup location %q: %w", key.Name, err)
	}

	now := domain.Now()
	created := &domain.Location{
		ID:        uuid.New(),
		Name:      key.Name,
		Type:      defaults.Type,
		Status:    defaults.Status,
		Parent:    defaults.Parent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var parentID any
	if created.Parent != nil {
		parentID = created.Parent.ID
	}
	_, err = inv.db.ExecContext(ctx,
		`INSERT INTO locations (id, name, type_id, status_id, parent_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		created.ID, created.Name, created.Type.ID, created.Status.ID, parentID, now, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert location %q: %w", key.Name, err)
	}
	return created, true, nil
}

// findLocation queries by name, optionally constrained by type and parent.
func (inv *Inventory) findLocation(ctx context.Context, key importer.LocationKey) (*domain.Location, error) {
	query := strings.Builder{}
	query.WriteString(
		`SELECT l.id, l.name, t.id, t.name, s.id, s.name, l.created_at, l.updated_at
		 FROM locations l
		 JOIN location_types t ON t.id = l.type_id
		 JOIN statuses s ON s.id = l.status_id
		 WHERE l.name = $1`)
	args := []any{key.Name}

	if key.Type != nil {
		args = append(args, key.Type.ID)
		query.WriteString(" AND l.type_id = $" + strconv.Itoa(len(args)))
	}
	if key.Parent != nil {
		args = append(args, key.Parent.ID)
		query.WriteString(" AND l.parent_id = $" + strconv.Itoa(len(args)))
	}

	var loc domain.Location
	row := inv.db.QueryRowContext(ctx, query.String(), args...)
	if err := row.Scan(
		&loc.ID, &loc.Name,
		&loc.Type.ID, &loc.Type.Name,
		&loc.Status.ID, &loc.Status.Name,
		&loc.CreatedAt, &loc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	loc.Parent = key.Parent
	return &loc, nil
}

// GetLocationType resolves a pre-provisioned type record by name.
func (inv *Inventory) GetLocationType(ctx context.Context, name string) (domain.LocationType, error) {
	var t domain.LocationType
	err := inv.db.QueryRowContext(ctx,
		`SELECT id, name FROM location_types WHERE name = $1`, name,
	).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LocationType{}, fmt.Errorf("location type %q not found", name)
	}
	if err != nil {
		return domain.LocationType{}, fmt.Errorf("lookup location type %q: %w", name, err)
	}
	return t, nil
}

// GetActiveStatus resolves the singleton "Active" status record.
func (inv *Inventory) GetActiveStatus(ctx context.Context) (domain.Status, error) {
	var s domain.Status
	err := inv.db.QueryRowContext(ctx,
		`SELECT id, name FROM statuses WHERE name = $1`, domain.StatusActive,
	).Scan(&s.ID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Status{}, fmt.Errorf("status %q not found", domain.StatusActive)
	}
	if err != nil {
		return domain.Status{}, fmt.Errorf("lookup status %q: %w", domain.StatusActive, err)
	}
	return s, nil
}

// SaveLocation persists in-place mutation of an existing record.
func (inv *Inventory) SaveLocation(ctx context.Context, loc *domain.Location) error {
	var parentID any
	if loc.Parent != nil {
		parentID = loc.Parent.ID
	}
	loc.UpdatedAt = domain.Now()

	res, err := inv.db.ExecContext(ctx,
		`UPDATE locations SET type_id = $1, status_id = $2, parent_id = $3, updated_at = $4 WHERE id = $5`,
		loc.Type.ID, loc.Status.ID, parentID, loc.UpdatedAt, loc.ID,
	)
	if err != nil {
		return fmt.Errorf("update location %q: %w", loc.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update location %q: no such record", loc.Name)
	}
	return nil
}
