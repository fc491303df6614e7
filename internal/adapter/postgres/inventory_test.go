package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/importer"
)

var locationColumns = []string{
	"id", "name", "t.id", "t.name", "s.id", "s.name", "created_at", "updated_at",
}

func newMockInventory(t *testing.T) (*Inventory, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewInventory(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestGetLocationType(t *testing.T) {
	inv, mock := newMockInventory(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT id, name FROM location_types`).
		WithArgs("State").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id, "State"))

	lt, err := inv.GetLocationType(context.Background(), "State")
	require.NoError(t, err)
	assert.Equal(t, id, lt.ID)
	assert.Equal(t, "State", lt.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLocationType_NotProvisioned(t *testing.T) {
	inv, mock := newMockInventory(t)

	mock.ExpectQuery(`SELECT id, name FROM location_types`).
		WithArgs("Data Center").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := inv.GetLocationType(context.Background(), "Data Center")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `location type "Data Center" not found`)
}

func TestGetActiveStatus(t *testing.T) {
	inv, mock := newMockInventory(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT id, name FROM statuses`).
		WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id, "Active"))

	s, err := inv.GetActiveStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Active", s.Name)
}

func TestGetOrCreateLocation_ReturnsExisting(t *testing.T) {
	inv, mock := newMockInventory(t)

	stateType := domain.LocationType{ID: uuid.New(), Name: "State"}
	existingID := uuid.New()
	statusID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT l.id, l.name, t.id, t.name, s.id, s.name`).
		WithArgs("Texas", stateType.ID).
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(existingID, "Texas", stateType.ID, "State", statusID, "Active", now, now))

	loc, created, err := inv.GetOrCreateLocation(context.Background(),
		importer.LocationKey{Name: "Texas", Type: &stateType},
		importer.LocationDefaults{},
	)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existingID, loc.ID)
	assert.Equal(t, "Texas", loc.Name)
	assert.Equal(t, "State", loc.Type.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateLocation_InsertsWhenAbsent(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	inv, mock := newMockInventory(t)

	stateType := domain.LocationType{ID: uuid.New(), Name: "State"}
	active := domain.Status{ID: uuid.New(), Name: "Active"}

	mock.ExpectQuery(`SELECT l.id, l.name, t.id, t.name, s.id, s.name`).
		WithArgs("Texas", stateType.ID).
		WillReturnRows(sqlmock.NewRows(locationColumns))

	mock.ExpectExec(`INSERT INTO locations`).
		WithArgs(sqlmock.AnyArg(), "Texas", stateType.ID, active.ID, nil, fixed, fixed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	loc, created, err := inv.GetOrCreateLocation(context.Background(),
		importer.LocationKey{Name: "Texas", Type: &stateType},
		importer.LocationDefaults{Type: stateType, Status: active},
	)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Texas", loc.Name)
	assert.NotEqual(t, uuid.Nil, loc.ID)
	assert.Equal(t, fixed, loc.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateLocation_SiteKeyedOnBareName(t *testing.T) {
	inv, mock := newMockInventory(t)

	branchType := domain.LocationType{ID: uuid.New(), Name: "Branch"}
	statusID := uuid.New()
	now := time.Now()

	// No type or parent constraint: only the name is bound.
	mock.ExpectQuery(`SELECT l.id, l.name, t.id, t.name, s.id, s.name`).
		WithArgs("HQ-BR").
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(uuid.New(), "HQ-BR", branchType.ID, "Branch", statusID, "Active", now, now))

	loc, created, err := inv.GetOrCreateLocation(context.Background(),
		importer.LocationKey{Name: "HQ-BR"},
		importer.LocationDefaults{},
	)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, loc.Parent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateLocation_ParentConstrainsCityLookup(t *testing.T) {
	inv, mock := newMockInventory(t)

	cityType := domain.LocationType{ID: uuid.New(), Name: "City"}
	state := &domain.Location{ID: uuid.New(), Name: "Texas"}
	statusID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`AND l.parent_id = \$3`).
		WithArgs("Austin", cityType.ID, state.ID).
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(uuid.New(), "Austin", cityType.ID, "City", statusID, "Active", now, now))

	loc, created, err := inv.GetOrCreateLocation(context.Background(),
		importer.LocationKey{Name: "Austin", Type: &cityType, Parent: state},
		importer.LocationDefaults{},
	)
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, loc.Parent)
	assert.Equal(t, state.ID, loc.Parent.ID)
}

func TestSaveLocation(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	inv, mock := newMockInventory(t)

	city := &domain.Location{ID: uuid.New(), Name: "Denver"}
	loc := &domain.Location{
		ID:     uuid.New(),
		Name:   "HQ-BR",
		Type:   domain.LocationType{ID: uuid.New(), Name: "Branch"},
		Status: domain.Status{ID: uuid.New(), Name: "Active"},
		Parent: city,
	}

	mock.ExpectExec(`UPDATE locations SET`).
		WithArgs(loc.Type.ID, loc.Status.ID, city.ID, fixed, loc.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, inv.SaveLocation(context.Background(), loc))
	assert.Equal(t, fixed, loc.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLocation_MissingRecord(t *testing.T) {
	inv, mock := newMockInventory(t)

	loc := &domain.Location{ID: uuid.New(), Name: "GHOST-BR"}
	mock.ExpectExec(`UPDATE locations SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := inv.SaveLocation(context.Background(), loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such record")
}
