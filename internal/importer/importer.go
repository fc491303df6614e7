// Package importer implements the hierarchy upsert at the heart of the
// service: each CSV row is resolved into a State → City → Site chain in the
// inventory store, creating missing ancestors and upserting the site leaf.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/observability"
)

// LocationKey identifies a location for lookup-or-insert. A nil Type or
// Parent means that field does not participate in the match: sites are keyed
// on bare name, states on name+type, cities on name+type+parent.
type LocationKey struct {
	Name   string
	Type   *domain.LocationType
	Parent *domain.Location
}

// LocationDefaults are applied only when the lookup misses and a record is
// created. An existing record is returned unchanged.
type LocationDefaults struct {
	Type   domain.LocationType
	Status domain.Status
	Parent *domain.Location
}

// Inventory is the narrow surface the importer needs from the external
// inventory store. Implementations own all persistence; the importer only
// holds transient references during a run.
type Inventory interface {
	// GetOrCreateLocation looks up a location by the key's identity fields,
	// inserting one with the given defaults when absent. The bool reports
	// whether a record was created.
	GetOrCreateLocation(ctx context.Context, key LocationKey, defaults LocationDefaults) (*domain.Location, bool, error)

	// GetLocationType resolves a pre-provisioned type record by name
	// ("State", "City", "Data Center", "Branch").
	GetLocationType(ctx context.Context, name string) (domain.LocationType, error)

	// GetActiveStatus resolves the singleton "Active" status record.
	GetActiveStatus(ctx context.Context) (domain.Status, error)

	// SaveLocation persists in-place mutation of an existing record.
	SaveLocation(ctx context.Context, loc *domain.Location) error
}

// Importer runs CSV imports against an inventory store.
type Importer struct {
	store   Inventory
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Importer.
func New(store Inventory, logger *slog.Logger, metrics *observability.Metrics) *Importer {
	return &Importer{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Run imports one CSV blob. Rows are processed strictly in file order, one at
// a time; the first failing row aborts the run and rows already committed are
// not rolled back. On success the summary lists every touched site leaf.
func (im *Importer) Run(ctx context.Context, csvData string) (domain.Summary, error) {
	start := domain.Now()

	rows, err := domain.ParseSiteCSV(csvData)
	if err != nil {
		return domain.Summary{}, err
	}

	stateType, err := im.store.GetLocationType(ctx, domain.TypeState)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("resolve type %q: %w", domain.TypeState, err)
	}
	cityType, err := im.store.GetLocationType(ctx, domain.TypeCity)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("resolve type %q: %w", domain.TypeCity, err)
	}
	active, err := im.store.GetActiveStatus(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("resolve status %q: %w", domain.StatusActive, err)
	}

	touched := make([]*domain.Location, 0, len(rows))
	for _, row := range rows {
		site, err := im.processRow(ctx, row, stateType, cityType, active)
		if err != nil {
			im.logger.Error("row processing failed", "name", row.Name, "error", err)
			im.metrics.ImportErrors.Inc()
			return domain.Summary{}, fmt.Errorf("processing location %s: %w", row.Name, err)
		}
		touched = append(touched, site)
		im.metrics.RowsProcessed.Inc()
	}

	summary := domain.Summary{
		Locations:   touched,
		StartedAt:   start,
		CompletedAt: domain.Now(),
	}
	im.metrics.ImportDuration.Observe(summary.CompletedAt.Sub(start).Seconds())
	im.logger.Info("import complete", "processed", summary.Processed())
	return summary, nil
}

// processRow walks one row through the three-level upsert:
// ResolveState → ResolveCity → ResolveSite.
func (im *Importer) processRow(ctx context.Context, row domain.SiteRow, stateType, cityType domain.LocationType, active domain.Status) (*domain.Location, error) {
	stateName := domain.NormalizeState(row.State)
	state, created, err := im.store.GetOrCreateLocation(ctx,
		LocationKey{Name: stateName, Type: &stateType},
		LocationDefaults{Type: stateType, Status: active},
	)
	if err != nil {
		return nil, fmt.Errorf("resolve state %q: %w", stateName, err)
	}
	if created {
		im.logger.Info("created state location", "name", stateName)
		im.metrics.LocationsCreated.WithLabelValues("state").Inc()
	}

	city, created, err := im.store.GetOrCreateLocation(ctx,
		LocationKey{Name: row.City, Type: &cityType, Parent: state},
		LocationDefaults{Type: cityType, Status: active, Parent: state},
	)
	if err != nil {
		return nil, fmt.Errorf("resolve city %q: %w", row.City, err)
	}
	if created {
		im.logger.Info("created city location", "name", row.City, "state", stateName)
		im.metrics.LocationsCreated.WithLabelValues("city").Inc()
	}

	kind, err := domain.ClassifySite(row.Name)
	if err != nil {
		return nil, err
	}
	siteType, err := im.store.GetLocationType(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("resolve type %q: %w", kind, err)
	}

	// Sites are keyed on bare name. A name seen before under a different
	// city is relocated to the new chain, not duplicated: last write wins.
	site, created, err := im.store.GetOrCreateLocation(ctx,
		LocationKey{Name: row.Name},
		LocationDefaults{Type: siteType, Status: active, Parent: city},
	)
	if err != nil {
		return nil, fmt.Errorf("resolve site %q: %w", row.Name, err)
	}

	action := "created"
	if !created {
		site.Type = siteType
		site.Status = active
		site.Parent = city
		if err := im.store.SaveLocation(ctx, site); err != nil {
			return nil, fmt.Errorf("update site %q: %w", row.Name, err)
		}
		action = "updated"
		im.metrics.SitesUpdated.Inc()
	} else {
		im.metrics.LocationsCreated.WithLabelValues("site").Inc()
	}

	im.logger.Info(action+" site location",
		"name", site.Name,
		"type", siteType.Name,
		"city", row.City,
		"state", stateName,
	)
	return site, nil
}
