// Package httpinv implements the importer's Inventory interface against a
// remote inventory system's REST API, authenticated with a static token.
package httpinv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/importer"
)

// Client talks to the inventory API. It implements importer.Inventory.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an inventory API client.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// CheckReadiness reports whether the inventory API is reachable.
func (c *Client) CheckReadiness(ctx context.Context) error {
	var resp listResponse[typeRecord]
	return c.get(ctx, "/api/dcim/location-types/", url.Values{"limit": {"1"}}, &resp)
}

// GetLocationType resolves a pre-provisioned type record by name.
func (c *Client) GetLocationType(ctx context.Context, name string) (domain.LocationType, error) {
	var resp listResponse[typeRecord]
	params := url.Values{"name": {name}}
	if err := c.get(ctx, "/api/dcim/location-types/", params, &resp); err != nil {
		return domain.LocationType{}, err
	}
	if len(resp.Results) == 0 {
		return domain.LocationType{}, fmt.Errorf("location type %q not found", name)
	}
	return domain.LocationType{ID: resp.Results[0].ID, Name: resp.Results[0].Name}, nil
}

// GetActiveStatus resolves the singleton "Active" status record.
func (c *Client) GetActiveStatus(ctx context.Context) (domain.Status, error) {
	var resp listResponse[typeRecord]
	params := url.Values{"name": {domain.StatusActive}}
	if err := c.get(ctx, "/api/extras/statuses/", params, &resp); err != nil {
		return domain.Status{}, err
	}
	if len(resp.Results) == 0 {
		return domain.Status{}, fmt.Errorf("status %q not found", domain.StatusActive)
	}
	return domain.Status{ID: resp.Results[0].ID, Name: resp.Results[0].Name}, nil
}

// GetOrCreateLocation looks a location up by the key's identity fields and
// creates one with the defaults when the query returns no match.
func (c *Client) GetOrCreateLocation(ctx context.Context, key importer.LocationKey, defaults importer.LocationDefaults) (*domain.Location, bool, error) {
	params := url.Values{"name": {key.Name}}
	if key.Type != nil {
		params.Set("location_type", key.Type.ID.String())
	}
	if key.Parent != nil {
		params.Set("parent", key.Parent.ID.String())
	}

	var resp listResponse[locationRecord]
	if err := c.get(ctx, "/api/dcim/locations/", params, &resp); err != nil {
		return nil, false, err
	}
	if len(resp.Results) > 0 {
		loc := resp.Results[0].toDomain()
		loc.Parent = key.Parent
		return loc, false, nil
	}

	body := locationWrite{
		Name:         key.Name,
		LocationType: defaults.Type.ID,
		Status:       defaults.Status.ID,
	}
	if defaults.Parent != nil {
		id := defaults.Parent.ID
		body.Parent = &id
	}

	var created locationRecord
	if err := c.send(ctx, http.MethodPost, "/api/dcim/locations/", body, &created); err != nil {
		return nil, false, fmt.Errorf("create location %q: %w", key.Name, err)
	}
	loc := created.toDomain()
	loc.Type = defaults.Type
	loc.Status = defaults.Status
	loc.Parent = defaults.Parent
	return loc, true, nil
}

// SaveLocation persists in-place mutation of an existing record.
func (c *Client) SaveLocation(ctx context.Context, loc *domain.Location) error {
	body := locationWrite{
		Name:         loc.Name,
		LocationType: loc.Type.ID,
		Status:       loc.Status.ID,
	}
	if loc.Parent != nil {
		id := loc.Parent.ID
		body.Parent = &id
	}

	path := fmt.Sprintf("/api/dcim/locations/%s/", loc.ID)
	if err := c.send(ctx, http.MethodPatch, path, body, nil); err != nil {
		return fmt.Errorf("update location %q: %w", loc.Name, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventory API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("inventory API error: status %d: %s", resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Inventory API wire types.

type listResponse[T any] struct {
	Results []T `json:"results"`
}

type typeRecord struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type locationRecord struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	LocationType typeRecord  `json:"location_type"`
	Status       typeRecord  `json:"status"`
	Parent       *typeRecord `json:"parent"`
	Created      time.Time   `json:"created,omitempty"`
	LastUpdated  time.Time   `json:"last_updated,omitempty"`
}

func (r locationRecord) toDomain() *domain.Location {
	return &domain.Location{
		ID:        r.ID,
		Name:      r.Name,
		Type:      domain.LocationType{ID: r.LocationType.ID, Name: r.LocationType.Name},
		Status:    domain.Status{ID: r.Status.ID, Name: r.Status.Name},
		CreatedAt: r.Created,
		UpdatedAt: r.LastUpdated,
	}
}

type locationWrite struct {
	Name         string     `json:"name"`
	LocationType uuid.UUID  `json:"location_type"`
	Status       uuid.UUID  `json:"status"`
	Parent       *uuid.UUID `json:"parent,omitempty"`
}
