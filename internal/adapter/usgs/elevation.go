// Package usgs wraps the USGS Elevation Point Query Service and the USGS
// earthquake catalog.
package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	defaultEPQSURL = "https://epqs.nationalmap.gov/v1/json"

	// EPQS reports this sentinel for points outside its coverage (open water,
	// outside the US DEM mosaics).
	epqsNoData = -1000000.0
)

// ElevationClient implements domain.ElevationProvider using EPQS.
type ElevationClient struct {
	client  *upstream.Client
	baseURL string
}

// NewElevationClient creates an EPQS elevation provider.
func NewElevationClient(client *upstream.Client) *ElevationClient {
	return &ElevationClient{client: client, baseURL: defaultEPQSURL}
}

func (c *ElevationClient) Name() string {
	return c.client.Name()
}

// Elevation returns metres above sea level at coord.
func (c *ElevationClient) Elevation(ctx context.Context, coord domain.Coordinates) (float64, error) {
	params := url.Values{
		"x":     {strconv.FormatFloat(coord.Lon, 'f', 6, 64)},
		"y":     {strconv.FormatFloat(coord.Lat, 'f', 6, 64)},
		"units": {"Meters"},
		"wkid":  {"4326"},
	}

	var resp epqsResponse
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return 0, err
	}

	v, err := resp.elevation()
	if err != nil {
		return 0, fmt.Errorf("%w: epqs: %w", domain.ErrUpstreamUnavailable, err)
	}
	return v, nil
}

// EPQS response types.

type epqsResponse struct {
	// Value is a number in current responses and a quoted number in older ones.
	Value json.RawMessage `json:"value"`
}

func (r epqsResponse) elevation() (float64, error) {
	raw := strings.Trim(string(r.Value), `"`)
	if raw == "" || raw == "null" {
		return 0, errors.New("missing elevation value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse elevation %q: %w", raw, err)
	}
	if v <= epqsNoData {
		return 0, errors.New("no elevation data at point")
	}
	return v, nil
}
