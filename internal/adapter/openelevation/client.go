// Package openelevation is the fallback elevation provider backed by the
// Open-Elevation public API.
package openelevation

import (
	"context"
	"fmt"
	"net/url"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const defaultBaseURL = "https://api.open-elevation.com/api/v1/lookup"

// Client implements domain.ElevationProvider.
type Client struct {
	client  *upstream.Client
	baseURL string
}

// NewClient creates an Open-Elevation provider.
func NewClient(client *upstream.Client) *Client {
	return &Client{client: client, baseURL: defaultBaseURL}
}

func (c *Client) Name() string {
	return c.client.Name()
}

// Elevation returns metres above sea level at coord.
func (c *Client) Elevation(ctx context.Context, coord domain.Coordinates) (float64, error) {
	params := url.Values{
		"locations": {fmt.Sprintf("%.6f,%.6f", coord.Lat, coord.Lon)},
	}

	var resp response
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, fmt.Errorf("%w: open-elevation: empty results", domain.ErrUpstreamUnavailable)
	}
	return resp.Results[0].Elevation, nil
}

// Open-Elevation response types.

type response struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}
