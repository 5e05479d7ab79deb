// Package overpass finds settlements near a point through the OpenStreetMap
// Overpass API.
package overpass

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const defaultBaseURL = "http://overpass-api.de/api/interpreter"

// Client implements settlement lookups against Overpass.
type Client struct {
	client  *upstream.Client
	baseURL string
}

// NewClient creates an Overpass client.
func NewClient(client *upstream.Client) *Client {
	return &Client{client: client, baseURL: defaultBaseURL}
}

// PlacesWithin returns city, town, village and hamlet nodes within radiusM
// metres of centre, with their great-circle distance rounded to 0.01 km.
// Nodes without a name are skipped.
func (c *Client) PlacesWithin(ctx context.Context, centre domain.Coordinates, radiusM float64) ([]domain.Place, error) {
	form := url.Values{"data": {buildQuery(centre, radiusM)}}

	var resp response
	if err := c.client.PostFormJSON(ctx, c.baseURL, form, &resp); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		coord := domain.Coordinates{Lat: el.Lat, Lon: el.Lon}
		places = append(places, domain.Place{
			Name:        name,
			Type:        domain.PlaceType(el.Tags["place"]),
			Population:  parsePopulation(el.Tags["population"]),
			Coordinates: coord,
			DistanceKm:  math.Round(domain.HaversineKm(centre, coord)*100) / 100,
		})
	}
	return places, nil
}

func buildQuery(centre domain.Coordinates, radiusM float64) string {
	return fmt.Sprintf(`[out:json];
(
  node["place"~"city|town|village|hamlet"](around:%.0f,%.6f,%.6f);
);
out;`, radiusM, centre.Lat, centre.Lon)
}

// parsePopulation reads OSM population tags such as "12500" or "1,234,567".
// Unparseable values yield 0.
func parsePopulation(tag string) int {
	cleaned := strings.NewReplacer(",", "", " ", "", ".", "").Replace(tag)
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Overpass response types.

type response struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}
