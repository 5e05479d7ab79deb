// Package gbif searches species occurrences through the Global Biodiversity
// Information Facility API.
package gbif

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	defaultBaseURL = "https://api.gbif.org/v1/occurrence/search"

	kmPerDegree     = 111.0
	occurrenceLimit = 100
	// MaxSpecies caps the species list to the most frequently observed taxa.
	MaxSpecies = 50
)

// Client implements species searches against GBIF.
type Client struct {
	client  *upstream.Client
	baseURL string
}

// NewClient creates a GBIF client.
func NewClient(client *upstream.Client) *Client {
	return &Client{client: client, baseURL: defaultBaseURL}
}

// SpeciesNear returns species of the given kingdom observed inside a square
// of half-width radiusKm around centre. Occurrences are grouped by species
// key and ordered by descending count.
func (c *Client) SpeciesNear(ctx context.Context, centre domain.Coordinates, radiusKm float64, kingdom domain.Kingdom) ([]domain.Species, error) {
	params := url.Values{
		"hasCoordinate":      {"true"},
		"hasGeospatialIssue": {"false"},
		"kingdom":            {string(kingdom)},
		"geometry":           {boundingPolygon(centre, radiusKm)},
		"limit":              {strconv.Itoa(occurrenceLimit)},
		"offset":             {"0"},
	}

	var resp searchResponse
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}
	return groupBySpecies(resp.Results, MaxSpecies), nil
}

// boundingPolygon is a WKT polygon, counter-clockwise, in lon/lat order.
func boundingPolygon(centre domain.Coordinates, radiusKm float64) string {
	d := radiusKm / kmPerDegree
	minLat, maxLat := centre.Lat-d, centre.Lat+d
	minLon, maxLon := centre.Lon-d, centre.Lon+d
	return fmt.Sprintf("POLYGON((%[1]g %[3]g, %[2]g %[3]g, %[2]g %[4]g, %[1]g %[4]g, %[1]g %[3]g))",
		minLon, maxLon, minLat, maxLat)
}

func groupBySpecies(results []occurrence, limit int) []domain.Species {
	byKey := make(map[int64]*domain.Species)
	order := make([]int64, 0)
	for _, o := range results {
		if o.Species == "" || o.SpeciesKey == 0 {
			continue
		}
		s, ok := byKey[o.SpeciesKey]
		if !ok {
			scientific := o.ScientificName
			if scientific == "" {
				scientific = o.Species
			}
			s = &domain.Species{
				Key:             o.SpeciesKey,
				Name:            o.Species,
				ScientificName:  scientific,
				Kingdom:         o.Kingdom,
				Phylum:          o.Phylum,
				Class:           o.Class,
				Order:           o.Order,
				Family:          o.Family,
				Genus:           o.Genus,
				VernacularNames: o.VernacularNames.names(),
			}
			byKey[o.SpeciesKey] = s
			order = append(order, o.SpeciesKey)
		}
		s.Count++
	}

	out := make([]domain.Species, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	// Stable keeps first-seen order among equal counts.
	slices.SortStableFunc(out, func(a, b domain.Species) int {
		return b.Count - a.Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GBIF response types.

type searchResponse struct {
	Results []occurrence `json:"results"`
}

type occurrence struct {
	SpeciesKey      int64           `json:"speciesKey"`
	Species         string          `json:"species"`
	ScientificName  string          `json:"scientificName"`
	Kingdom         string          `json:"kingdom"`
	Phylum          string          `json:"phylum"`
	Class           string          `json:"class"`
	Order           string          `json:"order"`
	Family          string          `json:"family"`
	Genus           string          `json:"genus"`
	VernacularNames vernacularNames `json:"vernacularNames"`
}

// vernacularNames accepts both plain strings and {"vernacularName": ...}
// objects.
type vernacularNames []string

func (v *vernacularNames) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil //nolint:nilerr // malformed names are dropped, not fatal
	}
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil {
			*v = append(*v, s)
			continue
		}
		var obj struct {
			VernacularName string `json:"vernacularName"`
		}
		if json.Unmarshal(r, &obj) == nil && obj.VernacularName != "" {
			*v = append(*v, obj.VernacularName)
		}
	}
	return nil
}

func (v vernacularNames) names() []string {
	if len(v) == 0 {
		return nil
	}
	return slices.Clone(v)
}
