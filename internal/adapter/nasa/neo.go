// Package nasa wraps the NASA NeoWs close approach feed and the JPL
// Small-Body Database.
package nasa

import (
	"context"
	"net/url"
	"slices"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	defaultFeedURL = "https://api.nasa.gov/neo/rest/v1/feed"

	feedWindow = 7 * 24 * time.Hour
	// MaxRecentNEOs caps the number of close approaches returned.
	MaxRecentNEOs = 20
)

// FeedClient lists recent close approaches from NeoWs.
type FeedClient struct {
	client  *upstream.Client
	apiKey  string
	clock   clockwork.Clock
	baseURL string
}

// NewFeedClient creates a NeoWs feed client. The clock fixes the end of the
// seven day window.
func NewFeedClient(client *upstream.Client, apiKey string, clock clockwork.Clock) *FeedClient {
	return &FeedClient{client: client, apiKey: apiKey, clock: clock, baseURL: defaultFeedURL}
}

// RecentNEOs returns up to MaxRecentNEOs close approaches from the last seven
// days, ordered by approach date.
func (c *FeedClient) RecentNEOs(ctx context.Context) ([]domain.NEOSummary, error) {
	end := c.clock.Now().UTC()
	params := url.Values{
		"start_date": {end.Add(-feedWindow).Format(time.DateOnly)},
		"end_date":   {end.Format(time.DateOnly)},
		"api_key":    {c.apiKey},
	}

	var resp feedResponse
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}
	return resp.summaries(MaxRecentNEOs), nil
}

// NeoWs response types.

type feedResponse struct {
	NearEarthObjects map[string][]neo `json:"near_earth_objects"`
}

type neo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EstimatedDiameter struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	Hazardous         bool            `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData []closeApproach `json:"close_approach_data"`
}

type closeApproach struct {
	Date             string `json:"close_approach_date"`
	RelativeVelocity struct {
		KmPerSecond float64 `json:"kilometers_per_second,string"`
	} `json:"relative_velocity"`
	MissDistance struct {
		Kilometers float64 `json:"kilometers,string"`
	} `json:"miss_distance"`
}

func (r feedResponse) summaries(limit int) []domain.NEOSummary {
	dates := make([]string, 0, len(r.NearEarthObjects))
	for d := range r.NearEarthObjects {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	out := make([]domain.NEOSummary, 0, limit)
	for _, d := range dates {
		for _, n := range r.NearEarthObjects[d] {
			if len(n.CloseApproachData) == 0 {
				continue
			}
			ca := n.CloseApproachData[0]
			out = append(out, domain.NEOSummary{
				ID:             n.ID,
				Name:           n.Name,
				DiameterMinM:   n.EstimatedDiameter.Meters.Min,
				DiameterMaxM:   n.EstimatedDiameter.Meters.Max,
				Hazardous:      n.Hazardous,
				VelocityKmS:    ca.RelativeVelocity.KmPerSecond,
				MissDistanceKm: ca.MissDistance.Kilometers,
				ApproachDate:   ca.Date,
			})
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// SampleNEOs is the static list served when the feed is unavailable.
func SampleNEOs() []domain.NEOSummary {
	return []domain.NEOSummary{
		{
			ID:             "IMPACTOR-2025",
			Name:           "Impactor-2025",
			DiameterMinM:   140,
			DiameterMaxM:   310,
			Hazardous:      true,
			VelocityKmS:    25.5,
			MissDistanceKm: 75000,
			ApproachDate:   "2025-12-31",
		},
		{
			ID:             "99942",
			Name:           "99942 Apophis (2004 MN4)",
			DiameterMinM:   310,
			DiameterMaxM:   340,
			Hazardous:      true,
			VelocityKmS:    7.42,
			MissDistanceKm: 31600,
			ApproachDate:   "2029-04-13",
		},
		{
			ID:             "101955",
			Name:           "101955 Bennu (1999 RQ36)",
			DiameterMinM:   490,
			DiameterMaxM:   492,
			Hazardous:      true,
			VelocityKmS:    27.7,
			MissDistanceKm: 480000,
			ApproachDate:   "2135-09-25",
		},
	}
}
