package usgs

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

const defaultEarthquakeURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Seismic history query window.
const (
	historyRadiusKm  = 500
	historyWindow    = 365 * 24 * time.Hour
	historyMinMag    = 4.0
	historyMaxEvents = 2000

	// SeismicSource tags histories read from the catalog.
	SeismicSource = "usgs"
)

// EarthquakeClient implements domain.SeismicHistoryProvider using the USGS
// FDSN event service.
type EarthquakeClient struct {
	client  *upstream.Client
	clock   clockwork.Clock
	baseURL string
}

// NewEarthquakeClient creates a seismic history provider. The clock fixes the
// end of the lookup window.
func NewEarthquakeClient(client *upstream.Client, clock clockwork.Clock) *EarthquakeClient {
	return &EarthquakeClient{client: client, clock: clock, baseURL: defaultEarthquakeURL}
}

// SeismicHistory summarizes M4.0+ events within 500 km over the last 365 days.
func (c *EarthquakeClient) SeismicHistory(ctx context.Context, coord domain.Coordinates) (domain.SeismicHistory, error) {
	end := c.clock.Now().UTC()
	params := url.Values{
		"format":       {"geojson"},
		"latitude":     {strconv.FormatFloat(coord.Lat, 'f', 4, 64)},
		"longitude":    {strconv.FormatFloat(coord.Lon, 'f', 4, 64)},
		"maxradiuskm":  {strconv.Itoa(historyRadiusKm)},
		"starttime":    {end.Add(-historyWindow).Format(time.DateOnly)},
		"endtime":      {end.Format(time.DateOnly)},
		"minmagnitude": {strconv.FormatFloat(historyMinMag, 'f', 1, 64)},
		"limit":        {strconv.Itoa(historyMaxEvents)},
	}

	var resp featureCollection
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return domain.SeismicHistory{}, err
	}
	return resp.summarize(), nil
}

// GeoJSON response types.

type featureCollection struct {
	Features []struct {
		Properties struct {
			Mag *float64 `json:"mag"`
		} `json:"properties"`
	} `json:"features"`
}

func (fc featureCollection) summarize() domain.SeismicHistory {
	h := domain.SeismicHistory{Source: SeismicSource}
	var sum float64
	for _, f := range fc.Features {
		if f.Properties.Mag == nil {
			continue
		}
		m := *f.Properties.Mag
		h.Count++
		sum += m
		if m > h.MaxMagnitude {
			h.MaxMagnitude = m
		}
	}
	if h.Count > 0 {
		h.AvgMagnitude = sum / float64(h.Count)
	}
	return h
}
