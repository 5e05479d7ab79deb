package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	defaultSBDBURL = "https://ssd-api.jpl.nasa.gov/sbdb.api"

	metresPerAU = 1.495978707e11
)

// SBDBClient looks up small bodies in the JPL Small-Body Database.
type SBDBClient struct {
	client  *upstream.Client
	baseURL string
}

// NewSBDBClient creates an SBDB client.
func NewSBDBClient(client *upstream.Client) *SBDBClient {
	return &SBDBClient{client: client, baseURL: defaultSBDBURL}
}

// Lookup fetches orbital elements and physical parameters for a designation,
// SPK-ID or name.
func (c *SBDBClient) Lookup(ctx context.Context, id string) (domain.SmallBodyRecord, error) {
	if id == "" {
		return domain.SmallBodyRecord{}, fmt.Errorf("%w: object id is required", domain.ErrInvalidInput)
	}
	params := url.Values{
		"sstr":     {id},
		"orb":      {"1"},
		"phys-par": {"1"},
	}

	var resp sbdbResponse
	if err := c.client.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return domain.SmallBodyRecord{}, err
	}
	if resp.Object.Des == "" {
		msg := resp.Message
		if msg == "" {
			msg = "object not found"
		}
		return domain.SmallBodyRecord{}, fmt.Errorf("%w: sbdb %q: %s", domain.ErrUpstreamUnavailable, id, msg)
	}
	return resp.record()
}

// SBDB response types. Numeric values arrive as strings.

type sbdbResponse struct {
	Message string `json:"message"`
	Object  struct {
		Des        string `json:"des"`
		FullName   string `json:"fullname"`
		SPKID      string `json:"spkid"`
		NEO        bool   `json:"neo"`
		PHA        bool   `json:"pha"`
		OrbitClass struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"orbit_class"`
	} `json:"object"`
	Orbit struct {
		Epoch    string      `json:"epoch"`
		Elements []sbdbField `json:"elements"`
	} `json:"orbit"`
	PhysPar []sbdbField `json:"phys_par"`
}

type sbdbField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Units string `json:"units"`
}

func (r sbdbResponse) record() (domain.SmallBodyRecord, error) {
	elements := make(map[string]string, len(r.Orbit.Elements))
	for _, f := range r.Orbit.Elements {
		elements[f.Name] = f.Value
	}

	var el domain.OrbitalElements
	fields := []struct {
		name  string
		dst   *float64
		scale float64
	}{
		{"a", &el.SemiMajorAxis, metresPerAU},
		{"e", &el.Eccentricity, 1},
		{"i", &el.Inclination, 1},
		{"om", &el.AscendingNode, 1},
		{"w", &el.ArgPerihelion, 1},
	}
	for _, f := range fields {
		raw, ok := elements[f.name]
		if !ok {
			return domain.SmallBodyRecord{}, fmt.Errorf("%w: sbdb: missing orbital element %q", domain.ErrUpstreamUnavailable, f.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SmallBodyRecord{}, fmt.Errorf("%w: sbdb: orbital element %q: %w", domain.ErrUpstreamUnavailable, f.name, err)
		}
		*f.dst = v * f.scale
	}

	rec := domain.SmallBodyRecord{
		Designation: r.Object.Des,
		FullName:    r.Object.FullName,
		SPKID:       r.Object.SPKID,
		OrbitClass:  r.Object.OrbitClass.Name,
		NEO:         r.Object.NEO,
		PHA:         r.Object.PHA,
		Epoch:       r.Orbit.Epoch,
		Elements:    el,
		Physical:    make([]domain.PhysicalParameter, 0, len(r.PhysPar)),
	}
	for _, p := range r.PhysPar {
		rec.Physical = append(rec.Physical, domain.PhysicalParameter{Name: p.Name, Value: p.Value, Units: p.Units})
		if p.Name == "diameter" {
			if d, err := strconv.ParseFloat(p.Value, 64); err == nil {
				rec.DiameterKm = d
			}
		}
	}
	return rec, nil
}
