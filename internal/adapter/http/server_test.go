package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/http"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, coord domain.Coordinates) domain.GeographicContext {
	return domain.NewGeographicContext(coord,
		domain.ElevationReading{Meters: 300, Source: "usgs"},
		domain.SeismicHistory{Source: "usgs"},
	)
}

type mockNEOs struct {
	neos []domain.NEOSummary
	err  error
}

func (m *mockNEOs) RecentNEOs(_ context.Context) ([]domain.NEOSummary, error) { return m.neos, m.err }

type mockSmallBodies struct {
	record domain.SmallBodyRecord
	err    error
	gotID  string
}

func (m *mockSmallBodies) Lookup(_ context.Context, id string) (domain.SmallBodyRecord, error) {
	m.gotID = id
	return m.record, m.err
}

type mockPlaces struct {
	places []domain.Place
	err    error
}

func (m *mockPlaces) PlacesWithin(_ context.Context, _ domain.Coordinates, _ float64) ([]domain.Place, error) {
	return m.places, m.err
}

type mockSpecies struct{}

func (mockSpecies) SpeciesNear(_ context.Context, _ domain.Coordinates, _ float64, kingdom domain.Kingdom) ([]domain.Species, error) {
	if kingdom == domain.KingdomPlantae {
		return []domain.Species{{Key: 1, Name: "Quercus robur", Count: 3}}, nil
	}
	return nil, errors.New("gbif down")
}

type fixture struct {
	neos   *mockNEOs
	bodies *mockSmallBodies
	places *mockPlaces
	ready  *mockReadiness
}

func newFixture() *fixture {
	return &fixture{
		neos: &mockNEOs{neos: []domain.NEOSummary{{ID: "3542519", Name: "(2010 PK9)"}}},
		bodies: &mockSmallBodies{record: domain.SmallBodyRecord{
			Designation: "99942",
			FullName:    "99942 Apophis (2004 MN4)",
			Elements:    domain.OrbitalElements{SemiMajorAxis: 1.3815e11, Eccentricity: 0.191, Inclination: 3.34},
		}},
		places: &mockPlaces{places: []domain.Place{{Name: "Versailles", Type: domain.PlaceTown, DistanceKm: 17.9}}},
		ready:  &mockReadiness{},
	}
}

func (f *fixture) server() *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := simulation.New(staticResolver{}, nil, logger, observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", httpadapter.Deps{
		Simulator:   svc,
		Area:        simulation.NewAreaAssessor(f.places, mockSpecies{}, logger),
		Geo:         staticResolver{},
		NEOs:        f.neos,
		SmallBodies: f.bodies,
		Ready:       f.ready,
		SampleNEOs: func() []domain.NEOSummary {
			return []domain.NEOSummary{{ID: "IMPACTOR-2025"}, {ID: "99942"}}
		},
	}, logger)
}

func do(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

// --- health ---

func TestHealthzReturns200(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	f := newFixture()
	f.ready.err = fmt.Errorf("simulation service is draining")
	rec, _ := do(t, f.server(), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newFixture().server()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// --- simulation routes ---

func TestSimulateImpact(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/impact",
		`{"diameter":100,"velocity":20000,"angle":45,"latitude":39,"longitude":-98,"composition":"rocky"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["simulation_id"])
	results := body["results"].(map[string]any)
	assert.InDelta(t, 75.09, results["energy_megatons"].(float64), 0.01)
	location := body["location"].(map[string]any)
	assert.Equal(t, "usgs", location["elevation_source"])
}

func TestSimulateImpact_Defaults(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/impact", `{"latitude":0,"longitude":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	impactor := body["impactor"].(map[string]any)
	assert.Equal(t, 100.0, impactor["diameter_m"])
	assert.Equal(t, 20000.0, impactor["velocity_m_s"])
	assert.Equal(t, 45.0, impactor["angle_deg"])
	assert.Equal(t, "rocky", impactor["composition"])
}

func TestSimulateImpact_BadRequests(t *testing.T) {
	tests := map[string]string{
		"missing coordinates": `{"diameter":100}`,
		"latitude range":      `{"latitude":91,"longitude":0}`,
		"negative diameter":   `{"diameter":-1,"latitude":0,"longitude":0}`,
		"angle above 90":      `{"angle":120,"latitude":0,"longitude":0}`,
		"unknown composition": `{"composition":"granite","latitude":0,"longitude":0}`,
		"malformed json":      `{"latitude":`,
		"wrong type":          `{"latitude":"north","longitude":0}`,
	}
	srv := newFixture().server()
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			rec, body := do(t, srv, http.MethodPost, "/api/simulate/impact", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSimulateImpact_ErrorNamesField(t *testing.T) {
	_, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/impact", `{"longitude":0}`)
	assert.Contains(t, body["error"], "latitude is required")
}

func TestSimulateDeflection(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/deflection", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["result"].(map[string]any)
	assert.Equal(t, "kinetic_impactor", result["strategy"])
	assert.InDelta(t, 200.76, result["deflection_km"].(float64), 0.01)
	recommendation := body["recommendation"].(map[string]any)
	assert.Equal(t, "INSUFFICIENT", recommendation["verdict"])
}

func TestSimulateDeflection_EmptyBodyUsesDefaults(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/deflection", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestSimulateDeflection_UnknownStrategy(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/simulate/deflection", `{"strategy":"nuclear"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestOrbitalTrajectory(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/orbital-trajectory", `{"num_points":8}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, body["trajectory"], 8)
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0, "z": 0.0, "r": 0.0, "time_fraction": 0.0}, body["earth_position"])
}

func TestOrbitalTrajectory_Invalid(t *testing.T) {
	srv := newFixture().server()
	for _, payload := range []string{`{"eccentricity":1}`, `{"semi_major_axis":0}`, `{"num_points":0}`, `{"num_points":20000}`} {
		rec, _ := do(t, srv, http.MethodPost, "/api/orbital-trajectory", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}
}

// --- NASA routes ---

func TestRecentNEOs(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodGet, "/api/neo/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.0, body["count"])
}

func TestRecentNEOs_FallbackToSample(t *testing.T) {
	f := newFixture()
	f.neos.err = fmt.Errorf("%w: nasa-neo: status 429", domain.ErrUpstreamUnavailable)

	rec, body := do(t, f.server(), http.MethodGet, "/api/neo/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "status 429")
	assert.Len(t, body["asteroids"], 2)
}

func TestSmallBody(t *testing.T) {
	f := newFixture()
	rec, body := do(t, f.server(), http.MethodGet, "/api/nasa/sbdb/99942", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "99942", f.bodies.gotID)
	asteroid := body["asteroid"].(map[string]any)
	assert.Equal(t, "99942 Apophis (2004 MN4)", asteroid["full_name"])
}

func TestSmallBody_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.bodies.err = fmt.Errorf("%w: sbdb: specified object was not found", domain.ErrUpstreamUnavailable)

	rec, body := do(t, f.server(), http.MethodGet, "/api/nasa/sbdb/nope", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestSmallBodyTrajectory(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodGet, "/api/nasa/sbdb/99942/trajectory?num_points=12", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "99942", body["designation"])
	assert.Len(t, body["trajectory"], 12)
}

func TestSmallBodyTrajectory_BadNumPoints(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodGet, "/api/nasa/sbdb/99942/trajectory?num_points=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- area routes ---

func TestCities(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/cities", `{"latitude":48.8566,"longitude":2.3522}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["total_found"])
}

func TestCities_UpstreamFailureReturnsEmptyList(t *testing.T) {
	f := newFixture()
	f.places.err = errors.New("overpass timeout")

	rec, body := do(t, f.server(), http.MethodPost, "/api/cities", `{"latitude":48.8566,"longitude":2.3522}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["cities"])
	assert.Equal(t, 0.0, body["total_found"])
}

func TestCities_MissingCoordinates(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodPost, "/api/cities", `{"radius":1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPopulation(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/population",
		`{"latitude":48.8566,"longitude":2.3522,"destruction_radius_km":5,"damage_radius_km":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, 15000.0, body["total_population"])
	assert.Equal(t, 2250.0, body["total_casualties"])
}

func TestPopulation_MissingRadii(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodPost, "/api/population", `{"latitude":48.8566,"longitude":2.3522}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFloraFauna(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodPost, "/api/impact/flora-fauna",
		`{"latitude":48.8566,"longitude":2.3522,"impact_radius_km":20,"impact_energy_megatons":75}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, body["flora_species"], 1)
	assert.Equal(t, []any{}, body["fauna_species"], "failed search degrades to empty")
	assert.Equal(t, 20.0, body["impact_radius_km"])
	analysis := body["impact_analysis"].(map[string]any)
	assert.Equal(t, 4.0, analysis["destruction_radius_km"], "defaults to a fifth of the impact radius")
}

// --- geographic context ---

func TestGeoContext(t *testing.T) {
	rec, body := do(t, newFixture().server(), http.MethodGet, "/api/usgs/context?latitude=39&longitude=-98", "")
	require.Equal(t, http.StatusOK, rec.Code)

	location := body["location"].(map[string]any)
	assert.Equal(t, 300.0, location["elevation_m"])
}

func TestGeoContext_BadQuery(t *testing.T) {
	srv := newFixture().server()
	for _, q := range []string{"", "?latitude=39", "?latitude=abc&longitude=0", "?latitude=95&longitude=0"} {
		rec, _ := do(t, srv, http.MethodGet, "/api/usgs/context"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec, _ := do(t, newFixture().server(), http.MethodGet, "/api/simulate/impact", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
