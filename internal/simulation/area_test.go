package simulation_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlaces struct {
	places []domain.Place
	err    error
	calls  atomic.Int32
}

func (m *mockPlaces) PlacesWithin(_ context.Context, _ domain.Coordinates, _ float64) ([]domain.Place, error) {
	m.calls.Add(1)
	return m.places, m.err
}

type mockSpecies struct {
	byKingdom map[domain.Kingdom][]domain.Species
	failFor   domain.Kingdom
}

func (m *mockSpecies) SpeciesNear(_ context.Context, _ domain.Coordinates, _ float64, kingdom domain.Kingdom) ([]domain.Species, error) {
	if kingdom == m.failFor {
		return nil, errors.New("gbif unavailable")
	}
	return m.byKingdom[kingdom], nil
}

var paris = domain.Coordinates{Lat: 48.8566, Lon: 2.3522}

func TestAreaAssessor_Places(t *testing.T) {
	places := &mockPlaces{places: []domain.Place{{Name: "Versailles", Type: domain.PlaceTown, DistanceKm: 17.9}}}
	a := simulation.NewAreaAssessor(places, nil, discardLogger())

	got, err := a.Places(context.Background(), paris, 25000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Versailles", got[0].Name)
}

func TestAreaAssessor_Places_Degrades(t *testing.T) {
	places := &mockPlaces{err: errors.New("overpass timeout")}
	a := simulation.NewAreaAssessor(places, nil, discardLogger())

	got, err := a.Places(context.Background(), paris, 25000)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAreaAssessor_Places_InvalidRadius(t *testing.T) {
	places := &mockPlaces{}
	a := simulation.NewAreaAssessor(places, nil, discardLogger())

	for _, r := range []float64{0, -5} {
		_, err := a.Places(context.Background(), paris, r)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, places.calls.Load(), "invalid input never reaches the upstream")
}

func TestAreaAssessor_EstimatePopulation(t *testing.T) {
	places := &mockPlaces{places: []domain.Place{
		{Name: "Centre", Type: domain.PlaceCity, Population: 100000, DistanceKm: 1},
		{Name: "Suburb", Type: domain.PlaceTown, Population: 20000, DistanceKm: 8},
		{Name: "Farm", Type: domain.PlaceHamlet, DistanceKm: 40},
	}}
	a := simulation.NewAreaAssessor(places, nil, discardLogger())

	est, err := a.EstimatePopulation(context.Background(), simulation.PopulationRequest{
		Centre:        paris,
		RadiusM:       50000,
		DestructionKm: 5,
		DamageKm:      15,
	})
	require.NoError(t, err)
	require.Len(t, est.Places, 3)

	assert.Equal(t, 95000, est.Places[0].Casualties)
	assert.Equal(t, 3000, est.Places[1].Casualties)
	assert.True(t, est.Places[2].PopulationEstimated)
	assert.Equal(t, 50, est.Places[2].Population)
	assert.Equal(t, 120050, est.TotalPopulation)
	assert.Equal(t, 95000+3000+2, est.TotalCasualties)
}

func TestAreaAssessor_EstimatePopulation_Invalid(t *testing.T) {
	a := simulation.NewAreaAssessor(&mockPlaces{}, nil, discardLogger())

	tests := map[string]simulation.PopulationRequest{
		"zero destruction radius": {Centre: paris, RadiusM: 1000, DestructionKm: 0, DamageKm: 10},
		"zero damage radius":      {Centre: paris, RadiusM: 1000, DestructionKm: 1, DamageKm: 0},
		"zero lookup radius":      {Centre: paris, RadiusM: 0, DestructionKm: 1, DamageKm: 10},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.EstimatePopulation(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAreaAssessor_AssessBiology(t *testing.T) {
	species := &mockSpecies{byKingdom: map[domain.Kingdom][]domain.Species{
		domain.KingdomPlantae:  {{Key: 1, Name: "Quercus robur", Count: 12}},
		domain.KingdomAnimalia: {{Key: 2, Name: "Vulpes vulpes", Count: 4}, {Key: 3, Name: "Parus major", Count: 2}},
	}}
	a := simulation.NewAreaAssessor(nil, species, discardLogger())

	report, err := a.AssessBiology(context.Background(), simulation.BiologyRequest{
		Centre: paris, RadiusKm: 20, Megatons: 75, DestructionKm: 3,
	})
	require.NoError(t, err)

	assert.Len(t, report.Flora, 1)
	assert.Len(t, report.Fauna, 2)
	assert.Equal(t, 3, report.Analysis.TotalSpecies)
	assert.Equal(t, 1, report.Analysis.FloraSpecies)
	assert.Equal(t, 2, report.Analysis.FaunaSpecies)
}

func TestAreaAssessor_AssessBiology_PartialFailure(t *testing.T) {
	species := &mockSpecies{
		byKingdom: map[domain.Kingdom][]domain.Species{
			domain.KingdomPlantae: {{Key: 1, Name: "Quercus robur", Count: 12}},
		},
		failFor: domain.KingdomAnimalia,
	}
	a := simulation.NewAreaAssessor(nil, species, discardLogger())

	report, err := a.AssessBiology(context.Background(), simulation.BiologyRequest{
		Centre: paris, RadiusKm: 20, Megatons: 75, DestructionKm: 3,
	})
	require.NoError(t, err)
	assert.Len(t, report.Flora, 1)
	assert.NotNil(t, report.Fauna)
	assert.Empty(t, report.Fauna)
}

func TestAreaAssessor_AssessBiology_Invalid(t *testing.T) {
	a := simulation.NewAreaAssessor(nil, nil, discardLogger())

	_, err := a.AssessBiology(context.Background(), simulation.BiologyRequest{Centre: paris, RadiusKm: 20, Megatons: 0, DestructionKm: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
