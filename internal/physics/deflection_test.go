package physics

import (
	"testing"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKineticImpactor_ReferenceScenario(t *testing.T) {
	got := KineticImpactor(1e7, 1000, 10000, 365)

	assert.InDelta(t, 1.0, got.DeltaV, 1e-12)
	assert.InDelta(t, 31536.0, got.DeflectionKm, 1e-6)
	assert.True(t, got.Success)
	assert.Equal(t, domain.StrategyKineticImpactor, got.Strategy)
	assert.Equal(t, 1e7, got.AsteroidMass)
	assert.Equal(t, 365.0, got.TimeBeforeImpactDays)
}

func TestKineticImpactor_MassiveAsteroid(t *testing.T) {
	// m*v/M = 1000*10000/1e10
	got := KineticImpactor(1e10, 1000, 10000, 365)

	assert.InDelta(t, 1e-3, got.DeltaV, 1e-15)
	assert.InDelta(t, 31.536, got.DeflectionKm, 1e-9)
	assert.False(t, got.Success)
}

func TestKineticImpactor_Scaling(t *testing.T) {
	base := KineticImpactor(1e10, 1000, 10000, 365)

	assert.InDelta(t, 2*base.DeltaV, KineticImpactor(1e10, 2000, 10000, 365).DeltaV, 1e-12)
	assert.InDelta(t, 2*base.DeltaV, KineticImpactor(1e10, 1000, 20000, 365).DeltaV, 1e-12)
	assert.InDelta(t, 2*base.DeflectionKm, KineticImpactor(1e10, 1000, 10000, 730).DeflectionKm, 1e-6)
}

func TestKineticImpactor_Insufficient(t *testing.T) {
	got := KineticImpactor(1e7, 1000, 10000, 10)
	assert.InDelta(t, 864.0, got.DeflectionKm, 1e-9)
	assert.False(t, got.Success)
}

func TestGravityTractor(t *testing.T) {
	got := GravityTractor(1e10, 365)

	assert.InDelta(t, 2.1048072e-4, got.DeltaV, 1e-10)
	assert.InDelta(t, 3.31886, got.DeflectionKm, 1e-4)
	assert.False(t, got.Success)
	assert.Equal(t, domain.StrategyGravityTractor, got.Strategy)

	// Acceleration does not depend on the asteroid mass.
	assert.InDelta(t, got.DeltaV, GravityTractor(1e14, 365).DeltaV, 1e-15)
}

func TestDeflect(t *testing.T) {
	params := DeflectionParams{
		AsteroidDiameter:     100,
		AsteroidVelocity:     20000,
		Composition:          domain.CompositionRocky,
		Strategy:             domain.StrategyKineticImpactor,
		TimeBeforeImpactDays: 365,
		ImpactorMass:         1000,
		ImpactorVelocity:     10000,
	}

	t.Run("kinetic impactor defaults", func(t *testing.T) {
		got, err := Deflect(params)
		require.NoError(t, err)
		assert.InEpsilon(t, 1.5708e9, got.AsteroidMass, 1e-4)
		assert.InDelta(t, 200.76, got.DeflectionKm, 0.01)
		assert.False(t, got.Success)
	})

	t.Run("gravity tractor ignores impactor parameters", func(t *testing.T) {
		p := params
		p.Strategy = domain.StrategyGravityTractor
		p.ImpactorMass = 0
		got, err := Deflect(p)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyGravityTractor, got.Strategy)
	})

	invalid := map[string]func(*DeflectionParams){
		"unknown strategy":    func(p *DeflectionParams) { p.Strategy = "nuclear" },
		"zero diameter":       func(p *DeflectionParams) { p.AsteroidDiameter = 0 },
		"negative lead time":  func(p *DeflectionParams) { p.TimeBeforeImpactDays = -1 },
		"zero impactor mass":  func(p *DeflectionParams) { p.ImpactorMass = 0 },
		"unknown composition": func(p *DeflectionParams) { p.Composition = "granite" },
		"zero impactor speed": func(p *DeflectionParams) { p.ImpactorVelocity = 0 },
		"zero asteroid speed": func(p *DeflectionParams) { p.AsteroidVelocity = 0 },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			p := params
			mutate(&p)
			_, err := Deflect(p)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecommend(t *testing.T) {
	ok := Recommend(domain.DeflectionResult{Success: true, DeflectionKm: 31536})
	assert.Equal(t, "SUCCESS", ok.Verdict)
	assert.Equal(t, "#4CAF50", ok.Color)
	assert.Contains(t, ok.Message, "31536.00 km")

	bad := Recommend(domain.DeflectionResult{Success: false, DeflectionKm: 3.3})
	assert.Equal(t, "INSUFFICIENT", bad.Verdict)
	assert.Equal(t, "#FF5722", bad.Color)
	assert.Contains(t, bad.Message, "3.30 km")
}
