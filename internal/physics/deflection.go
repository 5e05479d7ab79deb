package physics

import (
	"fmt"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	secondsPerDay = 86400.0

	tractorMassKg    = 1000.0
	tractorStandoffM = 100.0
)

// DeflectionParams describes a deflection mission against an asteroid.
type DeflectionParams struct {
	AsteroidDiameter     float64
	AsteroidVelocity     float64
	Composition          domain.Composition
	Strategy             domain.DeflectionStrategy
	TimeBeforeImpactDays float64
	ImpactorMass         float64
	ImpactorVelocity     float64
}

type positiveField struct {
	name  string
	value float64
}

func (p DeflectionParams) validate() error {
	fields := []positiveField{
		{"asteroid_diameter", p.AsteroidDiameter},
		{"asteroid_velocity", p.AsteroidVelocity},
		{"time_before_impact", p.TimeBeforeImpactDays},
	}
	if p.Strategy == domain.StrategyKineticImpactor {
		fields = append(fields,
			positiveField{"impactor_mass", p.ImpactorMass},
			positiveField{"impactor_velocity", p.ImpactorVelocity},
		)
	}
	for _, f := range fields {
		if !domain.IsFinite(f.value) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", domain.ErrInvalidInput, f.name, f.value)
		}
	}
	if !p.Composition.Valid() {
		return fmt.Errorf("%w: unknown composition %q", domain.ErrInvalidInput, p.Composition)
	}
	return nil
}

// Deflect evaluates the mission with the selected strategy.
func Deflect(p DeflectionParams) (domain.DeflectionResult, error) {
	switch p.Strategy {
	case domain.StrategyKineticImpactor, domain.StrategyGravityTractor:
	default:
		return domain.DeflectionResult{}, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, p.Strategy)
	}
	if err := p.validate(); err != nil {
		return domain.DeflectionResult{}, err
	}

	mass := Mass(p.AsteroidDiameter, p.Composition)
	var result domain.DeflectionResult
	if p.Strategy == domain.StrategyKineticImpactor {
		result = KineticImpactor(mass, p.ImpactorMass, p.ImpactorVelocity, p.TimeBeforeImpactDays)
	} else {
		result = GravityTractor(mass, p.TimeBeforeImpactDays)
	}
	if !domain.IsFinite(result.DeltaV) || !domain.IsFinite(result.DeflectionKm) {
		return domain.DeflectionResult{}, fmt.Errorf("%w: deflection result is not finite", domain.ErrInvalidInput)
	}
	return result, nil
}

// KineticImpactor applies momentum conservation with no enhancement factor:
// Δv = m·v / M, and the drift Δv·t decides success against Earth's radius.
func KineticImpactor(asteroidMass, impactorMass, impactorVelocity, days float64) domain.DeflectionResult {
	deltaV := impactorMass * impactorVelocity / asteroidMass
	distance := deltaV * days * secondsPerDay
	return domain.DeflectionResult{
		Strategy:             domain.StrategyKineticImpactor,
		DeltaV:               deltaV,
		DeflectionKm:         distance / 1000,
		Success:              distance > EarthRadiusM,
		AsteroidMass:         asteroidMass,
		TimeBeforeImpactDays: days,
	}
}

// GravityTractor models a 1000 kg spacecraft holding station 100 m from the
// asteroid for the whole lead time under constant acceleration.
func GravityTractor(asteroidMass, days float64) domain.DeflectionResult {
	t := days * secondsPerDay
	force := G * tractorMassKg * asteroidMass / (tractorStandoffM * tractorStandoffM)
	accel := force / asteroidMass
	deltaV := accel * t
	distance := deltaV * t / 2
	return domain.DeflectionResult{
		Strategy:             domain.StrategyGravityTractor,
		DeltaV:               deltaV,
		DeflectionKm:         distance / 1000,
		Success:              distance > EarthRadiusM,
		AsteroidMass:         asteroidMass,
		TimeBeforeImpactDays: days,
	}
}
