package physics

import (
	"fmt"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// Simulate runs the full impact chain for a validated impactor at a resolved
// site. Results that are not finite are rejected as invalid input.
func Simulate(spec domain.ImpactorSpec, geo domain.GeographicContext) (domain.ImpactResult, error) {
	mass := Mass(spec.Diameter, spec.Composition)
	energy := KineticEnergy(mass, spec.Velocity)
	megatons := TNTEquivalent(energy)
	crater := CraterDiameter(energy, spec.Angle, geo)
	magnitude := SeismicMagnitude(energy, geo)
	destruction := DestructionRadiusKm(crater)

	result := domain.ImpactResult{
		Mass:                mass,
		Energy:              energy,
		Megatons:            megatons,
		CraterDiameter:      crater,
		SeismicMagnitude:    magnitude,
		BaselineMagnitude:   BaselineSeismicMagnitude(energy),
		DestructionRadiusKm: destruction,
		DamageRadiusKm:      DamageRadiusKm(destruction),
		Tsunami:             TsunamiRisk(megatons, geo),
		SecondaryEffects: SecondaryEffects(EffectInputs{
			Megatons:         megatons,
			Diameter:         spec.Diameter,
			Composition:      spec.Composition,
			CraterDiameter:   crater,
			SeismicMagnitude: magnitude,
			Geo:              geo,
		}),
		Severity: ClassifySeverity(megatons),
	}

	for name, v := range map[string]float64{
		"mass":            result.Mass,
		"energy":          result.Energy,
		"crater_diameter": result.CraterDiameter,
		"wave_height":     result.Tsunami.WaveHeightM,
	} {
		if !domain.IsFinite(v) {
			return domain.ImpactResult{}, fmt.Errorf("%w: %s is not finite", domain.ErrInvalidInput, name)
		}
	}
	return result, nil
}
