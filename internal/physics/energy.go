// Package physics implements the closed-form impact effect formulas: mass and
// energy, crater scaling, seismic magnitude, tsunami risk, secondary effects,
// severity classification, deflection and biological and population impact.
//
// Every function is pure. Constant tables are embedded and parsed once.
package physics

import (
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// Physical constants.
const (
	JoulesPerMegaton = 4.184e15    // 1 MT TNT
	Gravity          = 9.81        // m/s²
	G                = 6.67430e-11 // m³ kg⁻¹ s⁻²
	EarthRadiusM     = 6371000.0
)

// Mass returns the mass in kg of a sphere of the given diameter (m) made of
// the composition's material.
func Mass(diameter float64, composition domain.Composition) float64 {
	radius := diameter / 2
	volume := 4.0 / 3.0 * math.Pi * radius * radius * radius
	return volume * composition.Properties().Density
}

// KineticEnergy returns 0.5·m·v² in joules.
func KineticEnergy(mass, velocity float64) float64 {
	return 0.5 * mass * velocity * velocity
}

// TNTEquivalent converts joules to megatons of TNT.
func TNTEquivalent(energy float64) float64 {
	return energy / JoulesPerMegaton
}

// MegatonsToJoules converts megatons of TNT to joules.
func MegatonsToJoules(megatons float64) float64 {
	return megatons * JoulesPerMegaton
}
