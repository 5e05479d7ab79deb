package physics

import (
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	craterScalingConstant = 1.8
	craterScalingExponent = 0.22
)

// CraterDiameter returns the final crater diameter in metres:
//
//	D = 1.8 · modifier · (E / (ρ·g))^0.22 · sin(angle)
//
// where ρ and modifier come from the terrain table. Angles at or below zero
// yield 0.
func CraterDiameter(energy, angle float64, geo domain.GeographicContext) float64 {
	if angle <= 0 || energy <= 0 {
		return 0
	}
	m := materialFor(geo)
	d := craterScalingConstant * m.CraterModifier * math.Pow(energy/(m.Density*Gravity), craterScalingExponent)
	return d * math.Sin(angle*math.Pi/180)
}

// DestructionRadiusKm is the radius of total destruction, the crater radius in km.
func DestructionRadiusKm(craterDiameter float64) float64 {
	return craterDiameter / 2000
}

// DamageRadiusKm is the radius of significant damage, five times the
// destruction radius.
func DamageRadiusKm(destructionKm float64) float64 {
	return destructionKm * 5
}
