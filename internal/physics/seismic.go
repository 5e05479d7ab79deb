package physics

import (
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

const (
	activeFaultingBonus = 0.15
	maxSeismicMagnitude = 15.0
)

// BaselineSeismicMagnitude is the unadjusted Gutenberg-Richter style estimate
// M = 2/3·log10(E) − 2.9, floored at 0.
func BaselineSeismicMagnitude(energy float64) float64 {
	if energy <= 0 {
		return 0
	}
	return math.Max(0, 2.0/3.0*math.Log10(energy)-2.9)
}

// SeismicMagnitude adjusts the baseline for the target geology and recent
// regional activity, clamped to [0, 15].
func SeismicMagnitude(energy float64, geo domain.GeographicContext) float64 {
	m := BaselineSeismicMagnitude(energy) + materialFor(geo).SeismicModifier
	if geo.Seismic.HasActiveFaulting() {
		m += activeFaultingBonus
	}
	return math.Min(maxSeismicMagnitude, math.Max(0, m))
}
