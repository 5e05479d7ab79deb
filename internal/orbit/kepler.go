// Package orbit computes positions on Keplerian orbits.
//
// Positions are in metres in the orbital plane with the focus at the origin.
// Kepler's equation is solved with a fixed number of fixed-point iterations,
// so every call is deterministic and cannot fail to converge. Accuracy drops
// for eccentricities close to 1.
package orbit

import (
	"fmt"
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// keplerIterations is the fixed iteration count of the solver.
const keplerIterations = 10

// Trajectory sampling limits.
const (
	DefaultPoints = 100
	MaxPoints     = 10000
)

// EccentricAnomaly solves M = E − e·sin E by iterating E = M + e·sin E.
// For e = 0 it returns M exactly.
func EccentricAnomaly(meanAnomaly, eccentricity float64) float64 {
	e := meanAnomaly
	for range keplerIterations {
		e = meanAnomaly + eccentricity*math.Sin(e)
	}
	return e
}

// Position returns the planar position at a fraction of the orbital period.
// R is the Kepler radius a(1 - e cos E), which matches the length of (X, Y)
// only at the apsides and on circular orbits.
func Position(semiMajorAxis, eccentricity, timeFraction float64) domain.OrbitalPoint {
	m := 2 * math.Pi * timeFraction
	ea := EccentricAnomaly(m, eccentricity)

	r := semiMajorAxis * (1 - eccentricity*math.Cos(ea))
	return domain.OrbitalPoint{
		X:            r * math.Cos(ea),
		Y:            r * math.Sqrt(1-eccentricity*eccentricity) * math.Sin(ea),
		Z:            0,
		R:            r,
		TimeFraction: timeFraction,
	}
}

// Validate checks a > 0, e in [0, 1) and 1 <= n <= MaxPoints.
func Validate(semiMajorAxis, eccentricity float64, numPoints int) error {
	if !domain.IsFinite(semiMajorAxis) || semiMajorAxis <= 0 {
		return fmt.Errorf("%w: semi_major_axis must be positive, got %v", domain.ErrInvalidInput, semiMajorAxis)
	}
	if !domain.IsFinite(eccentricity) || eccentricity < 0 || eccentricity >= 1 {
		return fmt.Errorf("%w: eccentricity must be in [0, 1), got %v", domain.ErrInvalidInput, eccentricity)
	}
	if numPoints < 1 || numPoints > MaxPoints {
		return fmt.Errorf("%w: num_points must be in [1, %d], got %d", domain.ErrInvalidInput, MaxPoints, numPoints)
	}
	return nil
}
