package orbit

import (
	"iter"
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// Trajectory yields n points spaced evenly in time over one period, at time
// fractions i/n. The sequence is lazy and can be ranged over any number of
// times. A non-positive n yields nothing.
func Trajectory(semiMajorAxis, eccentricity float64, n int) iter.Seq[domain.OrbitalPoint] {
	return func(yield func(domain.OrbitalPoint) bool) {
		for i := range max(n, 0) {
			if !yield(Position(semiMajorAxis, eccentricity, float64(i)/float64(n))) {
				return
			}
		}
	}
}

// OrientedTrajectory is Trajectory rotated from the orbital plane into the
// reference frame by argument of perihelion, inclination and longitude of the
// ascending node.
func OrientedTrajectory(el domain.OrbitalElements, n int) iter.Seq[domain.OrbitalPoint] {
	rot := newRotation(el)
	return func(yield func(domain.OrbitalPoint) bool) {
		for p := range Trajectory(el.SemiMajorAxis, el.Eccentricity, n) {
			if !yield(rot.apply(p)) {
				return
			}
		}
	}
}

// rotation is the perifocal to reference frame matrix. Only the first two
// columns are needed because planar points have z = 0.
type rotation struct {
	xx, xy, yx, yy, zx, zy float64
}

func newRotation(el domain.OrbitalElements) rotation {
	w := el.ArgPerihelion * math.Pi / 180
	i := el.Inclination * math.Pi / 180
	o := el.AscendingNode * math.Pi / 180

	cw, sw := math.Cos(w), math.Sin(w)
	ci, si := math.Cos(i), math.Sin(i)
	co, so := math.Cos(o), math.Sin(o)

	return rotation{
		xx: co*cw - so*sw*ci,
		xy: -co*sw - so*cw*ci,
		yx: so*cw + co*sw*ci,
		yy: -so*sw + co*cw*ci,
		zx: sw * si,
		zy: cw * si,
	}
}

func (r rotation) apply(p domain.OrbitalPoint) domain.OrbitalPoint {
	return domain.OrbitalPoint{
		X:            r.xx*p.X + r.xy*p.Y,
		Y:            r.yx*p.X + r.yy*p.Y,
		Z:            r.zx*p.X + r.zy*p.Y,
		R:            p.R,
		TimeFraction: p.TimeFraction,
	}
}
