package orbit

import (
	"math"
	"slices"
	"testing"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const au = 1.5e11

func TestEccentricAnomaly_Circular(t *testing.T) {
	for _, m := range []float64{0, 0.3, math.Pi / 2, math.Pi, 5.9} {
		assert.Equal(t, m, EccentricAnomaly(m, 0))
	}
}

func TestEccentricAnomaly_SatisfiesKepler(t *testing.T) {
	m := 1.0
	e := EccentricAnomaly(m, 0.2)
	assert.InDelta(t, m, e-0.2*math.Sin(e), 1e-6)
}

func TestTrajectory_CircularQuarters(t *testing.T) {
	points := slices.Collect(Trajectory(au, 0, 4))
	require.Len(t, points, 4)

	want := [][2]float64{{au, 0}, {0, au}, {-au, 0}, {0, -au}}
	for i, p := range points {
		assert.InDelta(t, float64(i)/4, p.TimeFraction, 1e-12)
		assert.InDelta(t, want[i][0], p.X, 1e-3)
		assert.InDelta(t, want[i][1], p.Y, 1e-3)
		assert.Zero(t, p.Z)
		assert.InDelta(t, au, p.R, 1e-3)
	}
}

func TestTrajectory_Eccentric(t *testing.T) {
	points := slices.Collect(Trajectory(au, 0.5, 2))
	require.Len(t, points, 2)

	perihelion := points[0]
	assert.InDelta(t, 0.5*au, perihelion.R, 1)
	assert.InDelta(t, 0.5*au, perihelion.X, 1)

	aphelion := points[1]
	assert.InDelta(t, 1.5*au, aphelion.R, 1)
	assert.InDelta(t, -1.5*au, aphelion.X, 1)

	for p := range Trajectory(au, 0.5, 50) {
		assert.GreaterOrEqual(t, p.R, 0.5*au-1)
		assert.LessOrEqual(t, p.R, 1.5*au+1)
	}
}

func TestTrajectory_Restartable(t *testing.T) {
	seq := Trajectory(au, 0.1, 10)
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
}

func TestTrajectory_EarlyStop(t *testing.T) {
	count := 0
	for range Trajectory(au, 0, 100) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestTrajectory_NonPositiveCount(t *testing.T) {
	assert.Empty(t, slices.Collect(Trajectory(au, 0, 0)))
	assert.Empty(t, slices.Collect(Trajectory(au, 0, -5)))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(au, 0.0167, DefaultPoints))
	require.NoError(t, Validate(au, 0, 1))
	require.NoError(t, Validate(au, 0.99, MaxPoints))

	tests := map[string]struct {
		a, e float64
		n    int
	}{
		"zero axis":          {0, 0.1, 10},
		"negative axis":      {-au, 0.1, 10},
		"infinite axis":      {math.Inf(1), 0.1, 10},
		"parabolic":          {au, 1, 10},
		"negative ecc":       {au, -0.1, 10},
		"nan ecc":            {au, math.NaN(), 10},
		"no points":          {au, 0.1, 0},
		"too many points":    {au, 0.1, MaxPoints + 1},
		"negative point cnt": {au, 0.1, -1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tc.a, tc.e, tc.n), domain.ErrInvalidInput)
		})
	}
}

func TestOrientedTrajectory_PreservesPlanarLength(t *testing.T) {
	el := domain.OrbitalElements{
		SemiMajorAxis: 1.6e11,
		Eccentricity:  0.2,
		Inclination:   23,
		AscendingNode: 120,
		ArgPerihelion: 45,
	}
	planar := slices.Collect(Trajectory(el.SemiMajorAxis, el.Eccentricity, 25))
	oriented := slices.Collect(OrientedTrajectory(el, 25))
	require.Len(t, oriented, len(planar))
	for i, p := range oriented {
		q := planar[i]
		assert.InEpsilon(t, math.Sqrt(q.X*q.X+q.Y*q.Y), math.Sqrt(p.X*p.X+p.Y*p.Y+p.Z*p.Z), 1e-9)
		assert.Equal(t, q.R, p.R)
	}
}

func TestPosition_RadiusIsKeplerRadius(t *testing.T) {
	// At quadrature E = pi/2 the vector length is b = a*sqrt(1-e^2) but
	// r = a(1 - e cos E) = a.
	p := Position(au, 0.6, 0.25-0.6/(2*math.Pi))
	assert.InEpsilon(t, au, p.R, 1e-6)
	assert.InEpsilon(t, 0.8*au, math.Hypot(p.X, p.Y), 1e-6)
}

func TestOrientedTrajectory_ZeroAnglesMatchPlanar(t *testing.T) {
	el := domain.OrbitalElements{SemiMajorAxis: au, Eccentricity: 0.3}
	planar := slices.Collect(Trajectory(au, 0.3, 8))
	oriented := slices.Collect(OrientedTrajectory(el, 8))
	require.Len(t, oriented, len(planar))
	for i := range planar {
		assert.InDelta(t, planar[i].X, oriented[i].X, 1e-3)
		assert.InDelta(t, planar[i].Y, oriented[i].Y, 1e-3)
		assert.InDelta(t, 0, oriented[i].Z, 1e-3)
	}
}

func TestOrientedTrajectory_PolarOrbit(t *testing.T) {
	el := domain.OrbitalElements{SemiMajorAxis: au, Inclination: 90}
	points := slices.Collect(OrientedTrajectory(el, 4))
	require.Len(t, points, 4)

	// A quarter period along a polar orbit sits above the pole.
	assert.InDelta(t, 0, points[1].X, 1e-3)
	assert.InDelta(t, 0, points[1].Y, 1)
	assert.InDelta(t, au, points[1].Z, 1e-3)
}
