package domain

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gopkg.in/yaml.v3"
)

//go:embed landmask.yaml
var landmaskYAML []byte

// landRings is the coastline mask, parsed once at init and never mutated.
var landRings = mustLoadLandmask(landmaskYAML)

type landmassEntry struct {
	Name string      `yaml:"name"`
	Ring [][]float64 `yaml:"ring"`
}

func mustLoadLandmask(data []byte) []orb.Ring {
	var raw struct {
		Landmasses []landmassEntry `yaml:"landmasses"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("domain: parse land mask: %v", err))
	}
	if len(raw.Landmasses) == 0 {
		panic("domain: land mask is empty")
	}

	rings := make([]orb.Ring, 0, len(raw.Landmasses))
	for _, lm := range raw.Landmasses {
		if len(lm.Ring) < 3 {
			panic(fmt.Sprintf("domain: landmass %q has fewer than 3 vertices", lm.Name))
		}
		ring := make(orb.Ring, 0, len(lm.Ring)+1)
		for _, v := range lm.Ring {
			if len(v) != 2 || v[0] < -180 || v[0] > 180 || v[1] < -90 || v[1] > 90 {
				panic(fmt.Sprintf("domain: landmass %q has invalid vertex %v", lm.Name, v))
			}
			ring = append(ring, orb.Point{v[0], v[1]})
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		rings = append(rings, ring)
	}
	return rings
}

// onLand reports whether coord falls inside any landmass outline.
func onLand(coord Coordinates) bool {
	pt := orb.Point{NormalizeLon(coord.Lon), coord.Lat}
	for _, r := range landRings {
		if planar.RingContains(r, pt) {
			return true
		}
	}
	return false
}

// coastDistanceKm is the distance from coord to the nearest outline edge.
func coastDistanceKm(coord Coordinates) float64 {
	minDist := math.Inf(1)
	for _, r := range landRings {
		for i := 0; i+1 < len(r); i++ {
			a, b := r[i], r[i+1]
			if closingEdge(a, b) {
				continue
			}
			if d := segmentDistanceKm(coord, a, b); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

// closingEdge reports edges that run along the antimeridian or the pole.
// They close a ring but are not coastline.
func closingEdge(a, b orb.Point) bool {
	onAntimeridian := math.Abs(a.Lon()) == 180 && math.Abs(b.Lon()) == 180
	onPole := a.Lat() == -90 && b.Lat() == -90
	return onAntimeridian || onPole
}

// segmentDistanceKm projects the segment onto a plane tangent at coord
// (equirectangular) and returns the distance to its closest point. The
// projection error stays under 1% for segments within 1000 km.
func segmentDistanceKm(coord Coordinates, a, b orb.Point) float64 {
	const kmPerDeg = math.Pi / 180 * EarthRadiusKm
	cosLat := math.Cos(coord.Lat * math.Pi / 180)

	project := func(p orb.Point) (x, y float64) {
		dLon := NormalizeLon(p.Lon() - coord.Lon)
		return dLon * cosLat * kmPerDeg, (p.Lat() - coord.Lat) * kmPerDeg
	}
	ax, ay := project(a)
	bx, by := project(b)

	dx, dy := bx-ax, by-ay
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = math.Max(0, math.Min(1, -(ax*dx+ay*dy)/l2))
	}
	return math.Hypot(ax+t*dx, ay+t*dy)
}
