package domain

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Terrain is the surface class at the impact point.
type Terrain string

const (
	TerrainDeepOcean    Terrain = "deep_ocean"
	TerrainMidOcean     Terrain = "mid_ocean"
	TerrainShallowOcean Terrain = "shallow_ocean"
	TerrainMountainHigh Terrain = "mountain_high"
	TerrainDesert       Terrain = "desert"
	TerrainForest       Terrain = "forest"
	TerrainUrban        Terrain = "urban"
	TerrainContinental  Terrain = "continental"
)

// IsOceanic reports whether t is one of the ocean depth bands.
func (t Terrain) IsOceanic() bool {
	switch t {
	case TerrainDeepOcean, TerrainMidOcean, TerrainShallowOcean:
		return true
	default:
		return false
	}
}

// Terrain classification thresholds.
const (
	deepOceanDepthM    = 2000.0
	midOceanDepthM     = 500.0
	mountainHighElevM  = 2000.0
	desertPlateauElevM = 1000.0
	forestElevM        = 300.0
	urbanBasinElevM    = 50.0
	desertBeltMinLat   = 15.0
	desertBeltMaxLat   = 35.0

	// meanOceanDepthM stands in for bathymetry when a provider reports sea level over water.
	meanOceanDepthM = 3700.0
	// heuristicLandElevM is the fallback elevation for land points.
	heuristicLandElevM = 200.0
	// inlandDepressionLimitM separates continental depressions (Dead Sea, Caspian shore)
	// from water when a point falls inside the land mask.
	inlandDepressionLimitM = -500.0
)

// SeismicHistory summarizes recent earthquakes near the impact point.
type SeismicHistory struct {
	Count        int     `json:"count"`
	MaxMagnitude float64 `json:"max_magnitude"`
	AvgMagnitude float64 `json:"avg_magnitude"`
	Source       string  `json:"source"`
}

// HasActiveFaulting reports whether at least one event of magnitude 4.0 or
// more was recorded in the lookup window.
func (s SeismicHistory) HasActiveFaulting() bool {
	return s.Count >= 1 && s.MaxMagnitude >= 4.0
}

// GeographicContext is the read-only description of the impact site.
type GeographicContext struct {
	Coordinates       Coordinates    `json:"coordinates"`
	Elevation         float64        `json:"elevation_m"`
	ElevationSource   string         `json:"elevation_source"`
	Terrain           Terrain        `json:"terrain"`
	Oceanic           bool           `json:"is_oceanic"`
	OceanBasin        string         `json:"ocean_basin,omitempty"`
	CoastalDistanceKm float64        `json:"coastal_distance_km"`
	Seismic           SeismicHistory `json:"seismic_history"`
}

// WaterDepth returns the depth below sea level for oceanic sites, 0 otherwise.
func (g GeographicContext) WaterDepth() float64 {
	if !g.Oceanic || g.Elevation >= 0 {
		return 0
	}
	return -g.Elevation
}

// IsDesertPlateau reports whether the site is a desert above 1000 m.
func (g GeographicContext) IsDesertPlateau() bool {
	return g.Terrain == TerrainDesert && g.Elevation > desertPlateauElevM
}

// ClassifyTerrain derives the terrain class from elevation and location.
func ClassifyTerrain(coord Coordinates, elevation float64, oceanic bool) Terrain {
	if oceanic {
		depth := -elevation
		switch {
		case depth > deepOceanDepthM:
			return TerrainDeepOcean
		case depth > midOceanDepthM:
			return TerrainMidOcean
		default:
			return TerrainShallowOcean
		}
	}

	absLat := math.Abs(coord.Lat)
	switch {
	case elevation >= mountainHighElevM:
		return TerrainMountainHigh
	case absLat >= desertBeltMinLat && absLat <= desertBeltMaxLat && isArid(coord):
		return TerrainDesert
	case elevation >= forestElevM:
		return TerrainForest
	case elevation < urbanBasinElevM:
		return TerrainUrban
	default:
		return TerrainContinental
	}
}

// NewGeographicContext builds a context from a resolved elevation reading and
// seismic history. A reading at or below sea level outside the land mask is
// water. Inside the mask only a deep negative reading is.
func NewGeographicContext(coord Coordinates, elevation ElevationReading, seismic SeismicHistory) GeographicContext {
	basin := OceanBasinAt(coord)
	oceanic := basin != "" && elevation.Meters <= 0
	if basin == "" && elevation.Meters < inlandDepressionLimitM {
		oceanic = true
		basin = oceanBasinByLongitude(coord)
	}

	elev := elevation.Meters
	source := elevation.Source
	if oceanic && elev > -1 {
		// Terrestrial DEMs report 0 over open water.
		elev = -meanOceanDepthM
		source += "+bathymetry_estimate"
	}
	if !oceanic {
		basin = ""
	}

	return GeographicContext{
		Coordinates:       coord,
		Elevation:         elev,
		ElevationSource:   source,
		Terrain:           ClassifyTerrain(coord, elev, oceanic),
		Oceanic:           oceanic,
		OceanBasin:        basin,
		CoastalDistanceKm: EstimateCoastalDistanceKm(coord, oceanic),
		Seismic:           seismic,
	}
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// NormalizeLon maps any longitude into [-180, 180).
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

type latLonBox struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
}

func (b latLonBox) contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon
}

// aridRegions are the low-rainfall regions of the subtropical belt. Humid
// subtropical coasts such as Florida, southern China and western India fall
// outside them.
var aridRegions = []latLonBox{
	{"sahara", 15, 35, -17, 35},
	{"arabia_levant", 12, 33, 34, 60},
	{"iran_thar", 24, 35, 55, 75},
	{"sonoran_chihuahuan", 23, 35, -118, -103},
	{"kalahari_namib", -30, -15, 11, 26},
	{"atacama", -30, -15, -75, -68},
	{"australian_interior", -32, -18, 116, 145},
}

func isArid(coord Coordinates) bool {
	lon := NormalizeLon(coord.Lon)
	for _, b := range aridRegions {
		if b.contains(coord.Lat, lon) {
			return true
		}
	}
	return false
}

// OceanBasinAt returns the ocean basin name for a water point, or "" when the
// point falls inside the land mask.
func OceanBasinAt(coord Coordinates) string {
	if onLand(coord) {
		return ""
	}
	return oceanBasinByLongitude(coord)
}

// basinBands split open water between the oceans by latitude. Water west of
// atlanticWest or east of pacificWest is Pacific, water from indianWest up to
// pacificWest is Indian, and the rest is Atlantic. The edges follow the
// Americas, Cape Agulhas, the Malay Peninsula and Tasmania.
var basinBands = []struct {
	minLat                                float64
	atlanticWest, indianWest, pacificWest float64
}{
	{30, -100, 100, 100},
	{17, -100, 20, 100},
	{14, -91, 20, 100},
	{11, -85, 20, 99},
	{9, -83, 20, 99},
	{5, -70, 20, 99},
	{2, -70, 20, 102},
	{-8, -70, 20, 105},
	{-90, -70, 20, 147},
}

func oceanBasinByLongitude(coord Coordinates) string {
	switch {
	case coord.Lat >= 66:
		return "arctic"
	case coord.Lat <= -60:
		return "southern"
	}

	lon := NormalizeLon(coord.Lon)
	for _, b := range basinBands {
		if coord.Lat < b.minLat {
			continue
		}
		switch {
		case lon < b.atlanticWest || lon >= b.pacificWest:
			return "pacific"
		case lon >= b.indianWest:
			return "indian"
		default:
			return "atlantic"
		}
	}
	return "pacific"
}

// EstimateCoastalDistanceKm approximates the distance to the nearest coastline
// as the distance to the closest edge of the land mask. The outlines follow
// the coast to within about 50 km along open shores. Bays, fjords and islands
// missing from the mask can push the error past 100 km.
func EstimateCoastalDistanceKm(coord Coordinates, oceanic bool) float64 {
	if oceanic {
		return 0
	}
	return coastDistanceKm(coord)
}

// HeuristicElevation is the last-resort elevation estimate: mean ocean depth
// over water, a low continental plain on land.
func HeuristicElevation(coord Coordinates) float64 {
	if OceanBasinAt(coord) != "" {
		return -meanOceanDepthM
	}
	return heuristicLandElevM
}
