package physics

import (
	_ "embed"
	"fmt"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// Target material keys beyond the domain terrain classes.
const (
	materialDesertPlateau = "desert_plateau"
	materialDesertBasin   = "desert_basin"
)

type targetMaterial struct {
	Density         float64 `yaml:"density"`
	CraterModifier  float64 `yaml:"crater_modifier"`
	SeismicModifier float64 `yaml:"seismic_modifier"`
}

type tsunamiBand struct {
	MaxMegatons       float64            `yaml:"max_megatons"`
	WaveFactor        float64            `yaml:"wave_factor"`
	PenetrationFactor float64            `yaml:"penetration_factor"`
	Risk              domain.TsunamiRisk `yaml:"risk"`
}

type waveRiskBand struct {
	MaxHeightM float64            `yaml:"max_height_m"`
	Risk       domain.TsunamiRisk `yaml:"risk"`
}

type coastalModel struct {
	MaxDistanceKm    float64        `yaml:"max_distance_km"`
	AttenuationKm    float64        `yaml:"attenuation_km"`
	Bands            []tsunamiBand  `yaml:"bands"`
	RiskByWaveHeight []waveRiskBand `yaml:"risk_by_wave_height"`
}

type physicalTables struct {
	Terrain map[string]targetMaterial `yaml:"terrain"`
	Tsunami struct {
		Oceanic []tsunamiBand `yaml:"oceanic"`
		Coastal coastalModel  `yaml:"coastal"`
	} `yaml:"tsunami"`
}

//go:embed tables.yaml
var tablesYAML []byte

// tables is parsed once at init and read-only afterwards.
var tables = mustLoadTables(tablesYAML)

func mustLoadTables(data []byte) physicalTables {
	var t physicalTables
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(fmt.Sprintf("physics: parse tables: %v", err))
	}
	required := []string{
		string(domain.TerrainDeepOcean), string(domain.TerrainMidOcean), string(domain.TerrainShallowOcean),
		string(domain.TerrainMountainHigh), materialDesertPlateau, materialDesertBasin,
		string(domain.TerrainForest), string(domain.TerrainUrban), string(domain.TerrainContinental),
	}
	for _, key := range required {
		m, ok := t.Terrain[key]
		if !ok || m.Density <= 0 {
			panic(fmt.Sprintf("physics: terrain %q missing or invalid", key))
		}
	}
	if len(t.Tsunami.Oceanic) == 0 || len(t.Tsunami.Coastal.Bands) == 0 || len(t.Tsunami.Coastal.RiskByWaveHeight) == 0 {
		panic("physics: tsunami bands missing")
	}
	return t
}

// materialKey maps a geographic context to its row in the terrain table.
func materialKey(geo domain.GeographicContext) string {
	switch {
	case geo.Oceanic:
		// Ocean rows are keyed by depth band.
		return string(domain.ClassifyTerrain(geo.Coordinates, geo.Elevation, true))
	case geo.Terrain == domain.TerrainDesert:
		if geo.IsDesertPlateau() {
			return materialDesertPlateau
		}
		return materialDesertBasin
	default:
		if _, ok := tables.Terrain[string(geo.Terrain)]; ok {
			return string(geo.Terrain)
		}
		return string(domain.TerrainContinental)
	}
}

func materialFor(geo domain.GeographicContext) targetMaterial {
	return tables.Terrain[materialKey(geo)]
}

func bandFor(bands []tsunamiBand, megatons float64) tsunamiBand {
	for _, b := range bands {
		if megatons < b.MaxMegatons {
			return b
		}
	}
	return bands[len(bands)-1]
}
