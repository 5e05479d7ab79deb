package physics

import (
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// TsunamiRisk estimates the tsunami produced by an impact of the given yield.
// Ocean impacts scale directly with √MT; land impacts within the coastal
// cutoff are attenuated by distance to the coast.
func TsunamiRisk(megatons float64, geo domain.GeographicContext) domain.TsunamiAssessment {
	if megatons <= 0 {
		return domain.TsunamiAssessment{Risk: domain.TsunamiMinimal}
	}
	root := math.Sqrt(megatons)

	if geo.Oceanic {
		b := bandFor(tables.Tsunami.Oceanic, megatons)
		return domain.TsunamiAssessment{
			Risk:          b.Risk,
			WaveHeightM:   root * b.WaveFactor,
			PenetrationKm: root * b.PenetrationFactor,
		}
	}

	coastal := tables.Tsunami.Coastal
	distance := geo.CoastalDistanceKm
	if distance > coastal.MaxDistanceKm {
		return domain.TsunamiAssessment{Risk: domain.TsunamiMinimal}
	}

	b := bandFor(coastal.Bands, megatons)
	attenuation := 1 / (1 + distance/coastal.AttenuationKm)
	wave := root * b.WaveFactor * attenuation
	return domain.TsunamiAssessment{
		Risk:          riskForWaveHeight(coastal.RiskByWaveHeight, wave),
		WaveHeightM:   wave,
		PenetrationKm: root * b.PenetrationFactor * attenuation,
	}
}

func riskForWaveHeight(bands []waveRiskBand, height float64) domain.TsunamiRisk {
	for _, b := range bands {
		if height < b.MaxHeightM {
			return b.Risk
		}
	}
	return bands[len(bands)-1].Risk
}
