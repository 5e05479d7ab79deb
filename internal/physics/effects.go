package physics

import (
	"math"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// Half of Earth's circumference, the radius recorded for global effects.
const globalRadiusKm = 20015.0

// EffectInputs carries everything the secondary effect generators read.
type EffectInputs struct {
	Megatons         float64
	Diameter         float64
	Composition      domain.Composition
	CraterDiameter   float64
	SeismicMagnitude float64
	Geo              domain.GeographicContext
}

// effectContext holds the intermediates shared by several generators.
type effectContext struct {
	effectiveMT     float64
	thermalRadiusKm float64
	props           domain.CompositionProperties
}

type effectGenerator func(EffectInputs, effectContext) (domain.SecondaryEffect, bool)

// effectGenerators run in this order; the output keeps it.
var effectGenerators = []effectGenerator{
	thermalRadiation,
	metalContamination,
	chemicalContamination,
	iceVaporization,
	airburst,
	firestorm,
	ejecta,
	atmosphericWinter,
	electromagneticPulse,
	seismicExtended,
	oceanicMegaTsunami,
	extinction,
}

// SecondaryEffects lists every effect whose activation threshold is met.
func SecondaryEffects(in EffectInputs) []domain.SecondaryEffect {
	props := in.Composition.Properties()
	effMT := math.Max(0, in.Megatons*props.AtmosphericPenetration)
	ctx := effectContext{
		effectiveMT:     effMT,
		thermalRadiusKm: ThermalRadiusKm(effMT, props.ThermalEmission),
		props:           props,
	}

	effects := make([]domain.SecondaryEffect, 0, len(effectGenerators))
	for _, gen := range effectGenerators {
		if e, ok := gen(in, ctx); ok {
			effects = append(effects, e)
		}
	}
	return effects
}

// ThermalRadiusKm is the radius of third-degree burns for an effective yield.
func ThermalRadiusKm(effectiveMT, thermalEmission float64) float64 {
	if effectiveMT <= 0 {
		return 0
	}
	return 10 * math.Pow(effectiveMT, 0.41) * thermalEmission
}

func effectSeverity(effectiveMT float64) domain.EffectSeverity {
	switch {
	case effectiveMT < 1:
		return domain.EffectMinor
	case effectiveMT < 100:
		return domain.EffectModerate
	case effectiveMT < 1e4:
		return domain.EffectSevere
	case effectiveMT < 1e6:
		return domain.EffectExtreme
	default:
		return domain.EffectCatastrophic
	}
}

func thermalRadiation(_ EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.effectiveMT < 0.1 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectThermalRadiation,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: c.thermalRadiusKm,
		Effects: []string{
			"Third-degree burns on exposed skin",
			"Ignition of dry vegetation and wooden structures",
			"Flash blindness for observers facing the fireball",
		},
	}, true
}

func metalContamination(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.props.MetalContent < 0.5 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectMetalContamination,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: math.Max(in.CraterDiameter/1000*3, 1),
		Effects: []string{
			"Iron and nickel vapour deposited around the crater",
			"Heavy metal contamination of soil and groundwater",
		},
	}, true
}

func chemicalContamination(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if in.Composition != domain.CompositionCarbonaceous {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectChemicalContamination,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: in.CraterDiameter / 1000 * 2,
		Effects: []string{
			"Release of organic compounds and sulphur",
			"Local acid rain",
		},
	}, true
}

func iceVaporization(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if in.Composition != domain.CompositionIcy {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectIceVaporization,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: c.thermalRadiusKm * 0.5,
		Effects: []string{
			"Water vapour injected into the upper atmosphere",
			"Steam explosion at the impact point",
		},
	}, true
}

func airburst(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	threshold := 20 + 100*(1-c.props.FragmentationResistance)
	if in.Diameter >= threshold {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectAirburst,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: c.thermalRadiusKm * 1.5,
		Effects: []string{
			"Body fragments and detonates before reaching the ground",
			"Overpressure wave shatters windows across the area",
		},
	}, true
}

func firestorm(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.effectiveMT < 1 || in.Geo.Oceanic {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectFirestorm,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: c.thermalRadiusKm * 0.7,
		Effects: []string{
			"Self-sustaining fires merge into a firestorm",
			"Smoke and soot lofted into the stratosphere",
		},
	}, true
}

func ejecta(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if in.CraterDiameter < 1000 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectEjecta,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: in.CraterDiameter / 1000 * 10,
		Effects: []string{
			"Ballistic ejecta blankets the surrounding region",
			"Re-entering debris heats the atmosphere",
		},
		Global: in.CraterDiameter >= 100000,
	}, true
}

func atmosphericWinter(_ EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.effectiveMT < 1e4 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectAtmosphericWinter,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: globalRadiusKm,
		Effects: []string{
			"Dust and soot block sunlight for months",
			"Global temperature drop and crop failure",
		},
		Global: true,
	}, true
}

func electromagneticPulse(_ EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.effectiveMT < 100 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectEMP,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: 50 * math.Cbrt(c.effectiveMT),
		Effects: []string{
			"Ionospheric disturbance disrupts radio communication",
			"Induced currents damage power grids and electronics",
		},
	}, true
}

func seismicExtended(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if in.SeismicMagnitude < 7 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectSeismicExtended,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: math.Pow(10, 0.5*in.SeismicMagnitude-1),
		Effects: []string{
			"Strong ground shaking felt far beyond the crater",
			"Landslides and liquefaction in susceptible terrain",
		},
	}, true
}

func oceanicMegaTsunami(in EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if !in.Geo.Oceanic || c.effectiveMT < 100 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectOceanic,
		Severity: effectSeverity(c.effectiveMT),
		RadiusKm: 20 * math.Sqrt(in.Megatons),
		Effects: []string{
			"Transoceanic tsunami reaches distant coastlines",
			"Massive vaporization of seawater",
		},
		Global: c.effectiveMT >= 1e5,
	}, true
}

func extinction(_ EffectInputs, c effectContext) (domain.SecondaryEffect, bool) {
	if c.effectiveMT < 1e6 {
		return domain.SecondaryEffect{}, false
	}
	return domain.SecondaryEffect{
		Kind:     domain.EffectExtinction,
		Severity: domain.EffectCatastrophic,
		RadiusKm: globalRadiusKm,
		Effects: []string{
			"Collapse of global food chains",
			"Mass extinction of most species",
		},
		Global: true,
	}, true
}
