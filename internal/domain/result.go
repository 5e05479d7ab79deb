package domain

import (
	"fmt"
	"strings"
)

// TsunamiRisk is the qualitative tsunami hazard label.
type TsunamiRisk string

const (
	TsunamiMinimal TsunamiRisk = "minimal"
	TsunamiLow     TsunamiRisk = "low"
	TsunamiMedium  TsunamiRisk = "medium"
	TsunamiHigh    TsunamiRisk = "high"
	TsunamiExtreme TsunamiRisk = "extreme"
)

// TsunamiAssessment is the outcome of the tsunami model.
type TsunamiAssessment struct {
	Risk          TsunamiRisk `json:"risk"`
	WaveHeightM   float64     `json:"wave_height_m"`
	PenetrationKm float64     `json:"penetration_km"`
}

// EffectKind tags a SecondaryEffect.
type EffectKind string

const (
	EffectThermalRadiation      EffectKind = "thermal_radiation"
	EffectMetalContamination    EffectKind = "metal_contamination"
	EffectChemicalContamination EffectKind = "chemical_contamination"
	EffectIceVaporization       EffectKind = "ice_vaporization"
	EffectAirburst              EffectKind = "airburst"
	EffectFirestorm             EffectKind = "firestorm"
	EffectEjecta                EffectKind = "ejecta"
	EffectAtmosphericWinter     EffectKind = "atmospheric_winter"
	EffectEMP                   EffectKind = "emp"
	EffectSeismicExtended       EffectKind = "seismic_extended"
	EffectOceanic               EffectKind = "oceanic"
	EffectExtinction            EffectKind = "extinction"
)

// EffectSeverity grades a single secondary effect.
type EffectSeverity string

const (
	EffectMinor        EffectSeverity = "minor"
	EffectModerate     EffectSeverity = "moderate"
	EffectSevere       EffectSeverity = "severe"
	EffectExtreme      EffectSeverity = "extreme"
	EffectCatastrophic EffectSeverity = "catastrophic"
)

// SecondaryEffect is one consequence beyond the crater itself.
type SecondaryEffect struct {
	Kind     EffectKind     `json:"type"`
	Severity EffectSeverity `json:"severity"`
	RadiusKm float64        `json:"radius_km"`
	Effects  []string       `json:"effects"`
	Global   bool           `json:"global_impact,omitempty"`
}

// SeverityClass is the overall impact classification with presentation metadata.
type SeverityClass struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ImpactResult is the full output of the impact calculator.
type ImpactResult struct {
	Mass                float64           `json:"mass_kg"`
	Energy              float64           `json:"energy_joules"`
	Megatons            float64           `json:"energy_megatons"`
	CraterDiameter      float64           `json:"crater_diameter_m"`
	SeismicMagnitude    float64           `json:"seismic_magnitude"`
	BaselineMagnitude   float64           `json:"baseline_seismic_magnitude"`
	DestructionRadiusKm float64           `json:"destruction_radius_km"`
	DamageRadiusKm      float64           `json:"damage_radius_km"`
	Tsunami             TsunamiAssessment `json:"tsunami"`
	SecondaryEffects    []SecondaryEffect `json:"secondary_effects"`
	Severity            SeverityClass     `json:"severity"`
}

// DeflectionStrategy selects the deflection model.
type DeflectionStrategy string

const (
	StrategyKineticImpactor DeflectionStrategy = "kinetic_impactor"
	StrategyGravityTractor  DeflectionStrategy = "gravity_tractor"
)

// ParseDeflectionStrategy normalizes a strategy name. An empty string selects
// the kinetic impactor.
func ParseDeflectionStrategy(s string) (DeflectionStrategy, error) {
	switch strategy := DeflectionStrategy(strings.ToLower(strings.TrimSpace(s))); strategy {
	case "":
		return StrategyKineticImpactor, nil
	case StrategyKineticImpactor, StrategyGravityTractor:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, s)
	}
}

// DeflectionResult is the outcome of a deflection mission estimate.
type DeflectionResult struct {
	Strategy             DeflectionStrategy `json:"strategy"`
	DeltaV               float64            `json:"delta_v"`
	DeflectionKm         float64            `json:"deflection_km"`
	Success              bool               `json:"success"`
	AsteroidMass         float64            `json:"asteroid_mass_kg"`
	TimeBeforeImpactDays float64            `json:"time_before_impact_days"`
}

// DeflectionRecommendation is the qualitative verdict on a DeflectionResult.
type DeflectionRecommendation struct {
	Verdict string `json:"verdict"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

// OrbitalElements describe a Keplerian orbit. Angles are in degrees and the
// semi-major axis in metres.
type OrbitalElements struct {
	SemiMajorAxis float64 `json:"semi_major_axis_m"`
	Eccentricity  float64 `json:"eccentricity"`
	Inclination   float64 `json:"inclination_deg"`
	AscendingNode float64 `json:"ascending_node_deg"`
	ArgPerihelion float64 `json:"arg_perihelion_deg"`
}

// OrbitalPoint is a position on an orbit in metres, centred on the focus.
type OrbitalPoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
	R            float64 `json:"r"`
	TimeFraction float64 `json:"time_fraction"`
}
