package physics

import (
	"math"
	"strings"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// BioSeverity grades the overall biological impact.
type BioSeverity string

const (
	BioMinor           BioSeverity = "minor"
	BioModerate        BioSeverity = "moderate"
	BioSevere          BioSeverity = "severe"
	BioCatastrophic    BioSeverity = "catastrophic"
	BioExtinctionEvent BioSeverity = "extinction_event"
)

// Organism densities per species per km².
const (
	floraDensityPerKm2 = 1000.0
	faunaDensityPerKm2 = 100.0

	maxListedSpecies = 5
)

var (
	vulnerableFloraKeywords = []string{"quercus", "pinus", "sequoia", "cedrus", "oak", "pine", "cedar"}
	resilientFloraKeywords  = []string{"grass", "herb", "moss", "lichen"}
	vulnerableFaunaKeywords = []string{"frog", "toad", "salamander"}
	mobileFaunaClasses      = []string{"aves", "mammalia"}
)

// ImpactZone is a concentric ring around the impact point with a uniform
// estimated mortality.
type ImpactZone struct {
	Name              string  `json:"name"`
	RadiusKm          float64 `json:"radius_km"`
	MortalityPct      float64 `json:"mortality_percentage"`
	AreaKm2           float64 `json:"area_km2"`
	OrganismsAffected int64   `json:"organisms_affected"`
}

// ZoneMortality is the mortality of one organism group inside a zone.
type ZoneMortality struct {
	Zone         string  `json:"zone"`
	RadiusKm     float64 `json:"radius_km"`
	MortalityPct float64 `json:"mortality_percentage"`
}

// OrganismEstimate is the count of individual organisms inside the damage radius.
type OrganismEstimate struct {
	Flora   int64   `json:"estimated_flora_organisms"`
	Fauna   int64   `json:"estimated_fauna_organisms"`
	Total   int64   `json:"total_organisms"`
	AreaKm2 float64 `json:"area_km2"`
}

// GroupImpact is the impact on flora or fauna.
type GroupImpact struct {
	MortalityPct           float64          `json:"estimated_mortality_percentage"`
	VulnerableMortalityPct float64          `json:"vulnerable_species_mortality"`
	ResistantMortalityPct  float64          `json:"resistant_species_mortality"`
	MostVulnerable         []domain.Species `json:"most_vulnerable"`
	Resistant              []domain.Species `json:"resistant_species"`
	RecoveryYears          int              `json:"recovery_time_years"`
	MortalityByZone        []ZoneMortality  `json:"mortality_by_zone"`
	ImpactFactors          []string         `json:"impact_factors,omitempty"`
}

// BiologicalImpact is the zone based analysis of an impact on local species.
type BiologicalImpact struct {
	TotalSpecies        int              `json:"total_species_found"`
	FloraSpecies        int              `json:"flora_species_count"`
	FaunaSpecies        int              `json:"fauna_species_count"`
	Severity            BioSeverity      `json:"impact_severity"`
	SeverityDescription string           `json:"severity_description"`
	EnergyMegatons      float64          `json:"energy_megatons"`
	DamageRadiusKm      float64          `json:"damage_radius_km"`
	DestructionRadiusKm float64          `json:"destruction_radius_km"`
	Zones               []ImpactZone     `json:"impact_zones"`
	Flora               GroupImpact      `json:"flora_impact"`
	Fauna               GroupImpact      `json:"fauna_impact"`
	Organisms           OrganismEstimate `json:"organisms"`
}

// AnalyzeBiologicalImpact estimates mortality in four concentric zones and
// classifies the species found near the impact point.
func AnalyzeBiologicalImpact(flora, fauna []domain.Species, megatons, damageKm, destructionKm float64) BiologicalImpact {
	organisms := EstimateOrganisms(len(flora), len(fauna), damageKm)
	total := float64(organisms.Total)

	severeKm := damageKm * 0.7
	outerKm := damageKm * 1.5
	zones := []ImpactZone{
		{Name: "total_destruction", RadiusKm: destructionKm, MortalityPct: 100,
			OrganismsAffected: toCount(total * radiusShare(destructionKm, damageKm))},
		{Name: "severe_impact", RadiusKm: severeKm, MortalityPct: math.Min(95, 80+megatons*0.15),
			OrganismsAffected: toCount(total * radiusShare(severeKm, damageKm))},
		{Name: "moderate_impact", RadiusKm: damageKm, MortalityPct: math.Min(60, 30+megatons*0.3),
			OrganismsAffected: toCount(total * 0.8)},
		{Name: "outer_effects", RadiusKm: outerKm, MortalityPct: math.Min(20, megatons*0.1),
			OrganismsAffected: toCount(total * 0.3)},
	}
	for i := range zones {
		zones[i].AreaKm2 = circleArea(zones[i].RadiusKm)
	}

	severity, description := bioSeverity(megatons)
	return BiologicalImpact{
		TotalSpecies:        len(flora) + len(fauna),
		FloraSpecies:        len(flora),
		FaunaSpecies:        len(fauna),
		Severity:            severity,
		SeverityDescription: description,
		EnergyMegatons:      megatons,
		DamageRadiusKm:      damageKm,
		DestructionRadiusKm: destructionKm,
		Zones:               zones,
		Flora:               floraImpact(flora, megatons, destructionKm, damageKm),
		Fauna:               faunaImpact(fauna, megatons, destructionKm, damageKm),
		Organisms:           organisms,
	}
}

// EstimateOrganisms counts individuals inside the damage radius from the
// number of species found and fixed per-species densities.
func EstimateOrganisms(floraSpecies, faunaSpecies int, damageKm float64) OrganismEstimate {
	area := circleArea(damageKm)
	f := toCount(float64(floraSpecies) * floraDensityPerKm2 * area)
	a := toCount(float64(faunaSpecies) * faunaDensityPerKm2 * area)
	return OrganismEstimate{Flora: f, Fauna: a, Total: f + a, AreaKm2: area}
}

func floraImpact(species []domain.Species, megatons, destructionKm, damageKm float64) GroupImpact {
	if len(species) == 0 {
		return emptyGroupImpact()
	}
	var vulnerable, resistant []domain.Species
	for _, s := range species {
		switch {
		case matchesAny(s, vulnerableFloraKeywords):
			vulnerable = append(vulnerable, s)
		case matchesAny(s, resilientFloraKeywords):
			resistant = append(resistant, s)
		}
	}

	severe := math.Min(95, 85+megatons*0.1)
	return GroupImpact{
		MortalityPct:           severe,
		VulnerableMortalityPct: math.Min(98, severe+10),
		ResistantMortalityPct:  math.Max(20, severe-30),
		MostVulnerable:         firstN(vulnerable, maxListedSpecies),
		Resistant:              firstN(resistant, maxListedSpecies),
		RecoveryYears:          recoveryYears(megatons, [4]int{1000, 100, 10, 1}),
		MortalityByZone: []ZoneMortality{
			{Zone: "destruction_zone", RadiusKm: destructionKm, MortalityPct: 100},
			{Zone: "severe_zone", RadiusKm: damageKm * 0.7, MortalityPct: severe},
			{Zone: "moderate_zone", RadiusKm: damageKm, MortalityPct: math.Min(70, 40+megatons*0.3)},
		},
		ImpactFactors: []string{
			"Shock waves destroy plant structures",
			"Extreme heat causes spontaneous combustion",
			"Atmospheric dust blocks photosynthesis",
			"Soil pH changes impair regrowth",
		},
	}
}

func faunaImpact(species []domain.Species, megatons, destructionKm, damageKm float64) GroupImpact {
	if len(species) == 0 {
		return emptyGroupImpact()
	}
	var vulnerable, mobile []domain.Species
	for _, s := range species {
		switch {
		case matchesAny(s, vulnerableFaunaKeywords):
			vulnerable = append(vulnerable, s)
		case containsAny(strings.ToLower(s.Class), mobileFaunaClasses):
			mobile = append(mobile, s)
		}
	}

	severe := math.Min(95, 80+megatons*0.15)
	return GroupImpact{
		MortalityPct:           severe,
		VulnerableMortalityPct: math.Min(98, severe+15),
		ResistantMortalityPct:  math.Max(25, severe-40),
		MostVulnerable:         firstN(vulnerable, maxListedSpecies),
		Resistant:              firstN(mobile, maxListedSpecies),
		RecoveryYears:          recoveryYears(megatons, [4]int{500, 50, 5, 1}),
		MortalityByZone: []ZoneMortality{
			{Zone: "destruction_zone", RadiusKm: destructionKm, MortalityPct: 100},
			{Zone: "severe_zone", RadiusKm: damageKm * 0.7, MortalityPct: severe},
			{Zone: "moderate_zone", RadiusKm: damageKm, MortalityPct: math.Min(60, 30+megatons*0.3)},
		},
		ImpactFactors: []string{
			"Shock waves cause massive internal trauma",
			"Extreme heat causes lethal hyperthermia",
			"Atmospheric changes impair breathing",
			"Habitat destruction removes shelter",
		},
	}
}

func emptyGroupImpact() GroupImpact {
	return GroupImpact{
		MostVulnerable:  []domain.Species{},
		Resistant:       []domain.Species{},
		MortalityByZone: []ZoneMortality{},
	}
}

// recoveryYears picks from years ordered for yields of ≥100, ≥10, ≥1 and <1 MT.
func recoveryYears(megatons float64, years [4]int) int {
	switch {
	case megatons >= 100:
		return years[0]
	case megatons >= 10:
		return years[1]
	case megatons >= 1:
		return years[2]
	default:
		return years[3]
	}
}

func bioSeverity(megatons float64) (BioSeverity, string) {
	switch {
	case megatons >= 1000:
		return BioExtinctionEvent, "Mass extinction event with total loss of biodiversity"
	case megatons >= 100:
		return BioCatastrophic, "Catastrophic impact with massive loss of biodiversity"
	case megatons >= 10:
		return BioSevere, "Severe impact with significant loss of biodiversity"
	case megatons >= 1:
		return BioModerate, "Moderate impact with local loss of biodiversity"
	default:
		return BioMinor, "Minor impact with localized effects on biodiversity"
	}
}

func matchesAny(s domain.Species, keywords []string) bool {
	if containsAny(strings.ToLower(s.Name), keywords) {
		return true
	}
	for _, v := range s.VernacularNames {
		if containsAny(strings.ToLower(v), keywords) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func firstN(species []domain.Species, n int) []domain.Species {
	if len(species) > n {
		species = species[:n]
	}
	if species == nil {
		return []domain.Species{}
	}
	return species
}

func radiusShare(r, damageKm float64) float64 {
	if damageKm <= 0 {
		return 0
	}
	return (r / damageKm) * (r / damageKm)
}

func circleArea(r float64) float64 {
	return math.Pi * r * r
}

func toCount(v float64) int64 {
	switch {
	case !domain.IsFinite(v) || v <= 0:
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(v)
	}
}
