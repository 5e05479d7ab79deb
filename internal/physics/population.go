package physics

import (
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// Typical density (people/km²) and area (km²) for settlements without a
// recorded population.
var settlementProfiles = map[domain.PlaceType]struct{ density, areaKm2 float64 }{
	domain.PlaceCity:    {3000, 50},
	domain.PlaceTown:    {1500, 10},
	domain.PlaceVillage: {500, 2},
	domain.PlaceHamlet:  {100, 0.5},
}

var defaultSettlement = struct{ density, areaKm2 float64 }{800, 5}

// Casualty fractions by zone.
const (
	destructionCasualtyFraction = 0.95
	damageCasualtyFraction      = 0.15
	outerCasualtyFraction       = 0.05
)

// EstimatePopulation applies distance based casualty fractions to each place.
// Places keep their DistanceKm if already set; otherwise it is computed from
// centre.
func EstimatePopulation(places []domain.Place, centre domain.Coordinates, destructionKm, damageKm float64) domain.PopulationEstimate {
	est := domain.PopulationEstimate{Places: make([]domain.PlaceEstimate, 0, len(places))}
	for _, p := range places {
		if p.DistanceKm <= 0 {
			p.DistanceKm = domain.HaversineKm(centre, p.Coordinates)
		}

		population, estimated := p.Population, false
		if population <= 0 {
			population, estimated = TypicalPopulation(p.Type), true
		}

		fraction := CasualtyFraction(p.DistanceKm, destructionKm, damageKm)
		casualties := int(float64(population) * fraction)

		est.TotalPopulation += population
		est.TotalCasualties += casualties
		est.Places = append(est.Places, domain.PlaceEstimate{
			Place:               p,
			Population:          population,
			PopulationEstimated: estimated,
			CasualtyFraction:    fraction,
			Casualties:          casualties,
		})
	}
	return est
}

// TypicalPopulation is the density times area estimate for a settlement type.
func TypicalPopulation(t domain.PlaceType) int {
	profile, ok := settlementProfiles[t]
	if !ok {
		profile = defaultSettlement
	}
	return int(profile.density * profile.areaKm2)
}

// CasualtyFraction is the share of a place's population expected to be killed
// or injured at the given distance.
func CasualtyFraction(distanceKm, destructionKm, damageKm float64) float64 {
	switch {
	case distanceKm <= destructionKm:
		return destructionCasualtyFraction
	case distanceKm <= damageKm:
		return damageCasualtyFraction
	default:
		return outerCasualtyFraction
	}
}
