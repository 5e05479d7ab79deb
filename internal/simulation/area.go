package simulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"golang.org/x/sync/errgroup"
)

// PlaceFinder lists settlements around a point.
type PlaceFinder interface {
	PlacesWithin(ctx context.Context, centre domain.Coordinates, radiusM float64) ([]domain.Place, error)
}

// SpeciesFinder lists species of one kingdom observed around a point.
type SpeciesFinder interface {
	SpeciesNear(ctx context.Context, centre domain.Coordinates, radiusKm float64, kingdom domain.Kingdom) ([]domain.Species, error)
}

// AreaAssessor estimates the human and biological toll around an impact
// point. Lookup failures degrade to empty lists.
type AreaAssessor struct {
	places  PlaceFinder
	species SpeciesFinder
	logger  *slog.Logger
}

// NewAreaAssessor creates an assessor. Either finder may be nil, which
// behaves like an upstream that returns nothing.
func NewAreaAssessor(places PlaceFinder, species SpeciesFinder, logger *slog.Logger) *AreaAssessor {
	return &AreaAssessor{places: places, species: species, logger: logger}
}

// Places returns settlements within radiusM metres. An upstream failure
// yields an empty list.
func (a *AreaAssessor) Places(ctx context.Context, centre domain.Coordinates, radiusM float64) ([]domain.Place, error) {
	if err := positive("radius", radiusM); err != nil {
		return nil, err
	}
	if a.places == nil {
		return []domain.Place{}, nil
	}
	places, err := a.places.PlacesWithin(ctx, centre, radiusM)
	if err != nil {
		a.logger.Warn("place lookup failed, returning empty list",
			"lat", centre.Lat,
			"lon", centre.Lon,
			"error", err,
		)
		return []domain.Place{}, nil
	}
	return places, nil
}

// PopulationRequest describes a casualty estimate around an impact point.
type PopulationRequest struct {
	Centre        domain.Coordinates
	RadiusM       float64
	DestructionKm float64
	DamageKm      float64
}

// EstimatePopulation finds settlements and applies distance based casualty
// fractions.
func (a *AreaAssessor) EstimatePopulation(ctx context.Context, req PopulationRequest) (domain.PopulationEstimate, error) {
	if err := positive("destruction_radius_km", req.DestructionKm); err != nil {
		return domain.PopulationEstimate{}, err
	}
	if err := positive("damage_radius_km", req.DamageKm); err != nil {
		return domain.PopulationEstimate{}, err
	}
	places, err := a.Places(ctx, req.Centre, req.RadiusM)
	if err != nil {
		return domain.PopulationEstimate{}, err
	}
	return physics.EstimatePopulation(places, req.Centre, req.DestructionKm, req.DamageKm), nil
}

// BiologyRequest describes a flora and fauna assessment.
type BiologyRequest struct {
	Centre        domain.Coordinates
	RadiusKm      float64
	Megatons      float64
	DestructionKm float64
}

// BiologyReport holds the species found and the zone analysis.
type BiologyReport struct {
	Flora    []domain.Species         `json:"flora_species"`
	Fauna    []domain.Species         `json:"fauna_species"`
	Analysis physics.BiologicalImpact `json:"impact_analysis"`
}

// AssessBiology searches flora and fauna concurrently and analyzes the
// biological impact. A failed search contributes an empty list.
func (a *AreaAssessor) AssessBiology(ctx context.Context, req BiologyRequest) (BiologyReport, error) {
	if err := positive("impact_radius_km", req.RadiusKm); err != nil {
		return BiologyReport{}, err
	}
	if err := positive("impact_energy_megatons", req.Megatons); err != nil {
		return BiologyReport{}, err
	}
	if err := positive("destruction_radius_km", req.DestructionKm); err != nil {
		return BiologyReport{}, err
	}

	flora, fauna := []domain.Species{}, []domain.Species{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		flora = a.searchSpecies(gctx, req, domain.KingdomPlantae)
		return nil
	})
	g.Go(func() error {
		fauna = a.searchSpecies(gctx, req, domain.KingdomAnimalia)
		return nil
	})
	_ = g.Wait() // goroutines never return errors

	return BiologyReport{
		Flora:    flora,
		Fauna:    fauna,
		Analysis: physics.AnalyzeBiologicalImpact(flora, fauna, req.Megatons, req.RadiusKm, req.DestructionKm),
	}, nil
}

func (a *AreaAssessor) searchSpecies(ctx context.Context, req BiologyRequest, kingdom domain.Kingdom) []domain.Species {
	if a.species == nil {
		return []domain.Species{}
	}
	species, err := a.species.SpeciesNear(ctx, req.Centre, req.RadiusKm, kingdom)
	if err != nil {
		a.logger.Warn("species lookup failed, returning empty list",
			"kingdom", kingdom,
			"lat", req.Centre.Lat,
			"lon", req.Centre.Lon,
			"error", err,
		)
		return []domain.Species{}
	}
	return species
}

func positive(name string, v float64) error {
	if !domain.IsFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", domain.ErrInvalidInput, name, v)
	}
	return nil
}
