package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/orbit"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"github.com/go-playground/validator/v10"
)

const defaultCitiesRadiusM = 25000

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names in validation errors.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateRequest runs the struct tags and maps failures onto ErrInvalidInput.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// location is the latitude/longitude pair shared by several requests.
// Pointers distinguish a missing coordinate from 0.
type location struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

func (l location) coordinates() (domain.Coordinates, error) {
	return domain.NewCoordinates(*l.Latitude, *l.Longitude)
}

type impactRequest struct {
	location
	Diameter    float64 `json:"diameter" validate:"gt=0"`
	Velocity    float64 `json:"velocity" validate:"gt=0"`
	Angle       float64 `json:"angle" validate:"gt=0,lte=90"`
	Composition string  `json:"composition"`
}

func newImpactRequest() impactRequest {
	return impactRequest{Diameter: 100, Velocity: 20000, Angle: 45}
}

func (r impactRequest) impactor() (domain.ImpactorSpec, error) {
	composition, err := domain.ParseComposition(r.Composition)
	if err != nil {
		return domain.ImpactorSpec{}, err
	}
	return domain.NewImpactorSpec(r.Diameter, r.Velocity, r.Angle, composition)
}

type deflectionRequest struct {
	AsteroidDiameter float64 `json:"asteroid_diameter" validate:"gt=0"`
	AsteroidVelocity float64 `json:"asteroid_velocity" validate:"gt=0"`
	Composition      string  `json:"composition"`
	Strategy         string  `json:"strategy"`
	TimeBeforeImpact float64 `json:"time_before_impact" validate:"gt=0"`
	ImpactorMass     float64 `json:"impactor_mass" validate:"gte=0"`
	ImpactorVelocity float64 `json:"impactor_velocity" validate:"gte=0"`
}

func newDeflectionRequest() deflectionRequest {
	return deflectionRequest{
		AsteroidDiameter: 100,
		AsteroidVelocity: 20000,
		Strategy:         string(domain.StrategyKineticImpactor),
		TimeBeforeImpact: 365,
		ImpactorMass:     1000,
		ImpactorVelocity: 10000,
	}
}

func (r deflectionRequest) params() (physics.DeflectionParams, error) {
	composition, err := domain.ParseComposition(r.Composition)
	if err != nil {
		return physics.DeflectionParams{}, err
	}
	strategy, err := domain.ParseDeflectionStrategy(r.Strategy)
	if err != nil {
		return physics.DeflectionParams{}, err
	}
	return physics.DeflectionParams{
		AsteroidDiameter:     r.AsteroidDiameter,
		AsteroidVelocity:     r.AsteroidVelocity,
		Composition:          composition,
		Strategy:             strategy,
		TimeBeforeImpactDays: r.TimeBeforeImpact,
		ImpactorMass:         r.ImpactorMass,
		ImpactorVelocity:     r.ImpactorVelocity,
	}, nil
}

type trajectoryRequest struct {
	SemiMajorAxis float64 `json:"semi_major_axis" validate:"gt=0"`
	Eccentricity  float64 `json:"eccentricity" validate:"gte=0,lt=1"`
	NumPoints     int     `json:"num_points" validate:"gte=1,lte=10000"`
}

func newTrajectoryRequest() trajectoryRequest {
	return trajectoryRequest{SemiMajorAxis: 1.5e11, Eccentricity: 0.1, NumPoints: orbit.DefaultPoints}
}

type citiesRequest struct {
	location
	Radius float64 `json:"radius" validate:"gt=0"`
}

func newCitiesRequest() citiesRequest {
	return citiesRequest{Radius: defaultCitiesRadiusM}
}

type populationRequest struct {
	location
	Radius              float64 `json:"radius" validate:"gt=0"`
	DestructionRadiusKm float64 `json:"destruction_radius_km" validate:"gt=0"`
	DamageRadiusKm      float64 `json:"damage_radius_km" validate:"gt=0"`
}

func newPopulationRequest() populationRequest {
	return populationRequest{Radius: defaultCitiesRadiusM}
}

type floraFaunaRequest struct {
	location
	ImpactRadiusKm       float64  `json:"impact_radius_km" validate:"gt=0"`
	ImpactEnergyMegatons float64  `json:"impact_energy_megatons" validate:"gt=0"`
	DestructionRadiusKm  *float64 `json:"destruction_radius_km" validate:"omitempty,gt=0"`
}

func newFloraFaunaRequest() floraFaunaRequest {
	return floraFaunaRequest{ImpactRadiusKm: 10, ImpactEnergyMegatons: 1}
}

// destructionKm defaults to a fifth of the impact radius.
func (r floraFaunaRequest) destructionKm() float64 {
	if r.DestructionRadiusKm != nil {
		return *r.DestructionRadiusKm
	}
	return r.ImpactRadiusKm * 0.2
}
