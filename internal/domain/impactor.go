package domain

import (
	"fmt"
	"math"
)

// Coordinates is a WGS-84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewCoordinates validates latitude in [-90, 90] and longitude in [-180, 180].
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if !IsFinite(lat) || lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, lat)
	}
	if !IsFinite(lon) || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// ImpactorSpec describes the incoming body. It is constructed once per request.
type ImpactorSpec struct {
	Diameter    float64     `json:"diameter_m"`
	Velocity    float64     `json:"velocity_m_s"`
	Angle       float64     `json:"angle_deg"`
	Composition Composition `json:"composition"`
}

// NewImpactorSpec validates diameter > 0, velocity > 0, angle in (0, 90] and a
// known composition.
func NewImpactorSpec(diameter, velocity, angle float64, composition Composition) (ImpactorSpec, error) {
	if !IsFinite(diameter) || diameter <= 0 {
		return ImpactorSpec{}, fmt.Errorf("%w: diameter must be positive, got %v", ErrInvalidInput, diameter)
	}
	if !IsFinite(velocity) || velocity <= 0 {
		return ImpactorSpec{}, fmt.Errorf("%w: velocity must be positive, got %v", ErrInvalidInput, velocity)
	}
	if !IsFinite(angle) || angle <= 0 || angle > 90 {
		return ImpactorSpec{}, fmt.Errorf("%w: angle must be in (0, 90], got %v", ErrInvalidInput, angle)
	}
	if !composition.Valid() {
		return ImpactorSpec{}, fmt.Errorf("%w: unknown composition %q", ErrInvalidInput, composition)
	}
	return ImpactorSpec{
		Diameter:    diameter,
		Velocity:    velocity,
		Angle:       angle,
		Composition: composition,
	}, nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
