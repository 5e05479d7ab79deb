package domain

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Elevation sources reported when no provider answered.
const (
	ElevationSourceHeuristic = "heuristic"

	SeismicSourceUnavailable = "unavailable"
	SeismicSourceDisabled    = "disabled"
)

// ElevationProvider looks up terrain elevation in metres above sea level.
type ElevationProvider interface {
	Name() string
	Elevation(ctx context.Context, coord Coordinates) (float64, error)
}

// SeismicHistoryProvider summarizes M4.0+ earthquakes within 500 km of a
// point over the preceding 365 days.
type SeismicHistoryProvider interface {
	SeismicHistory(ctx context.Context, coord Coordinates) (SeismicHistory, error)
}

// ElevationReading is a resolved elevation and the provider that produced it.
type ElevationReading struct {
	Meters float64
	Source string
}

// FallbackRecorder observes which link of the elevation chain answered.
type FallbackRecorder interface {
	RecordElevationSource(source string)
}

// ElevationChain tries providers in order. The first success wins and
// exhaustion falls back to HeuristicElevation; Resolve never fails.
type ElevationChain struct {
	providers []ElevationProvider
	recorder  FallbackRecorder
	logger    *slog.Logger
}

// NewElevationChain creates a chain over the given providers. A nil recorder
// disables fallback reporting.
func NewElevationChain(logger *slog.Logger, recorder FallbackRecorder, providers ...ElevationProvider) *ElevationChain {
	return &ElevationChain{
		providers: providers,
		recorder:  recorder,
		logger:    logger,
	}
}

// Resolve returns the first successful provider reading or the heuristic estimate.
func (c *ElevationChain) Resolve(ctx context.Context, coord Coordinates) ElevationReading {
	for _, p := range c.providers {
		meters, err := p.Elevation(ctx, coord)
		if err == nil && IsFinite(meters) {
			c.record(p.Name())
			return ElevationReading{Meters: meters, Source: p.Name()}
		}
		c.logger.Warn("elevation lookup failed, trying next provider",
			"provider", p.Name(),
			"lat", coord.Lat,
			"lon", coord.Lon,
			"error", err,
		)
	}
	c.record(ElevationSourceHeuristic)
	return ElevationReading{Meters: HeuristicElevation(coord), Source: ElevationSourceHeuristic}
}

func (c *ElevationChain) record(source string) {
	if c.recorder != nil {
		c.recorder.RecordElevationSource(source)
	}
}

// ContextResolver assembles a GeographicContext from the elevation chain and
// an optional seismic history provider.
type ContextResolver struct {
	elevation *ElevationChain
	seismic   SeismicHistoryProvider
	logger    *slog.Logger
}

// NewContextResolver creates a resolver. Pass a nil seismic provider to skip
// the seismic history lookup.
func NewContextResolver(elevation *ElevationChain, seismic SeismicHistoryProvider, logger *slog.Logger) *ContextResolver {
	return &ContextResolver{
		elevation: elevation,
		seismic:   seismic,
		logger:    logger,
	}
}

// Resolve looks up elevation and seismic history concurrently. Failures
// degrade to heuristic or empty values (graceful degradation).
func (r *ContextResolver) Resolve(ctx context.Context, coord Coordinates) GeographicContext {
	var (
		reading ElevationReading
		history = SeismicHistory{Source: SeismicSourceDisabled}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reading = r.elevation.Resolve(gctx, coord)
		return nil
	})
	if r.seismic != nil {
		g.Go(func() error {
			h, err := r.seismic.SeismicHistory(gctx, coord)
			if err != nil {
				r.logger.Warn("seismic history lookup failed",
					"lat", coord.Lat,
					"lon", coord.Lon,
					"error", err,
				)
				history = SeismicHistory{Source: SeismicSourceUnavailable}
				return nil
			}
			history = h
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return NewGeographicContext(coord, reading, history)
}
