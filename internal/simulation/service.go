// Package simulation orchestrates one request: it validates input, resolves
// the geographic context, runs the physics chain and publishes the outcome.
package simulation

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/orbit"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"github.com/google/uuid"
)

const publishTimeout = 10 * time.Second

// ContextResolver assembles the geographic context of an impact site.
type ContextResolver interface {
	Resolve(ctx context.Context, coord domain.Coordinates) domain.GeographicContext
}

// EventPublisher records completed simulations in an event sink.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SimulationEvent) error
}

// Service runs simulations. It is safe for concurrent use.
type Service struct {
	resolver  ContextResolver
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready atomic.Bool

	// mu orders inflight.Add against the ready flip in Drain.
	mu       sync.Mutex
	inflight sync.WaitGroup
}

// New creates a Service. Pass a nil publisher to disable event publishing.
func New(resolver ContextResolver, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
	s.ready.Store(true)
	return s
}

// ImpactReport is a completed impact simulation.
type ImpactReport struct {
	ID          string                   `json:"simulation_id"`
	SimulatedAt time.Time                `json:"simulated_at"`
	Impactor    domain.ImpactorSpec      `json:"impactor"`
	Location    domain.GeographicContext `json:"location"`
	Result      domain.ImpactResult      `json:"results"`
}

// DeflectionReport is a completed deflection estimate.
type DeflectionReport struct {
	ID             string                          `json:"simulation_id"`
	SimulatedAt    time.Time                       `json:"simulated_at"`
	Result         domain.DeflectionResult         `json:"deflection"`
	Recommendation domain.DeflectionRecommendation `json:"recommendation"`
}

// SimulateImpact resolves the site at coord and runs the impact chain for spec.
func (s *Service) SimulateImpact(ctx context.Context, spec domain.ImpactorSpec, coord domain.Coordinates) (ImpactReport, error) {
	start := time.Now()

	geo := s.resolver.Resolve(ctx, coord)
	result, err := physics.Simulate(spec, geo)
	s.observe(domain.KindImpact, start, err)
	if err != nil {
		return ImpactReport{}, err
	}

	report := ImpactReport{
		ID:          uuid.NewString(),
		SimulatedAt: domain.Now(),
		Impactor:    spec,
		Location:    geo,
		Result:      result,
	}
	s.logger.Info("impact simulated",
		"simulation_id", report.ID,
		"lat", coord.Lat,
		"lon", coord.Lon,
		"megatons", result.Megatons,
		"terrain", geo.Terrain,
		"elevation_source", geo.ElevationSource,
	)

	s.publish(ctx, domain.SimulationEvent{
		ID:          report.ID,
		Kind:        domain.KindImpact,
		SimulatedAt: report.SimulatedAt,
		Impactor:    &report.Impactor,
		Location:    &report.Location,
		Impact:      &report.Result,
	})
	return report, nil
}

// SimulateDeflection estimates a deflection mission.
func (s *Service) SimulateDeflection(ctx context.Context, params physics.DeflectionParams) (DeflectionReport, error) {
	start := time.Now()

	result, err := physics.Deflect(params)
	s.observe(domain.KindDeflection, start, err)
	if err != nil {
		return DeflectionReport{}, err
	}

	report := DeflectionReport{
		ID:             uuid.NewString(),
		SimulatedAt:    domain.Now(),
		Result:         result,
		Recommendation: physics.Recommend(result),
	}
	s.logger.Info("deflection simulated",
		"simulation_id", report.ID,
		"strategy", result.Strategy,
		"deflection_km", result.DeflectionKm,
		"success", result.Success,
	)

	s.publish(ctx, domain.SimulationEvent{
		ID:          report.ID,
		Kind:        domain.KindDeflection,
		SimulatedAt: report.SimulatedAt,
		Deflection:  &report.Result,
	})
	return report, nil
}

// Trajectory validates the orbit and returns its lazily sampled points.
func (s *Service) Trajectory(semiMajorAxis, eccentricity float64, numPoints int) (iter.Seq[domain.OrbitalPoint], error) {
	start := time.Now()
	err := orbit.Validate(semiMajorAxis, eccentricity, numPoints)
	s.observe(kindTrajectory, start, err)
	if err != nil {
		return nil, err
	}
	return orbit.Trajectory(semiMajorAxis, eccentricity, numPoints), nil
}

// OrientedTrajectory validates elements and returns the rotated trajectory.
func (s *Service) OrientedTrajectory(el domain.OrbitalElements, numPoints int) (iter.Seq[domain.OrbitalPoint], error) {
	start := time.Now()
	err := orbit.Validate(el.SemiMajorAxis, el.Eccentricity, numPoints)
	s.observe(kindTrajectory, start, err)
	if err != nil {
		return nil, err
	}
	return orbit.OrientedTrajectory(el, numPoints), nil
}

// CheckReadiness returns nil while the service accepts simulations, or an
// error once Drain has been called.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("simulation service is draining")
	}
	return nil
}

// Drain stops reporting ready and waits for in-flight event publishes until
// ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.ready.Store(false)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

const kindTrajectory domain.SimulationKind = "trajectory"

func (s *Service) observe(kind domain.SimulationKind, start time.Time, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	s.metrics.Simulations.WithLabelValues(string(kind), outcome).Inc()
	s.metrics.SimulationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}

// publish sends the event in the background. Failures are logged and counted
// but never fail the simulation.
func (s *Service) publish(ctx context.Context, event domain.SimulationEvent) {
	if s.publisher == nil {
		return
	}

	s.mu.Lock()
	if !s.ready.Load() {
		s.mu.Unlock()
		s.metrics.EventsFailed.Inc()
		s.logger.Warn("service draining, simulation event dropped",
			"simulation_id", event.ID,
			"kind", event.Kind,
		)
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()

		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(pctx, event); err != nil {
			s.metrics.EventsFailed.Inc()
			s.logger.Warn("publish simulation event failed",
				"simulation_id", event.ID,
				"kind", event.Kind,
				"error", err,
			)
			return
		}
		s.metrics.EventsPublished.Inc()
	}()
}
