package http

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulation"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Simulator runs the calculator. Implemented by simulation.Service.
type Simulator interface {
	SimulateImpact(ctx context.Context, spec domain.ImpactorSpec, coord domain.Coordinates) (simulation.ImpactReport, error)
	SimulateDeflection(ctx context.Context, params physics.DeflectionParams) (simulation.DeflectionReport, error)
	Trajectory(semiMajorAxis, eccentricity float64, numPoints int) (iter.Seq[domain.OrbitalPoint], error)
	OrientedTrajectory(el domain.OrbitalElements, numPoints int) (iter.Seq[domain.OrbitalPoint], error)
}

// AreaAssessor estimates the toll around an impact point. Implemented by
// simulation.AreaAssessor.
type AreaAssessor interface {
	Places(ctx context.Context, centre domain.Coordinates, radiusM float64) ([]domain.Place, error)
	EstimatePopulation(ctx context.Context, req simulation.PopulationRequest) (domain.PopulationEstimate, error)
	AssessBiology(ctx context.Context, req simulation.BiologyRequest) (simulation.BiologyReport, error)
}

// GeoResolver assembles the geographic context of a point.
type GeoResolver interface {
	Resolve(ctx context.Context, coord domain.Coordinates) domain.GeographicContext
}

// NEOFeed lists recent near-Earth object approaches.
type NEOFeed interface {
	RecentNEOs(ctx context.Context) ([]domain.NEOSummary, error)
}

// SmallBodyLookup fetches a small-body record by designation.
type SmallBodyLookup interface {
	Lookup(ctx context.Context, id string) (domain.SmallBodyRecord, error)
}

// Deps are the collaborators behind the API routes.
type Deps struct {
	Simulator   Simulator
	Area        AreaAssessor
	Geo         GeoResolver
	NEOs        NEOFeed
	SmallBodies SmallBodyLookup
	Ready       sharedobs.ReadinessChecker

	// SampleNEOs is served when the NEO feed fails.
	SampleNEOs func() []domain.NEOSummary
}

// Server exposes the simulation API along with health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		deps:   deps,
		logger: logger,
	}

	mux.HandleFunc("POST /api/simulate/impact", s.handleSimulateImpact)
	mux.HandleFunc("POST /api/simulate/deflection", s.handleSimulateDeflection)
	mux.HandleFunc("POST /api/orbital-trajectory", s.handleTrajectory)
	mux.HandleFunc("GET /api/neo/recent", s.handleRecentNEOs)
	mux.HandleFunc("GET /api/nasa/sbdb/{id}", s.handleSmallBody)
	mux.HandleFunc("GET /api/nasa/sbdb/{id}/trajectory", s.handleSmallBodyTrajectory)
	mux.HandleFunc("POST /api/cities", s.handleCities)
	mux.HandleFunc("POST /api/population", s.handlePopulation)
	mux.HandleFunc("POST /api/impact/flora-fauna", s.handleFloraFauna)
	mux.HandleFunc("GET /api/usgs/context", s.handleGeoContext)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
