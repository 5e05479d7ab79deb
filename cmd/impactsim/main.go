package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/gbif"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/geocache"
	httpadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/nasa"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/openelevation"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/overpass"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/usgs"
	"github.com/couchcryptid/asteroid-impact-service/internal/config"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulation"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	newUpstream := func(name string) *upstream.Client {
		return upstream.New(name, cfg.UpstreamTimeout, cfg.UpstreamRateLimit, metrics)
	}

	// Geographic lookups (feature-flagged via GEO_LOOKUPS_ENABLED). When
	// disabled the chain holds no providers and every site is heuristic.
	var (
		elevationProviders []domain.ElevationProvider
		seismic            domain.SeismicHistoryProvider
	)
	if cfg.GeoLookupsEnabled {
		elevationProviders = []domain.ElevationProvider{
			geocache.NewCachedElevation(usgs.NewElevationClient(newUpstream("usgs")), cfg.LookupCacheSize, metrics),
			geocache.NewCachedElevation(openelevation.NewClient(newUpstream("open-elevation")), cfg.LookupCacheSize, metrics),
		}
		seismic = geocache.NewCachedSeismicHistory(
			usgs.NewEarthquakeClient(newUpstream("usgs-earthquakes"), clock),
			"usgs-earthquakes", cfg.LookupCacheSize, metrics,
		)
		metrics.GeoLookupsEnabled.Set(1)
		logger.Info("geographic lookups enabled", "cache_size", cfg.LookupCacheSize, "timeout", cfg.UpstreamTimeout)
	} else {
		logger.Info("geographic lookups disabled")
	}
	chain := domain.NewElevationChain(logger, metrics, elevationProviders...)
	resolver := domain.NewContextResolver(chain, seismic, logger)

	// Simulation events (feature-flagged via KAFKA_ENABLED).
	var (
		publisher simulation.EventPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("simulation events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("simulation events disabled")
	}

	svc := simulation.New(resolver, publisher, logger, metrics)
	area := simulation.NewAreaAssessor(
		overpass.NewClient(newUpstream("overpass")),
		gbif.NewClient(newUpstream("gbif")),
		logger,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Simulator:   svc,
		Area:        area,
		Geo:         resolver,
		NEOs:        nasa.NewFeedClient(newUpstream("nasa"), cfg.NASAAPIKey, clock),
		SmallBodies: nasa.NewSBDBClient(newUpstream("sbdb")),
		Ready:       svc,
		SampleNEOs:  nasa.SampleNEOs,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := svc.Drain(shutdownCtx); err != nil {
		logger.Error("event drain error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
