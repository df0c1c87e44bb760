package routes

import (
	"context"
	"net/http"
	"time"

	"blackbox/flightlog/internal/api"
	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/db"
	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/metrics"
	"blackbox/flightlog/internal/middleware"
	"blackbox/flightlog/internal/providers"
	"blackbox/flightlog/internal/services"
	"blackbox/flightlog/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the full dependency graph and returns the router.
// Restore runs here, before the handler is ever served, so the cockpit
// view never sees a pre-restore state.
func RegisterRoutes(upSince time.Time, redisClient *redis.Client) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Repositories over the two DB handles
	trackRepo := repositories.NewTrackRepository(db.OrmDB)
	statsRepo := repositories.NewTrackStatsRepository(db.DB)

	// Collaborators
	kvStore := common.NewRedisKVStore(redisClient)
	locationProvider := providers.NewAgentLocationProvider()
	cache := common.NewCacheService(300, 600)

	// Services
	sessionSvc := services.NewFlightSessionService(kvStore, locationProvider, trackRepo)
	radarSvc := services.NewRadarStatsService(trackRepo, cache, metricsReg)
	cockpitSvc := services.NewCockpitStatsService(trackRepo, statsRepo)
	transferSvc := services.NewTransferService(trackRepo)

	// A persisted draft must be visible before the first request lands.
	sessionSvc.Restore(context.Background())

	workers.InitWorkers(radarSvc)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, redisClient, upSince))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/flight", func(r chi.Router) {
			r.Post("/start", api.StartFlightHandler(sessionSvc, metricsReg))
			r.Post("/end", api.EndFlightHandler(sessionSvc, radarSvc, metricsReg))
			r.Post("/discard", api.DiscardFlightHandler(sessionSvc, metricsReg))
			r.Get("/state", api.FlightStateHandler(sessionSvc))
		})

		r.Get("/radar/stats", api.RadarStatsHandler(radarSvc))
		r.Get("/cockpit/stats", api.CockpitStatsHandler(cockpitSvc))

		r.Route("/tracks", func(r chi.Router) {
			r.Get("/", api.ListTracksHandler(trackRepo))
			r.Get("/export", api.ExportTracksHandler(transferSvc))
			r.Post("/import", api.ImportTracksHandler(transferSvc, radarSvc, metricsReg))
			r.Get("/{id}", api.GetTrackHandler(trackRepo))
			r.Patch("/{id}", api.UpdateTrackHandler(trackRepo, radarSvc))
			r.Delete("/{id}", api.DeleteTrackHandler(trackRepo, radarSvc))
		})
	})

	return r
}
