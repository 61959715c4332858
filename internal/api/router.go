package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/sleep-sync/docs"
	"github.com/blaisecz/sleep-sync/internal/api/handler"
	"github.com/blaisecz/sleep-sync/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler     *handler.UserHandler
	ingestHandler   *handler.IngestHandler
	entryHandler    *handler.SleepEntryHandler
	trendHandler    *handler.TrendHandler
	goalHandler     *handler.GoalHandler
	insightsHandler *handler.InsightsHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	ingestHandler *handler.IngestHandler,
	entryHandler *handler.SleepEntryHandler,
	trendHandler *handler.TrendHandler,
	goalHandler *handler.GoalHandler,
	insightsHandler *handler.InsightsHandler,
) *Router {
	return &Router{
		userHandler:     userHandler,
		ingestHandler:   ingestHandler,
		entryHandler:    entryHandler,
		trendHandler:    trendHandler,
		goalHandler:     goalHandler,
		insightsHandler: insightsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Webhook entry point: POST only, GET answers 405
			r.Post("/{userId}/ingest", rt.ingestHandler.Ingest)
			r.Get("/{userId}/ingest", rt.ingestHandler.RejectGet)

			r.Get("/{userId}/sleep-entries", rt.entryHandler.List)
			r.Get("/{userId}/trends", rt.trendHandler.GetTrends)

			r.Route("/{userId}/goals", func(r chi.Router) {
				r.Get("/", rt.goalHandler.List)
				r.Get("/progress", rt.goalHandler.Progress)
				r.Put("/{metric}", rt.goalHandler.Save)
				r.Delete("/{metric}", rt.goalHandler.Delete)
			})

			r.Get("/{userId}/insights", rt.insightsHandler.Generate)
		})
	})

	return r
}
