// Sleep Sync API
//
// REST API that ingests wearable sleep exports and serves scored history,
// trends, and goal progress.
//
//	@title			Sleep Sync API
//	@version		1.0
//	@description	Ingest Health Auto Export sleep payloads, score each night, and track trends and goals.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			ingest
//	@tag.description	Webhook entry point for wearable exports
//
//	@tag.name			sleep-entries
//	@tag.description	Scored sleep history endpoints
//
//	@tag.name			trends
//	@tag.description	Period analytics endpoints
//
//	@tag.name			goals
//	@tag.description	Goal management and progress endpoints
//
//	@tag.name			insights
//	@tag.description	LLM-generated insight endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/blaisecz/sleep-sync/internal/api"
	"github.com/blaisecz/sleep-sync/internal/api/handler"
	"github.com/blaisecz/sleep-sync/internal/config"
	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/llm"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/blaisecz/sleep-sync/internal/seed"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when no OTLP endpoint is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-sync-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.SleepEntry{}, &domain.Goal{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewSleepEntryRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	ingestionService := service.NewIngestionService(entryRepo, goalRepo, userRepo, cfg.SleepCutoffHour)
	entryService := service.NewSleepEntryService(entryRepo, userRepo)
	trendService := service.NewTrendService(entryRepo, userRepo)
	goalService := service.NewGoalService(goalRepo, entryRepo, userRepo)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAISleepInsightsModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	// Initialize insights service
	insightsService := service.NewInsightsService(trendService, goalService, openaiClient, entryRepo, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	ingestHandler := handler.NewIngestHandler(ingestionService)
	entryHandler := handler.NewSleepEntryHandler(entryService)
	trendHandler := handler.NewTrendHandler(trendService)
	goalHandler := handler.NewGoalHandler(goalService)
	insightsHandler := handler.NewInsightsHandler(insightsService)

	// Setup router
	router := api.NewRouter(userHandler, ingestHandler, entryHandler, trendHandler, goalHandler, insightsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
