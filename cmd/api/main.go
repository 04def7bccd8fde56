package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/adapters/cache"
	"github.com/zatekoja/careprice/internal/adapters/database"
	"github.com/zatekoja/careprice/internal/adapters/events"
	"github.com/zatekoja/careprice/internal/adapters/search"
	"github.com/zatekoja/careprice/internal/api/handlers"
	"github.com/zatekoja/careprice/internal/api/routes"
	"github.com/zatekoja/careprice/internal/application/services"
	"github.com/zatekoja/careprice/internal/domain/providers"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/redis"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/careprice/internal/infrastructure/observability"
	"github.com/zatekoja/careprice/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry tracing is optional
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// PostgreSQL is required
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Redis is optional; without it the service runs uncached and eventless
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Typesense is optional; search falls back to the database
	var searchRepo repositories.ProcedureSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, search will use the database")
	} else {
		typesenseAdapter := search.NewTypesenseAdapter(typesenseClient)
		if err := typesenseAdapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize search schema, search will use the database")
		} else {
			searchRepo = typesenseAdapter
		}
	}

	// Repositories
	practiceRepo := database.NewPracticeAdapter(pgClient)
	procedureRepo := database.NewProcedureAdapter(pgClient)
	pricingRepo := database.NewPricingAdapter(pgClient)
	txManager := database.NewTxManager(pgClient)

	// Services
	practiceService := services.NewPracticeService(practiceRepo)
	procedureService := services.NewProcedureService(procedureRepo, searchRepo)
	searchService := services.NewSearchService(procedureRepo, searchRepo)
	pricingService := services.NewPricingService(procedureRepo, practiceRepo, pricingRepo, cacheProvider, eventBus)
	comparisonService := services.NewComparisonService(procedureRepo, pricingRepo, cacheProvider, metrics)
	importService := services.NewImportService(txManager, cacheProvider, eventBus, searchRepo)

	var invalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
			invalidationService = nil
		}
	}

	// HTTP layer
	router := routes.NewRouter(
		handlers.NewPracticeHandler(practiceService),
		handlers.NewProcedureHandler(procedureService, searchService),
		handlers.NewPricingHandler(pricingService),
		handlers.NewComparisonHandler(comparisonService),
		handlers.NewImportHandler(importService),
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}

	if invalidationService != nil {
		invalidationService.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event bus")
		}
	}

	log.Info().Msg("Server exited")
}
