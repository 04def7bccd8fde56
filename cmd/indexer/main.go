package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/adapters/database"
	"github.com/zatekoja/careprice/internal/adapters/search"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/careprice/internal/infrastructure/observability"
	"github.com/zatekoja/careprice/pkg/config"
)

// The indexer rebuilds the Typesense procedures collection from PostgreSQL.
// Run once for a full rebuild, or with -interval for periodic reindexing.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing procedures collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("careprice-indexer", os.Getenv("ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("Reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("Indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	procedureRepo := database.NewProcedureAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("Deleting procedures collection before reindex")
		if err := adapter.Drop(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to delete collection")
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	procedures, err := procedureRepo.List(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	for _, procedure := range procedures {
		if err := adapter.Index(ctx, procedure); err != nil {
			log.Warn().Err(err).Str("procedure_id", procedure.ID).Msg("Failed to index procedure")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Int("total", len(procedures)).Msg("Reindex finished")
	return nil
}
