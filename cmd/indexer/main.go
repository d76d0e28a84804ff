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
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/adapters/search"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	"github.com/zinklake/shuttle/internal/infrastructure/clients/typesense"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
	"github.com/zinklake/shuttle/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Log.Env, cfg.Log.Level)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv("RESET_TYPESENSE") == "true" {
		reset = true
	}

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	// Re-read every run so an edited override file is picked up.
	faqs, err := catalog.LoadFaqs(cfg.Catalog.FaqPath)
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}

	return syncIndex(ctx, search.NewTypesenseAdapter(tsClient), faqs, reset)
}

// syncIndex upserts every entry in catalog order. Failures on single entries
// are logged and counted; the run continues.
func syncIndex(ctx context.Context, index repositories.FaqIndex, faqs []entities.FaqEntry, reset bool) error {
	if reset {
		log.Info().Msg("reset requested, deleting faq collection")
		if err := index.Reset(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	if err := index.InitSchema(ctx); err != nil {
		return err
	}

	failed := 0
	for i, entry := range faqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := index.Index(ctx, entry, i); err != nil {
			failed++
			log.Warn().Err(err).Str("faq_id", entry.ID).Msg("failed to index faq")
		}
	}

	log.Info().Int("indexed", len(faqs)-failed).Int("failed", failed).Msg("indexing complete")
	return nil
}
