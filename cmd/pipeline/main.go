package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"orderdocs/internal/config"
	"orderdocs/internal/extract"
	"orderdocs/internal/logger"
	"orderdocs/internal/pipeline"
	"orderdocs/internal/repository/jsonfile"
)

// The batch driver: walk the input folder, run every eligible document through
// extraction, classification and parsing, and upsert the results into the
// per-type JSON stores in the store folder. Per-document failures are logged
// and skipped; the run itself only fails on setup errors.
func main() {
	cfg := config.Load()
	logger.Init(logger.Config(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := jsonfile.NewRecordJSONFile(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("failed to initialize record stores: %v", err)
	}

	runner := pipeline.NewRunner(extract.New(), records, nil, nil)

	sum, err := runner.Run(ctx, cfg.Pipeline.InputDir)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	slog.Info("pipeline run complete",
		"input_dir", cfg.Pipeline.InputDir,
		"store_dir", cfg.Store.Dir,
		"processed", sum.Processed,
		"inserted", sum.Inserted,
		"updated", sum.Updated,
		"skipped", sum.Skipped,
		"errors", sum.Errors,
	)
}
