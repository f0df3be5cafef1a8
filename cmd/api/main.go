package main

import (
	"context"
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderdocs/internal/config"
	"orderdocs/internal/database"
	"orderdocs/internal/database/migration"
	"orderdocs/internal/extract"
	handlers "orderdocs/internal/http/handler"
	"orderdocs/internal/http/middleware"
	"orderdocs/internal/logger"
	"orderdocs/internal/otel"
	"orderdocs/internal/pipeline"
	"orderdocs/internal/repository/jsonfile"
	"orderdocs/internal/repository/postgres"
	"orderdocs/internal/service"
	"orderdocs/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Init(logger.Config(cfg.Log))

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection for the ingestion journal
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Per-type JSON record stores
	records, err := jsonfile.NewRecordJSONFile(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("failed to initialize record stores: %v", err)
	}

	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize http metrics: %v", err)
	}
	pipeMetrics, err := pipeline.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to initialize pipeline metrics: %v", err)
	}

	// Pipeline, journal and service wiring
	runner := pipeline.NewRunner(extract.New(), records, pipeMetrics, nil)
	journal := postgres.NewJournalPostgres(db)
	docSvc := service.NewDocumentService(objStore, runner, records, journal)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, docSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
