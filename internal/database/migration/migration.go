package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_ingested_documents",
		SQL: `CREATE TABLE IF NOT EXISTS ingested_documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  doc_type     TEXT        NOT NULL,
  outcome      TEXT        NOT NULL,
  order_id     TEXT,
  processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_ingested_documents_doc_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ingested_documents_doc_type ON ingested_documents (doc_type);`,
	},
	{
		Name: "create_index_ingested_documents_order_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ingested_documents_order_id ON ingested_documents (order_id);`,
	},
	{
		Name: "create_index_ingested_documents_processed_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ingested_documents_processed_at ON ingested_documents (processed_at);`,
	},
}

// EnsureMigrated checks if the journal table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := slog.Default().With("component", "database", "db_host", dbHost)

	var exists bool
	query := "SELECT to_regclass('public.ingested_documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("migration sentinel check failed", "error", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				"migration_step", step.Name,
				"error", err.Error(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("migration step applied",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("migration complete", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
