package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is the last table created by steps; its presence means the schema is in place.
const sentinelTable = "public.payment_orders"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_notes",
		SQL: `CREATE TABLE IF NOT EXISTS notes (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title       TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  subject     TEXT        NOT NULL,
  semester    SMALLINT    NOT NULL CHECK (semester BETWEEN 1 AND 8),
  branch      TEXT        NOT NULL DEFAULT 'CSE',
  file_ref    TEXT        NOT NULL UNIQUE,
  uploader_id TEXT        NOT NULL,
  views       BIGINT      NOT NULL DEFAULT 0 CHECK (views >= 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notes_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC, id DESC);`,
	},
	{
		Name: "create_index_notes_subject",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_subject ON notes (LOWER(subject));`,
	},
	{
		Name: "create_index_notes_semester_branch",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_semester_branch ON notes (semester, branch);`,
	},
	{
		Name: "create_table_access_grants",
		SQL: `CREATE TABLE IF NOT EXISTS access_grants (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    TEXT        NOT NULL,
  plan       TEXT        NOT NULL,
  active     BOOLEAN     NOT NULL DEFAULT TRUE,
  expires_at TIMESTAMPTZ NOT NULL,
  payment_id TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_access_grants_user_active",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_access_grants_user_active ON access_grants (user_id, active, expires_at);`,
	},
	{
		Name: "create_table_payment_orders",
		SQL: `CREATE TABLE IF NOT EXISTS payment_orders (
  id         TEXT        PRIMARY KEY,
  user_id    TEXT        NOT NULL,
  amount     BIGINT      NOT NULL CHECK (amount > 0),
  currency   TEXT        NOT NULL,
  receipt    TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks for the sentinel table and runs every step when it is missing.
// Steps are idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
