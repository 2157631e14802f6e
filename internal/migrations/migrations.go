package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements run in order on startup. Every statement is idempotent so the
// schema can be applied on each boot.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		theme_preference TEXT NOT NULL DEFAULT 'light',
		notification_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		notification_times JSONB NOT NULL DEFAULT '["09:00","14:00","20:00"]',
		subscription_status TEXT NOT NULL DEFAULT 'none',
		subscription_package TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		mood_value INTEGER NOT NULL,
		mood_emoji TEXT NOT NULL DEFAULT '',
		mood_color TEXT NOT NULL DEFAULT '',
		factors JSONB NOT NULL DEFAULT '{}',
		journal_text TEXT,
		timestamp TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS worries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		description TEXT NOT NULL,
		intensity INTEGER NOT NULL,
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		resolved_at TIMESTAMPTZ,
		resolution_note TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		prediction_date TEXT NOT NULL,
		predicted_mood DOUBLE PRECISION NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		reasoning TEXT NOT NULL,
		coping_strategies JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		session_id TEXT NOT NULL UNIQUE,
		package_id TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		currency TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		status TEXT NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mood_entries_user_ts ON mood_entries (user_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_worries_user_created ON worries (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_user_created ON predictions (user_id, created_at DESC)`,
}

// Apply runs every migration statement against the database.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration %d: %w", i, err)
		}
	}
	return nil
}
