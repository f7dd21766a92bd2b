package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Migrate brings the prefixed schema up to date.
// Migrations are Go functions because table names depend on the prefix;
// each prefix also keeps its own version table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newProvider(db, tables)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// Reset rolls every migration back, dropping the prefixed tables
func Reset(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newProvider(db, tables)
	if err != nil {
		return err
	}

	results, err := provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration rolled back", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func newProvider(db *sql.DB, tables *TableNames) (*goose.Provider, error) {
	store, err := database.NewStore(database.DialectPostgres, tables.Prefix+"goose_db_version")
	if err != nil {
		return nil, fmt.Errorf("create migration store: %w", err)
	}

	provider, err := goose.NewProvider("", db, nil,
		goose.WithStore(store),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(migrations(tables)...),
	)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

func migrations(t *TableNames) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunTx: execAll(
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name TEXT NOT NULL,
					description TEXT,
					owner_id TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`, t.Rooms),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_owner_idx ON %s (owner_id, created_at)`, t.Rooms, t.Rooms),
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name TEXT NOT NULL,
					parent_id UUID REFERENCES %s (id) ON DELETE CASCADE,
					data_room_id UUID NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`, t.Folders, t.Folders, t.Rooms),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_room_idx ON %s (data_room_id, parent_id)`, t.Folders, t.Folders),
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name TEXT NOT NULL,
					folder_id UUID REFERENCES %s (id) ON DELETE CASCADE,
					data_room_id UUID NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
					size BIGINT NOT NULL,
					mime_type TEXT NOT NULL,
					storage_key TEXT NOT NULL UNIQUE,
					uploaded_by TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`, t.Files, t.Folders, t.Rooms),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_room_idx ON %s (data_room_id, folder_id)`, t.Files, t.Files),
			)},
			&goose.GoFunc{RunTx: execAll(
				fmt.Sprintf(`DROP TABLE IF EXISTS %s`, t.Files),
				fmt.Sprintf(`DROP TABLE IF EXISTS %s`, t.Folders),
				fmt.Sprintf(`DROP TABLE IF EXISTS %s`, t.Rooms),
			)},
		),
	}
}

func execAll(statements ...string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}
