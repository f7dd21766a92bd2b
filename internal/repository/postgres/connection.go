package postgres

import (
	"context"
	"fmt"
	"log/slog"

	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix  string
	Rooms   string
	Folders string
	Files   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:  prefix,
		Rooms:   fmt.Sprintf("%sdata_rooms", prefix),
		Folders: fmt.Sprintf("%sfolders", prefix),
		Files:   fmt.Sprintf("%sfiles", prefix),
	}
}

// Pool sizing
const (
	maxConns = 25
	minConns = 5
)

// CreateConnectionPool creates a pgx connection pool.
//
// Port 6543 is the Supabase/PgBouncer transaction pooler, which does not
// support prepared statements. Unless the connection string already sets
// default_query_exec_mode, such connections switch to QueryExecModeCacheDescribe:
// extended protocol, cached descriptions, no server-side prepared statements.
// Direct connections keep pgx's default statement cache.
//
// Table names are interpolated with fmt.Sprintf before the SQL reaches the
// server, so each prefix simply gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
// This lets repositories join a transaction opened by the TransactionManager.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx := getTx(ctx); tx != nil {
		return tx
	}
	return pool
}

// NewStore wires the Postgres repositories into one persistence collaborator
func NewStore(config *RepositoryConfig) *roomRepo.Store {
	return &roomRepo.Store{
		Rooms:     NewRoomRepository(config),
		Folders:   NewFolderRepository(config),
		Files:     NewFileRepository(config),
		TxManager: NewTransactionManager(config.Pool, config.Logger),
	}
}
