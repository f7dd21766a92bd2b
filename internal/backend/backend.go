// Package backend opens the persistence and object storage collaborators
// selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dataroom/internal/config"
	roomRepo "dataroom/internal/domain/repositories/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	badgerRepo "dataroom/internal/repository/badger"
	"dataroom/internal/repository/postgres"
	s3Storage "dataroom/internal/storage/s3"

	"github.com/dgraph-io/badger/v4"
)

// Backend bundles the collaborators the mutation engine needs
type Backend struct {
	Repos   *roomRepo.Store
	Storage roomSvc.ObjectStorage

	closers []func() error
}

// Close releases every opened resource
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// Open connects the configured persistence and storage backends.
// Postgres schemas are migrated on open.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	// opened lazily; shared by the badger repositories and badger blob storage
	var db *badger.DB
	openBadger := func() (*badger.DB, error) {
		if db != nil {
			return db, nil
		}
		var err error
		db, err = badgerRepo.Open(badgerRepo.Options{Dir: cfg.BadgerDir})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		logger.Info("badger opened", "dir", cfg.BadgerDir)
		return db, nil
	}

	switch cfg.PersistenceBackend {
	case config.BackendPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { pool.Close(); return nil })

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.Migrate(ctx, pool, tables, logger); err != nil {
			b.Close()
			return nil, err
		}
		b.Repos = postgres.NewStore(&postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger})
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)

	case config.BackendBadger:
		db, err := openBadger()
		if err != nil {
			return nil, err
		}
		b.Repos = badgerRepo.NewStore(db, logger)

	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.PersistenceBackend)
	}

	switch cfg.StorageBackend {
	case config.BackendS3:
		store, err := s3Storage.New(ctx, s3Storage.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			KeyPrefix:       cfg.S3KeyPrefix,
		})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Storage = store
		logger.Info("object storage ready", "backend", "s3", "bucket", cfg.S3Bucket)

	case config.BackendBadger:
		db, err := openBadger()
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Storage = badgerRepo.NewBlobStorage(db)
		logger.Info("object storage ready", "backend", "badger")

	default:
		b.Close()
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return b, nil
}
