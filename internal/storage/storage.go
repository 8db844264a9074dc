// Package storage selects the snapshot backend named by the configuration.
// It is the only package that imports the persistence implementations.
package storage

import (
	"context"
	"fmt"

	"roombook/internal/blob"
	"roombook/internal/config"
	"roombook/internal/infra/persistence/file"
	"roombook/internal/infra/persistence/memory"
	"roombook/internal/infra/persistence/object"
	"roombook/internal/infra/persistence/postgres"
	"roombook/internal/infra/persistence/redis"
	"roombook/internal/infra/persistence/sqlite"
	"roombook/internal/snapshot"
)

// Open returns the snapshot.Store for cfg.Driver (default file).
func Open(ctx context.Context, cfg config.Storage) (snapshot.Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverFile
	}
	switch driver {
	case config.DriverFile:
		return file.New(cfg.SnapshotPath), nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		store, err := redis.NewStore(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverS3:
		blobs, err := blob.Open(ctx, blob.Options{
			Driver: blob.DriverS3,
			S3: blob.S3Config{
				Bucket:          cfg.S3.Bucket,
				Region:          cfg.S3.Region,
				Endpoint:        cfg.S3.Endpoint,
				PathStyle:       cfg.S3.PathStyle,
				AccessKeyID:     cfg.S3.AccessKeyID,
				SecretAccessKey: cfg.S3.SecretAccessKey,
				SessionToken:    cfg.S3.SessionToken,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("open s3: %w", err)
		}
		return object.New(blobs, cfg.S3.Key), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
