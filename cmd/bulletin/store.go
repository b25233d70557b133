package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pevans/bulletin/announcement"
	"github.com/pevans/bulletin/config"
	"github.com/redis/go-redis/v9"
)

// openStore opens the backend selected by cfg.Type.
func openStore(ctx context.Context, cfg config.StorageConfig) (announcement.Store, error) {
	switch cfg.Type {
	case config.StorageSQLite:
		store, err := announcement.NewSQLiteStore(cfg.SQLite.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageRedis:
		store, err := announcement.OpenRedisStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.ListKey, cfg.Redis.CounterKey)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
}

// mustOpenBoard opens the configured store and wraps it in a board, exiting
// on failure. The returned func closes the store.
func mustOpenBoard(ctx context.Context, cfg *config.Config) (*announcement.Board, func()) {
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open %s store: %v\n", cfg.Storage.Type, err)
		os.Exit(1)
	}
	return announcement.NewBoard(store), func() { store.Close() }
}
