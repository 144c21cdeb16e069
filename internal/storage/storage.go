// Package storage provides the persistent key/value capability the bookmark
// manager is built on.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/yellowsense/jobswipe/internal/config"
	"github.com/yellowsense/jobswipe/internal/database"
)

// Adapter is a string key/value store. found is false when the key has
// never been written.
type Adapter interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store is an Adapter that owns a connection.
type Store interface {
	Adapter
	Close() error
}

// Open returns the store selected by cfg.StorageDriver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("⚠️  Using in-memory storage, bookmarks will not survive a restart")
		return NewMemoryStore(), nil
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	case "sqlite", "":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Printf("💾 Bookmarks stored in %s", cfg.SQLitePath)
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
