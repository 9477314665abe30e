package store

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/db"

	"github.com/rs/zerolog"
)

const (
	// ScopeGlobal holds data every client shares.
	ScopeGlobal = ""

	KeyUsers            = "users"
	KeyProducts         = "products"
	KeySequence         = "sequence"
	KeyCart             = "cart"
	KeyLoggedInUser     = "loggedInUser"
	KeyEditingProductID = "editingProductId"
)

const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// KeyValueStore is a string-keyed store of JSON values, namespaced by scope.
//
// Get returns (nil, nil) for a missing key and Delete is a no-op for one.
type KeyValueStore interface {
	Get(ctx context.Context, scope, key string) ([]byte, error)
	Set(ctx context.Context, scope, key string, value []byte) error
	Delete(ctx context.Context, scope, key string) error
	Close() error
}

// Open connects the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (KeyValueStore, error) {
	logger.Info().Str("backend", cfg.StoreBackend).Msg("Opening store")

	switch cfg.StoreBackend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendMySQL:
		database, err := db.InitDB(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err = db.RunMigrations(database); err != nil {
			database.Close()
			return nil, err
		}
		return NewMySQLStore(database), nil
	case BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case BackendRedis:
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case BackendBadger:
		return NewBadgerStore(cfg.BadgerDir)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}

// getAs reads (scope, key) into out. It reports false when the key is missing.
func getAs(ctx context.Context, kv KeyValueStore, scope, key string, out any) (bool, error) {
	raw, err := kv.Get(ctx, scope, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

func setAny(ctx context.Context, kv KeyValueStore, scope, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err = kv.Set(ctx, scope, key, b); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
