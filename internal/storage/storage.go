// Package storage holds the key-value blob backends the store and the
// dashboard preferences persist to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/database"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when a key has never been written
var ErrNotFound = errors.New("key not found")

// KV stores opaque values under string keys. Set replaces the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Pinger is implemented by backends that can check their connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewKV creates a backend based on configuration.
// The returned close function releases database connections, if any.
func NewKV(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Mode {
	case config.StorageModeMemory:
		return NewMemoryKV(), noop, nil
	case config.StorageModeLocal:
		kv, err := NewLocalKV(cfg.LocalBasePath)
		return kv, noop, err
	case config.StorageModeSQLite, config.StorageModePostgres:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := database.Migrate(ctx, sqlDB, cfg.Mode); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("Database storage initialized", zap.String("mode", cfg.Mode))
		return NewDatabaseKV(db), sqlDB.Close, nil
	case config.StorageModeAzure:
		if cfg.CloudConnectionString == "" {
			return nil, nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		kv, err := NewAzureBlobKV(ctx, cfg.CloudConnectionString, cfg.CloudContainer, logger)
		return kv, noop, err
	default:
		return nil, nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// MemoryKV keeps values in process memory
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV creates an empty in-memory backend
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
