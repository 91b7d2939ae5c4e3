// Package testutil holds fixtures shared by the package tests
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/straye-as/offer-tracker/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// FixedNow is the clock value of stores built by NewStore
var FixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// SequentialIDs hands out id-1, id-2, ...
type SequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// SetupSQLiteKV creates a migrated SQLite backend in a temp dir
func SetupSQLiteKV(t *testing.T) storage.KV {
	t.Helper()
	kv, closeDB, err := storage.NewKV(context.Background(), &config.StorageConfig{
		Mode:       config.StorageModeSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "offers.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB() })
	return kv
}

// SetupPostgresKV connects to the test PostgreSQL database configured by the
// DATABASE_* environment variables. The test is skipped when DATABASE_HOST
// is unset.
func SetupPostgresKV(t *testing.T) storage.KV {
	t.Helper()
	host := os.Getenv("DATABASE_HOST")
	if host == "" {
		t.Skip("DATABASE_HOST not set, skipping PostgreSQL test")
	}
	port, _ := strconv.Atoi(getEnvOrDefault("DATABASE_PORT", "5432"))

	kv, closeDB, err := storage.NewKV(context.Background(), &config.StorageConfig{
		Mode: config.StorageModePostgres,
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port,
			Name:     getEnvOrDefault("DATABASE_NAME", "offers"),
			User:     getEnvOrDefault("DATABASE_USER", "offers_user"),
			Password: getEnvOrDefault("DATABASE_PASSWORD", "offers_password"),
			SSLMode:  "disable",
		},
	}, zap.NewNop())
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")
	t.Cleanup(func() {
		_ = kv.Delete(context.Background(), store.StateKey)
		_ = closeDB()
	})
	return kv
}

// NewStore creates an initialized store with deterministic ids and clock
func NewStore(t *testing.T, kv storage.KV) *store.Store {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	s := store.New(kv, &SequentialIDs{}, func() time.Time { return FixedNow }, zap.NewNop())
	s.Initialize(context.Background())
	require.True(t, s.Ready())
	return s
}

// CreateTestClient adds a client and returns it
func CreateTestClient(t *testing.T, s *store.Store, name string) domain.Client {
	t.Helper()
	client, err := s.AddClient(context.Background(), name, "")
	require.NoError(t, err)
	return client
}

// CreateTestOffer adds an offer created on the given day (YYYY-MM-DD)
func CreateTestOffer(t *testing.T, s *store.Store, clientID, offerNumber string, price, cost float64, status domain.OfferStatus, day string) domain.Offer {
	t.Helper()
	offer, err := s.AddOffer(context.Background(), store.OfferInput{
		OfferNumber: offerNumber,
		ClientID:    clientID,
		Price:       price,
		Cost:        cost,
		Status:      string(status),
		CreatedAt:   day + "T00:00:00Z",
		ValidUntil:  day + "T00:00:00Z",
	})
	require.NoError(t, err)
	return offer
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
