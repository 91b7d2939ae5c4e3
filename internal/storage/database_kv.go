package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/straye-as/offer-tracker/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry is a row of the kv_entries table
type kvEntry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// DatabaseKV stores values in the kv_entries table through GORM
type DatabaseKV struct {
	db *gorm.DB
}

// NewDatabaseKV wraps a migrated database
func NewDatabaseKV(db *gorm.DB) *DatabaseKV {
	return &DatabaseKV{db: db}
}

func (s *DatabaseKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *DatabaseKV) Set(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *DatabaseKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *DatabaseKV) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&kvEntry{}).Order("key").Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Ping reports whether the database is reachable
func (s *DatabaseKV) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}
