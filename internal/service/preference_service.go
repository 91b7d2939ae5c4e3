package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/storage"
	"go.uber.org/zap"
)

// ColumnsKey is the storage key of the dashboard column preference
const ColumnsKey = "dashboard-columns-v1"

// PreferenceService keeps the dashboard column preference. Its lifecycle is
// independent of the client and offer state.
type PreferenceService struct {
	kv     storage.KV
	logger *zap.Logger
}

func NewPreferenceService(kv storage.KV, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		kv:     kv,
		logger: logger,
	}
}

// Columns returns the visible columns. Anything unusable in storage yields
// every column in canonical order.
func (s *PreferenceService) Columns(ctx context.Context) []domain.ColumnKey {
	raw, err := s.kv.Get(ctx, ColumnsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read column preference", zap.Error(err))
		}
		return defaultColumns()
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("Column preference is malformed", zap.Error(err))
		return defaultColumns()
	}

	columns := sanitizeColumns(stored)
	if len(columns) == 0 {
		return defaultColumns()
	}
	return columns
}

// SetColumns stores the known columns of the request in the given order and
// returns the effective preference
func (s *PreferenceService) SetColumns(ctx context.Context, requested []domain.ColumnKey) ([]domain.ColumnKey, error) {
	values := make([]string, len(requested))
	for i, c := range requested {
		values[i] = string(c)
	}
	columns := sanitizeColumns(values)

	raw, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode column preference: %w", err)
	}
	if err := s.kv.Set(ctx, ColumnsKey, raw); err != nil {
		return nil, fmt.Errorf("failed to persist column preference: %w", err)
	}

	if len(columns) == 0 {
		return defaultColumns(), nil
	}
	return columns, nil
}

// sanitizeColumns drops unknown and repeated ids, keeping first occurrences
func sanitizeColumns(values []string) []domain.ColumnKey {
	columns := make([]domain.ColumnKey, 0, len(values))
	seen := make(map[domain.ColumnKey]bool, len(values))
	for _, v := range values {
		c := domain.ColumnKey(v)
		if !domain.IsValidColumn(c) || seen[c] {
			continue
		}
		seen[c] = true
		columns = append(columns, c)
	}
	return columns
}

func defaultColumns() []domain.ColumnKey {
	return append([]domain.ColumnKey(nil), domain.AllColumns...)
}
