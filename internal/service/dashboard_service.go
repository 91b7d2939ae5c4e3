package service

import (
	"context"

	"github.com/straye-as/offer-tracker/internal/dashboard"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/format"
	"github.com/straye-as/offer-tracker/internal/store"
	"go.uber.org/zap"
)

type DashboardService struct {
	store       *store.Store
	preferences *PreferenceService
	cache       *dashboard.Cache
	formatter   *format.Formatter
	labels      domain.Labels
	logger      *zap.Logger
}

func NewDashboardService(
	store *store.Store,
	preferences *PreferenceService,
	locale domain.Locale,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		store:       store,
		preferences: preferences,
		cache:       dashboard.NewCache(),
		formatter:   format.New(locale),
		labels:      domain.LabelsFor(locale),
		logger:      logger,
	}
}

// View builds the dashboard for the filter. Views are memoized until the
// store changes.
func (s *DashboardService) View(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardView, error) {
	if !s.store.Ready() {
		return nil, ErrUnavailable
	}

	state, revision := s.store.Snapshot()
	view := s.cache.Get(revision, filter, func() domain.DashboardView {
		built := dashboard.Build(state.Clients, state.Offers, filter, s.labels)
		return dashboard.Localize(built, s.formatter, s.labels)
	})

	view.Columns = s.preferences.Columns(ctx)
	return &view, nil
}
