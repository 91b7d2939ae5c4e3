package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/store"
	"go.uber.org/zap"
)

type ClientService struct {
	store  *store.Store
	locale domain.Locale
	logger *zap.Logger
}

func NewClientService(store *store.Store, locale domain.Locale, logger *zap.Logger) *ClientService {
	return &ClientService{
		store:  store,
		locale: locale,
		logger: logger,
	}
}

// List returns all clients ordered by name
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	if !s.store.Ready() {
		return nil, ErrUnavailable
	}
	return s.store.Clients(), nil
}

// Create registers a client. A client with the same name (ignoring case)
// is returned as-is instead of creating a duplicate; created reports which
// case happened.
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, bool, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, false, invalid(s.locale, "name", msgClientNameRequired)
	}

	c, created, err := s.store.EnsureClient(ctx, req.Name, req.Email)
	if err != nil {
		return nil, false, storeError("create client", err)
	}
	if created {
		s.logger.Info("Client created", zap.String("client_id", c.ID))
	}
	return &c, created, nil
}

// storeError maps store failures onto service errors
func storeError(action string, err error) error {
	if errors.Is(err, store.ErrNotReady) {
		return ErrUnavailable
	}
	if errors.Is(err, store.ErrInvalidRecord) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
