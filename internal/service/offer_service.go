package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/straye-as/offer-tracker/internal/allocator"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/store"
	"go.uber.org/zap"
)

type OfferService struct {
	store  *store.Store
	locale domain.Locale
	logger *zap.Logger
}

func NewOfferService(store *store.Store, locale domain.Locale, logger *zap.Logger) *OfferService {
	return &OfferService{
		store:  store,
		locale: locale,
		logger: logger,
	}
}

// List returns all offers, most recent first
func (s *OfferService) List(ctx context.Context) ([]domain.Offer, error) {
	if !s.store.Ready() {
		return nil, ErrUnavailable
	}
	return s.store.Offers(), nil
}

// NextNumber suggests the next offer number
func (s *OfferService) NextNumber(ctx context.Context) (string, error) {
	if !s.store.Ready() {
		return "", ErrUnavailable
	}
	return allocator.NextOfferNumber(s.store.Offers()), nil
}

// Create validates the request and stores the offer, registering the new
// client first when no existing client was selected. The first failing check
// is reported and nothing is written.
func (s *OfferService) Create(ctx context.Context, req *domain.CreateOfferRequest) (*domain.CreateOfferResponse, error) {
	if !s.store.Ready() {
		return nil, ErrUnavailable
	}

	offerNumber := strings.TrimSpace(req.OfferNumber)
	if offerNumber == "" {
		return nil, invalid(s.locale, "offerNumber", msgOfferNumberRequired)
	}

	price, ok := parseAmount(req.Price, false)
	if !ok || price <= 0 {
		return nil, invalid(s.locale, "price", msgPriceInvalid)
	}

	// an empty cost counts as zero
	cost, ok := parseAmount(req.Cost, true)
	if !ok || cost < 0 {
		return nil, invalid(s.locale, "cost", msgCostInvalid)
	}

	createdAt, verr := s.parseDate(req.CreatedAt, "createdAt", msgCreatedAtRequired, msgCreatedAtInvalid)
	if verr != nil {
		return nil, verr
	}
	validUntil, verr := s.parseDate(req.ValidUntil, "validUntil", msgValidUntilRequired, msgValidUntilInvalid)
	if verr != nil {
		return nil, verr
	}
	created, _ := domain.ParseTimestamp(createdAt)
	valid, _ := domain.ParseTimestamp(validUntil)
	if valid.Before(created) {
		return nil, invalid(s.locale, "validUntil", msgValidUntilBeforeCreated)
	}

	clientID := strings.TrimSpace(req.ClientID)
	newClientName := strings.TrimSpace(req.NewClientName)
	if clientID != "" {
		if _, found := s.store.FindClient(clientID); !found {
			return nil, invalid(s.locale, "clientId", msgClientRequired)
		}
	} else if newClientName == "" {
		return nil, invalid(s.locale, "clientId", msgClientRequired)
	}

	resp := &domain.CreateOfferResponse{}
	if clientID == "" {
		client, err := s.store.AddClient(ctx, newClientName, req.NewClientEmail)
		if err != nil {
			return nil, storeError("create client", err)
		}
		clientID = client.ID
		resp.Client = &client
	}

	offer, err := s.store.AddOffer(ctx, store.OfferInput{
		OfferNumber: offerNumber,
		ClientID:    clientID,
		Price:       price,
		Cost:        cost,
		Margin:      req.Margin,
		Status:      req.Status,
		CreatedAt:   createdAt,
		ValidUntil:  validUntil,
	})
	if err != nil {
		return nil, storeError("create offer", err)
	}

	s.logger.Info("Offer created",
		zap.String("offer_id", offer.ID),
		zap.String("offer_number", offer.OfferNumber),
		zap.String("client_id", offer.ClientID))

	resp.Offer = offer
	resp.NextOfferNumber = allocator.NextOfferNumber(s.store.Offers())
	return resp, nil
}

// parseDate accepts YYYY-MM-DD (midnight UTC) or a full timestamp and
// returns the stored representation
func (s *OfferService) parseDate(value, field string, missing, malformed messageID) (string, *ValidationError) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(s.locale, field, missing)
	}
	t, ok := domain.ParseTimestamp(value)
	if !ok {
		return "", invalid(s.locale, field, malformed)
	}
	return domain.FormatTimestamp(t), nil
}

func parseAmount(value domain.NumericInput, emptyIsZero bool) (float64, bool) {
	s := strings.TrimSpace(string(value))
	if s == "" {
		return 0, emptyIsZero
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
