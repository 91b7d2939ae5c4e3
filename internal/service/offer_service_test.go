package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/service"
	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/straye-as/offer-tracker/internal/store"
	"github.com/straye-as/offer-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validOfferRequest(clientID string) *domain.CreateOfferRequest {
	return &domain.CreateOfferRequest{
		OfferNumber: " OF-0001 ",
		ClientID:    clientID,
		Price:       "100",
		Cost:        "40",
		Status:      "sent",
		CreatedAt:   "2025-01-10",
		ValidUntil:  "2025-02-10",
	}
}

func TestOfferService_Create(t *testing.T) {
	s := testutil.NewStore(t, nil)
	acme := testutil.CreateTestClient(t, s, "Acme")
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	resp, err := svc.Create(context.Background(), validOfferRequest(acme.ID))
	require.NoError(t, err)

	assert.Nil(t, resp.Client)
	assert.Equal(t, "OF-0001", resp.Offer.OfferNumber)
	assert.Equal(t, acme.ID, resp.Offer.ClientID)
	assert.Equal(t, 60.0, resp.Offer.Margin)
	assert.Equal(t, domain.OfferStatusSent, resp.Offer.Status)
	assert.Equal(t, "2025-01-10T00:00:00Z", resp.Offer.CreatedAt)
	assert.Equal(t, "2025-02-10T00:00:00Z", resp.Offer.ValidUntil)
	assert.Equal(t, "OF-0002", resp.NextOfferNumber)
}

func TestOfferService_CreateWithNewClient(t *testing.T) {
	s := testutil.NewStore(t, nil)
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	req := validOfferRequest("")
	req.NewClientName = "  Nueva SA "
	req.NewClientEmail = "compras@nueva.test"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Client)
	assert.Equal(t, "Nueva SA", resp.Client.Name)
	assert.Equal(t, resp.Client.ID, resp.Offer.ClientID)
	assert.Len(t, s.Clients(), 1)
}

func TestOfferService_CreateReusesClientByName(t *testing.T) {
	s := testutil.NewStore(t, nil)
	acme := testutil.CreateTestClient(t, s, "Acme")
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	req := validOfferRequest("")
	req.NewClientName = "ACME"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, acme.ID, resp.Offer.ClientID)
	assert.Len(t, s.Clients(), 1)
}

func TestOfferService_CreateEmptyCostIsZero(t *testing.T) {
	s := testutil.NewStore(t, nil)
	acme := testutil.CreateTestClient(t, s, "Acme")
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	req := validOfferRequest(acme.ID)
	req.Cost = ""

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Offer.Cost)
	assert.Equal(t, 100.0, resp.Offer.Margin)
}

func TestOfferService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *domain.CreateOfferRequest)
		field   string
		message string
	}{
		{
			name:    "empty offer number",
			mutate:  func(r *domain.CreateOfferRequest) { r.OfferNumber = "  " },
			field:   "offerNumber",
			message: "El número de oferta es obligatorio.",
		},
		{
			name:    "price not a number",
			mutate:  func(r *domain.CreateOfferRequest) { r.Price = "abc" },
			field:   "price",
			message: "El precio debe ser un número mayor a cero.",
		},
		{
			name:    "price zero",
			mutate:  func(r *domain.CreateOfferRequest) { r.Price = "0" },
			field:   "price",
			message: "El precio debe ser un número mayor a cero.",
		},
		{
			name:    "price missing",
			mutate:  func(r *domain.CreateOfferRequest) { r.Price = "" },
			field:   "price",
			message: "El precio debe ser un número mayor a cero.",
		},
		{
			name:    "negative cost",
			mutate:  func(r *domain.CreateOfferRequest) { r.Cost = "-1" },
			field:   "cost",
			message: "El costo debe ser un número válido mayor o igual a cero.",
		},
		{
			name:    "cost NaN",
			mutate:  func(r *domain.CreateOfferRequest) { r.Cost = "NaN" },
			field:   "cost",
			message: "El costo debe ser un número válido mayor o igual a cero.",
		},
		{
			name:    "missing created date",
			mutate:  func(r *domain.CreateOfferRequest) { r.CreatedAt = "" },
			field:   "createdAt",
			message: "Debes indicar la fecha de creación.",
		},
		{
			name:    "invalid created date",
			mutate:  func(r *domain.CreateOfferRequest) { r.CreatedAt = "10/01/2025" },
			field:   "createdAt",
			message: "La fecha de creación es inválida.",
		},
		{
			name:    "missing valid until",
			mutate:  func(r *domain.CreateOfferRequest) { r.ValidUntil = "" },
			field:   "validUntil",
			message: "Debes indicar la fecha de vigencia.",
		},
		{
			name:    "valid until before created",
			mutate:  func(r *domain.CreateOfferRequest) { r.ValidUntil = "2025-01-09" },
			field:   "validUntil",
			message: "La fecha de vigencia debe ser posterior a la fecha de creación.",
		},
		{
			name:    "no client",
			mutate:  func(r *domain.CreateOfferRequest) { r.ClientID = "" },
			field:   "clientId",
			message: "Selecciona un cliente existente o indica los datos de uno nuevo.",
		},
		{
			name:    "unknown client",
			mutate:  func(r *domain.CreateOfferRequest) { r.ClientID = "missing" },
			field:   "clientId",
			message: "Selecciona un cliente existente o indica los datos de uno nuevo.",
		},
		{
			name: "first failing check wins",
			mutate: func(r *domain.CreateOfferRequest) {
				r.OfferNumber = ""
				r.Price = "-5"
				r.ClientID = ""
			},
			field:   "offerNumber",
			message: "El número de oferta es obligatorio.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			s := testutil.NewStore(t, kv)
			acme := testutil.CreateTestClient(t, s, "Acme")
			svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())
			revision := s.Revision()

			req := validOfferRequest(acme.ID)
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, service.ErrInvalidInput)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)

			assert.Empty(t, s.Offers())
			assert.Equal(t, revision, s.Revision(), "nothing is written")
		})
	}
}

func TestOfferService_EnglishMessages(t *testing.T) {
	s := testutil.NewStore(t, nil)
	svc := service.NewOfferService(s, domain.LocaleEN, zap.NewNop())

	req := validOfferRequest("")
	req.OfferNumber = ""

	_, err := svc.Create(context.Background(), req)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Offer number is required.", verr.Message)
}

type failingKV struct {
	*storage.MemoryKV
}

func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("quota exceeded")
}

func TestOfferService_WriteFailurePropagates(t *testing.T) {
	s := testutil.NewStore(t, failingKV{storage.NewMemoryKV()})
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	req := validOfferRequest("")
	req.NewClientName = "Acme"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidInput)
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Empty(t, s.Clients())
}

func TestOfferService_NextNumber(t *testing.T) {
	s := testutil.NewStore(t, nil)
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())
	ctx := context.Background()

	next, err := svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OF-0001", next)

	for _, n := range []string{"OF-0003", "OF-0007", "OF-0001"} {
		testutil.CreateTestOffer(t, s, "c1", n, 10, 1, domain.OfferStatusDraft, "2025-01-01")
	}
	next, err = svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OF-0008", next)
}

func TestOfferService_NotReady(t *testing.T) {
	s := store.New(storage.NewMemoryKV(), nil, nil, zap.NewNop())
	svc := service.NewOfferService(s, domain.LocaleES, zap.NewNop())

	_, err := svc.NextNumber(context.Background())
	assert.ErrorIs(t, err, service.ErrUnavailable)
	_, err = svc.Create(context.Background(), validOfferRequest("c1"))
	assert.ErrorIs(t, err, service.ErrUnavailable)
}
