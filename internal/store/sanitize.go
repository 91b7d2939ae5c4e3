package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/straye-as/offer-tracker/internal/domain"
)

var validate = validator.New()

// persistedClient is the on-disk schema of a client entry
type persistedClient struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"createdAt"`
}

// persistedOffer is the on-disk schema of an offer entry. Status and margin
// are kept raw because they are repaired rather than rejected.
type persistedOffer struct {
	ID          string          `json:"id" validate:"required"`
	OfferNumber string          `json:"offerNumber" validate:"required"`
	ClientID    string          `json:"clientId" validate:"required"`
	Price       *float64        `json:"price" validate:"required"`
	Cost        *float64        `json:"cost" validate:"required"`
	Margin      json.RawMessage `json:"margin"`
	Status      json.RawMessage `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	ValidUntil  string          `json:"validUntil"`
}

// loadReport describes what sanitizing a blob discarded
type loadReport struct {
	droppedClients int
	droppedOffers  int
	// problems lists structural issues that emptied a whole collection
	problems []string
}

// decodeState parses a persisted blob. A blob that is not a JSON object is an
// error; everything below that level is repaired or dropped entry by entry.
func decodeState(raw []byte) (domain.State, loadReport, error) {
	var report loadReport
	var envelope struct {
		Clients json.RawMessage `json:"clients"`
		Offers  json.RawMessage `json:"offers"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return emptyState(), report, fmt.Errorf("failed to parse state: %w", err)
	}

	clientEntries, err := decodeArray(envelope.Clients)
	if err != nil {
		report.problems = append(report.problems, "clients: "+err.Error())
	}
	offerEntries, err := decodeArray(envelope.Offers)
	if err != nil {
		report.problems = append(report.problems, "offers: "+err.Error())
	}

	state := emptyState()
	for _, entry := range clientEntries {
		client, ok := sanitizeClient(entry)
		if !ok {
			report.droppedClients++
			continue
		}
		state.Clients = append(state.Clients, client)
	}
	for _, entry := range offerEntries {
		offer, ok := sanitizeOffer(entry)
		if !ok {
			report.droppedOffers++
			continue
		}
		state.Offers = append(state.Offers, offer)
	}
	return state, report, nil
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("not an array")
	}
	return entries, nil
}

func sanitizeClient(raw json.RawMessage) (domain.Client, bool) {
	var rec persistedClient
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Client{}, false
	}
	if err := validate.Struct(rec); err != nil {
		return domain.Client{}, false
	}
	return domain.Client{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     normalizeEmail(rec.Email),
		CreatedAt: rec.CreatedAt,
	}, true
}

func sanitizeOffer(raw json.RawMessage) (domain.Offer, bool) {
	var rec persistedOffer
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Offer{}, false
	}
	if err := validate.Struct(rec); err != nil {
		return domain.Offer{}, false
	}

	// null, absent or non-numeric margins are re-derived
	margin := *rec.Price - *rec.Cost
	var stored *float64
	if len(rec.Margin) > 0 && json.Unmarshal(rec.Margin, &stored) == nil && stored != nil {
		margin = *stored
	}

	var status string
	_ = json.Unmarshal(rec.Status, &status)

	return domain.Offer{
		ID:          rec.ID,
		OfferNumber: rec.OfferNumber,
		ClientID:    rec.ClientID,
		Price:       *rec.Price,
		Cost:        *rec.Cost,
		Margin:      margin,
		Status:      domain.NormalizeStatus(status),
		CreatedAt:   rec.CreatedAt,
		ValidUntil:  rec.ValidUntil,
	}, true
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func emptyState() domain.State {
	return domain.State{
		Clients: []domain.Client{},
		Offers:  []domain.Offer{},
	}
}
