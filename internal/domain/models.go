package domain

import "strings"

// Client is a named counterparty that offers are issued to
type Client struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"createdAt"`
}

// OfferStatus represents the lifecycle state of an offer
type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "draft"
	OfferStatusInReview OfferStatus = "in_review"
	OfferStatusSent     OfferStatus = "sent"
	OfferStatusWon      OfferStatus = "won"
	OfferStatusLost     OfferStatus = "lost"
)

// AllOfferStatuses lists every status in canonical display order
var AllOfferStatuses = []OfferStatus{
	OfferStatusDraft,
	OfferStatusInReview,
	OfferStatusSent,
	OfferStatusWon,
	OfferStatusLost,
}

// legacyStatuses maps the identifiers written by the first, Spanish-only
// version of the state blob
var legacyStatuses = map[string]OfferStatus{
	"borrador":    OfferStatusDraft,
	"en revisión": OfferStatusInReview,
	"enviada":     OfferStatusSent,
	"ganada":      OfferStatusWon,
	"perdida":     OfferStatusLost,
}

// IsValid checks if the status is part of the fixed enumeration
func (s OfferStatus) IsValid() bool {
	for _, status := range AllOfferStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// NormalizeStatus coerces any value outside the enumeration to draft
func NormalizeStatus(value string) OfferStatus {
	status := OfferStatus(value)
	if status.IsValid() {
		return status
	}
	if legacy, ok := legacyStatuses[strings.ToLower(value)]; ok {
		return legacy
	}
	return OfferStatusDraft
}

// Offer is a priced proposal to a client. Offers are append-only.
type Offer struct {
	ID          string      `json:"id"`
	OfferNumber string      `json:"offerNumber"`
	ClientID    string      `json:"clientId"`
	Price       float64     `json:"price"`
	Cost        float64     `json:"cost"`
	Margin      float64     `json:"margin"`
	Status      OfferStatus `json:"status"`
	CreatedAt   string      `json:"createdAt"`
	ValidUntil  string      `json:"validUntil"`
}

// State is the persisted shape of the store
type State struct {
	Clients []Client `json:"clients"`
	Offers  []Offer  `json:"offers"`
}

// ColumnKey identifies a column of the dashboard offer table
type ColumnKey string

const (
	ColumnOfferNumber ColumnKey = "offerNumber"
	ColumnClient      ColumnKey = "client"
	ColumnPrice       ColumnKey = "price"
	ColumnCost        ColumnKey = "cost"
	ColumnMargin      ColumnKey = "margin"
	ColumnCreatedAt   ColumnKey = "createdAt"
	ColumnValidUntil  ColumnKey = "validUntil"
	ColumnStatus      ColumnKey = "status"
)

// AllColumns lists every column in canonical order
var AllColumns = []ColumnKey{
	ColumnOfferNumber,
	ColumnClient,
	ColumnPrice,
	ColumnCost,
	ColumnMargin,
	ColumnCreatedAt,
	ColumnValidUntil,
	ColumnStatus,
}

// IsValidColumn checks if the column is part of the fixed column set
func IsValidColumn(c ColumnKey) bool {
	for _, column := range AllColumns {
		if c == column {
			return true
		}
	}
	return false
}
