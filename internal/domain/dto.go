package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// NumericInput accepts a JSON number or a JSON string holding a number, so
// form values can be posted as typed. Parsing is left to the service layer.
type NumericInput string

// UnmarshalJSON implements json.Unmarshaler
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric input must be a number or a string: %w", err)
	}
	*n = NumericInput(num.String())
	return nil
}

// CreateClientRequest is the payload of POST /clients
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}

// Normalize trims the email so blank input counts as absent
func (r *CreateClientRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// CreateOfferRequest is the payload of POST /offers.
// Either ClientID or NewClientName must be set.
type CreateOfferRequest struct {
	OfferNumber    string       `json:"offerNumber" validate:"max=50"`
	ClientID       string       `json:"clientId,omitempty"`
	NewClientName  string       `json:"newClientName,omitempty" validate:"max=200"`
	NewClientEmail string       `json:"newClientEmail,omitempty" validate:"omitempty,email,max=254"`
	Price          NumericInput `json:"price"`
	Cost           NumericInput `json:"cost"`
	Margin         *float64     `json:"margin,omitempty"`
	Status         string       `json:"status,omitempty"`
	CreatedAt      string       `json:"createdAt"`
	ValidUntil     string       `json:"validUntil"`
}

// Normalize trims the new client's email so blank input counts as absent
func (r *CreateOfferRequest) Normalize() {
	r.NewClientEmail = strings.TrimSpace(r.NewClientEmail)
}

// CreateOfferResponse is returned by POST /offers. Client is set when the
// request registered a new client. NextOfferNumber suggests the number for
// the following offer.
type CreateOfferResponse struct {
	Offer           Offer   `json:"offer"`
	Client          *Client `json:"client,omitempty"`
	NextOfferNumber string  `json:"nextOfferNumber"`
}

// UpdateColumnsRequest is the payload of PUT /dashboard/columns
type UpdateColumnsRequest struct {
	Columns []ColumnKey `json:"columns" validate:"required"`
}

// NextOfferNumberResponse is returned by GET /offers/next-number
type NextOfferNumberResponse struct {
	OfferNumber string `json:"offerNumber"`
}

// ColumnsResponse is returned by the column preference endpoints
type ColumnsResponse struct {
	Columns []ColumnKey `json:"columns"`
}

// DashboardFilter holds the user-selected dashboard criteria.
// An empty ClientID means all clients. Statuses is a set: an empty set
// matches nothing. Nil bounds are unset.
type DashboardFilter struct {
	ClientID    string
	Statuses    []OfferStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	ValidFrom   *time.Time
	ValidTo     *time.Time
}

// DefaultDashboardFilter returns the filter with every status checked
func DefaultDashboardFilter() DashboardFilter {
	statuses := make([]OfferStatus, len(AllOfferStatuses))
	copy(statuses, AllOfferStatuses)
	return DashboardFilter{Statuses: statuses}
}

// DashboardOffer is an offer joined with its client's name
type DashboardOffer struct {
	Offer
	ClientName string       `json:"clientName"`
	Display    OfferDisplay `json:"display"`
}

// OfferDisplay carries the localized renditions of an offer's values
type OfferDisplay struct {
	Price      string `json:"price"`
	Cost       string `json:"cost"`
	Margin     string `json:"margin"`
	CreatedAt  string `json:"createdAt"`
	ValidUntil string `json:"validUntil"`
	Status     string `json:"status"`
}

// DashboardTotals aggregates the filtered offers
type DashboardTotals struct {
	Count  int     `json:"count"`
	Value  float64 `json:"value"`
	Cost   float64 `json:"cost"`
	Margin float64 `json:"margin"`
}

// TotalsDisplay carries the localized renditions of the totals
type TotalsDisplay struct {
	Value  string `json:"value"`
	Cost   string `json:"cost"`
	Margin string `json:"margin"`
}

// StatusCount is one row of the status summary
type StatusCount struct {
	Status OfferStatus `json:"status"`
	Label  string      `json:"label"`
	Count  int         `json:"count"`
}

// DashboardView is the derived dashboard returned by GET /dashboard
type DashboardView struct {
	Offers        []DashboardOffer `json:"offers"`
	Totals        DashboardTotals  `json:"totals"`
	TotalsDisplay TotalsDisplay    `json:"totalsDisplay"`
	StatusSummary []StatusCount    `json:"statusSummary"`
	Columns       []ColumnKey      `json:"columns"`
}
