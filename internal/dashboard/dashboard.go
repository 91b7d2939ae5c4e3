// Package dashboard derives the filtered, client-joined offer list and its
// summary statistics. Everything here is a pure function of its inputs.
package dashboard

import (
	"sort"
	"time"

	"github.com/straye-as/offer-tracker/internal/domain"
)

// Build joins offers with client names, applies the filter, sorts by
// creation date (newest first) and aggregates the result.
func Build(clients []domain.Client, offers []domain.Offer, filter domain.DashboardFilter, labels domain.Labels) domain.DashboardView {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	statuses := make(map[domain.OfferStatus]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses[s] = true
	}

	rows := make([]row, 0, len(offers))
	for _, offer := range offers {
		if !matches(offer, filter, statuses) {
			continue
		}
		name, ok := names[offer.ClientID]
		if !ok {
			name = labels.DeletedClient
		}
		created, parsed := domain.ParseTimestamp(offer.CreatedAt)
		rows = append(rows, row{
			offer:   domain.DashboardOffer{Offer: offer, ClientName: name},
			created: created,
			parsed:  parsed,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		return a.created.After(b.created)
	})

	view := domain.DashboardView{
		Offers:        make([]domain.DashboardOffer, len(rows)),
		StatusSummary: make([]domain.StatusCount, len(domain.AllOfferStatuses)),
	}

	counts := make(map[domain.OfferStatus]int, len(domain.AllOfferStatuses))
	for i, r := range rows {
		view.Offers[i] = r.offer
		view.Totals.Count++
		view.Totals.Value += r.offer.Price
		view.Totals.Cost += r.offer.Cost
		view.Totals.Margin += r.offer.Margin
		counts[r.offer.Status]++
	}

	for i, status := range domain.AllOfferStatuses {
		view.StatusSummary[i] = domain.StatusCount{
			Status: status,
			Label:  labels.StatusLabel(status),
			Count:  counts[status],
		}
	}

	return view
}

type row struct {
	offer   domain.DashboardOffer
	created time.Time
	parsed  bool
}

func matches(offer domain.Offer, filter domain.DashboardFilter, statuses map[domain.OfferStatus]bool) bool {
	if filter.ClientID != "" && offer.ClientID != filter.ClientID {
		return false
	}
	if !statuses[offer.Status] {
		return false
	}
	if !inRange(offer.CreatedAt, filter.CreatedFrom, filter.CreatedTo) {
		return false
	}
	return inRange(offer.ValidUntil, filter.ValidFrom, filter.ValidTo)
}

// inRange is inclusive on both ends. Once a bound is set the value must
// parse.
func inRange(value string, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	t, ok := domain.ParseTimestamp(value)
	if !ok {
		return false
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
