package dashboard_test

import (
	"testing"
	"time"

	"github.com/straye-as/offer-tracker/internal/dashboard"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	es = domain.LabelsFor(domain.LocaleES)

	clients = []domain.Client{
		{ID: "c1", Name: "Acme"},
		{ID: "c2", Name: "Beta"},
	}

	offers = []domain.Offer{
		{ID: "o1", OfferNumber: "OF-0001", ClientID: "c1", Price: 100, Cost: 40, Margin: 60, Status: domain.OfferStatusDraft,
			CreatedAt: "2025-01-10T00:00:00Z", ValidUntil: "2025-02-10T00:00:00Z"},
		{ID: "o2", OfferNumber: "OF-0002", ClientID: "c2", Price: 200, Cost: 50, Margin: 150, Status: domain.OfferStatusWon,
			CreatedAt: "2025-03-01T00:00:00Z", ValidUntil: "2025-04-01T00:00:00Z"},
		{ID: "o3", OfferNumber: "OF-0003", ClientID: "gone", Price: 10, Cost: 10, Margin: 0, Status: domain.OfferStatusLost,
			CreatedAt: "not a date", ValidUntil: "2025-01-01T00:00:00Z"},
		{ID: "o4", OfferNumber: "OF-0004", ClientID: "c1", Price: 50, Cost: 0, Margin: 50, Status: domain.OfferStatusWon,
			CreatedAt: "2025-02-15", ValidUntil: "2025-03-15"},
	}
)

func at(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func ids(view domain.DashboardView) []string {
	result := make([]string, len(view.Offers))
	for i, o := range view.Offers {
		result[i] = o.ID
	}
	return result
}

func TestBuild_DefaultFilterSortsNewestFirst(t *testing.T) {
	view := dashboard.Build(clients, offers, domain.DefaultDashboardFilter(), es)

	assert.Equal(t, []string{"o2", "o4", "o1", "o3"}, ids(view))
	assert.Equal(t, domain.DashboardTotals{Count: 4, Value: 360, Cost: 100, Margin: 260}, view.Totals)
}

func TestBuild_SortedDescending(t *testing.T) {
	view := dashboard.Build(clients, offers, domain.DefaultDashboardFilter(), es)

	for i := 1; i < len(view.Offers); i++ {
		prev, prevOK := domain.ParseTimestamp(view.Offers[i-1].CreatedAt)
		cur, curOK := domain.ParseTimestamp(view.Offers[i].CreatedAt)
		if !curOK {
			continue
		}
		require.True(t, prevOK, "unparseable dates must sort last")
		assert.False(t, prev.Before(cur))
	}
}

func TestBuild_JoinsClientNames(t *testing.T) {
	view := dashboard.Build(clients, offers, domain.DefaultDashboardFilter(), es)

	names := map[string]string{}
	for _, o := range view.Offers {
		names[o.ID] = o.ClientName
	}
	assert.Equal(t, "Acme", names["o1"])
	assert.Equal(t, "Beta", names["o2"])
	assert.Equal(t, "Cliente eliminado", names["o3"])

	en := dashboard.Build(clients, offers, domain.DefaultDashboardFilter(), domain.LabelsFor(domain.LocaleEN))
	for _, o := range en.Offers {
		if o.ID == "o3" {
			assert.Equal(t, "Deleted client", o.ClientName)
		}
	}
}

func TestBuild_EmptyStatusSetYieldsNothing(t *testing.T) {
	filters := []domain.DashboardFilter{
		{},
		{ClientID: "c1", Statuses: []domain.OfferStatus{}},
		{CreatedFrom: at("2000-01-01T00:00:00Z")},
	}

	for _, filter := range filters {
		view := dashboard.Build(clients, offers, filter, es)
		assert.Empty(t, view.Offers)
		assert.Equal(t, domain.DashboardTotals{}, view.Totals)
	}
}

func TestBuild_ClientAndStatusFilter(t *testing.T) {
	filter := domain.DashboardFilter{
		ClientID: "c1",
		Statuses: []domain.OfferStatus{domain.OfferStatusWon},
	}

	view := dashboard.Build(clients, offers, filter, es)

	assert.Equal(t, []string{"o4"}, ids(view))
}

func TestBuild_CreatedRangeExcludesUnparseable(t *testing.T) {
	filter := domain.DefaultDashboardFilter()
	filter.CreatedFrom = at("2025-01-01T00:00:00Z")

	view := dashboard.Build(clients, offers, filter, es)

	assert.NotContains(t, ids(view), "o3")
	assert.Len(t, view.Offers, 3)
}

func TestBuild_RangesAreInclusive(t *testing.T) {
	filter := domain.DefaultDashboardFilter()
	filter.CreatedFrom = at("2025-01-10T00:00:00Z")
	filter.CreatedTo = at("2025-02-15T00:00:00Z")

	view := dashboard.Build(clients, offers, filter, es)

	assert.Equal(t, []string{"o4", "o1"}, ids(view))
}

func TestBuild_ValidUntilRange(t *testing.T) {
	filter := domain.DefaultDashboardFilter()
	filter.ValidTo = at("2025-03-01T00:00:00Z")

	view := dashboard.Build(clients, offers, filter, es)

	assert.ElementsMatch(t, []string{"o1", "o3"}, ids(view))
}

func TestBuild_StatusSummaryIncludesZeros(t *testing.T) {
	filter := domain.DashboardFilter{Statuses: []domain.OfferStatus{domain.OfferStatusWon}}

	view := dashboard.Build(clients, offers, filter, es)

	require.Len(t, view.StatusSummary, len(domain.AllOfferStatuses))
	for i, row := range view.StatusSummary {
		assert.Equal(t, domain.AllOfferStatuses[i], row.Status)
		if row.Status == domain.OfferStatusWon {
			assert.Equal(t, 2, row.Count)
			assert.Equal(t, "Ganada", row.Label)
		} else {
			assert.Zero(t, row.Count)
		}
	}
}

func TestBuild_EmptyInputs(t *testing.T) {
	view := dashboard.Build(nil, nil, domain.DefaultDashboardFilter(), es)

	assert.NotNil(t, view.Offers)
	assert.Empty(t, view.Offers)
	assert.Len(t, view.StatusSummary, 5)
}

func TestLocalize(t *testing.T) {
	view := dashboard.Build(clients, offers[:1], domain.DefaultDashboardFilter(), es)

	localized := dashboard.Localize(view, format.New(domain.LocaleES), es)

	require.Len(t, localized.Offers, 1)
	assert.Equal(t, domain.OfferDisplay{
		Price:      "100,00 €",
		Cost:       "40,00 €",
		Margin:     "60,00 €",
		CreatedAt:  "10 ene 2025",
		ValidUntil: "10 feb 2025",
		Status:     "Borrador",
	}, localized.Offers[0].Display)
	assert.Equal(t, "60,00 €", localized.TotalsDisplay.Margin)
	assert.Empty(t, view.Offers[0].Display.Price, "input view is not modified")
}
