package dashboard

import (
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/format"
)

// Localize returns a copy of the view with the display fields filled in
func Localize(view domain.DashboardView, f *format.Formatter, labels domain.Labels) domain.DashboardView {
	offers := make([]domain.DashboardOffer, len(view.Offers))
	for i, o := range view.Offers {
		o.Display = domain.OfferDisplay{
			Price:      f.Currency(o.Price),
			Cost:       f.Currency(o.Cost),
			Margin:     f.Currency(o.Margin),
			CreatedAt:  f.Date(o.CreatedAt),
			ValidUntil: f.Date(o.ValidUntil),
			Status:     labels.StatusLabel(o.Status),
		}
		offers[i] = o
	}
	view.Offers = offers
	view.TotalsDisplay = domain.TotalsDisplay{
		Value:  f.Currency(view.Totals.Value),
		Cost:   f.Currency(view.Totals.Cost),
		Margin: f.Currency(view.Totals.Margin),
	}
	return view
}
