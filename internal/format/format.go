// Package format renders amounts and dates for display.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/straye-as/offer-tracker/internal/domain"
)

var currencyFormatters = map[domain.Locale]*money.Formatter{
	domain.LocaleES: money.NewFormatter(2, ",", ".", "€", "1 $"),
	domain.LocaleEN: money.NewFormatter(2, ".", ",", "€", "$1"),
}

// Spanish only groups thousands from five integer digits: 1234,56 € but
// 12.345,60 €.
var (
	esUngrouped      = money.NewFormatter(2, ",", "", "€", "1 $")
	esGroupFromCents = int64(1000000)
)

var shortMonths = map[domain.Locale][12]string{
	domain.LocaleES: {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	domain.LocaleEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// Formatter renders values for one locale
type Formatter struct {
	locale domain.Locale
}

// New returns a Formatter for the locale, falling back to Spanish
func New(locale domain.Locale) *Formatter {
	if _, ok := currencyFormatters[locale]; !ok {
		locale = domain.LocaleES
	}
	return &Formatter{locale: locale}
}

// Locale returns the formatter's locale
func (f *Formatter) Locale() domain.Locale {
	return f.locale
}

// Currency formats an amount in euros, rounded to cents
func (f *Formatter) Currency(amount float64) string {
	cents := decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
	if f.locale == domain.LocaleES && cents > -esGroupFromCents && cents < esGroupFromCents {
		return esUngrouped.Format(cents)
	}
	return currencyFormatters[f.locale].Format(cents)
}

// Date formats an ISO-8601 string as a short date. Empty input yields an
// empty string and unparseable input is returned unchanged.
func (f *Formatter) Date(value string) string {
	if value == "" {
		return ""
	}
	t, ok := domain.ParseTimestamp(value)
	if !ok {
		return value
	}
	t = t.UTC()
	month := shortMonths[f.locale][t.Month()-1]
	if f.locale == domain.LocaleEN {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}
