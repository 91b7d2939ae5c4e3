package format_test

import (
	"testing"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Currency(t *testing.T) {
	tests := []struct {
		name     string
		locale   domain.Locale
		amount   float64
		expected string
	}{
		{name: "spanish four digits are not grouped", locale: domain.LocaleES, amount: 1234.5, expected: "1234,50 €"},
		{name: "spanish five digits are grouped", locale: domain.LocaleES, amount: 12345.6, expected: "12.345,60 €"},
		{name: "spanish negative five digits", locale: domain.LocaleES, amount: -12345.6, expected: "-12.345,60 €"},
		{name: "spanish millions", locale: domain.LocaleES, amount: 1234567.89, expected: "1.234.567,89 €"},
		{name: "spanish zero", locale: domain.LocaleES, amount: 0, expected: "0,00 €"},
		{name: "spanish negative", locale: domain.LocaleES, amount: -60, expected: "-60,00 €"},
		{name: "spanish rounds to cents", locale: domain.LocaleES, amount: 10.005, expected: "10,01 €"},
		{name: "english millions", locale: domain.LocaleEN, amount: 1234567.89, expected: "€1,234,567.89"},
		{name: "unknown locale falls back to spanish", locale: domain.Locale("fr"), amount: 5, expected: "5,00 €"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, format.New(tc.locale).Currency(tc.amount))
		})
	}
}

func TestFormatter_Date(t *testing.T) {
	es := format.New(domain.LocaleES)
	en := format.New(domain.LocaleEN)

	assert.Equal(t, "", es.Date(""))
	assert.Equal(t, "not a date", es.Date("not a date"))
	assert.Equal(t, "5 ene 2025", es.Date("2025-01-05T00:00:00Z"))
	assert.Equal(t, "17 sept 2024", es.Date("2024-09-17"))
	assert.Equal(t, "Jan 5, 2025", en.Date("2025-01-05T10:30:00.123Z"))
}
