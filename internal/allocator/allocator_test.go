package allocator

import (
	"testing"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func offers(numbers ...string) []domain.Offer {
	result := make([]domain.Offer, len(numbers))
	for i, n := range numbers {
		result[i] = domain.Offer{OfferNumber: n}
	}
	return result
}

func TestNextOfferNumber(t *testing.T) {
	tests := []struct {
		name   string
		offers []domain.Offer
		want   string
	}{
		{"empty", nil, "OF-0001"},
		{"max plus one", offers("OF-0003", "OF-0007", "OF-0001"), "OF-0008"},
		{"mixed prefixes", offers("Q-12", "OF-0002", "2024/9"), "OF-0013"},
		{"no numeric suffix falls back to count", offers("A", "B", "C", "D", "E", "F"), "OF-0007"},
		{"digits must be trailing", offers("12-A", "OF-0002"), "OF-0003"},
		{"wider than four digits", offers("OF-12345"), "OF-12346"},
		{"zero suffix", offers("OF-0000"), "OF-0001"},
		{"overflowing suffix ignored", offers("OF-99999999999999999999999", "OF-0004"), "OF-0005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOfferNumber(tt.offers))
		})
	}
}
