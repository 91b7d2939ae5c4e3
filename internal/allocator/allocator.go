// Package allocator suggests offer numbers. Suggestions are advisory: the
// user may override them and nothing enforces uniqueness.
package allocator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/straye-as/offer-tracker/internal/domain"
)

const offerNumberFormat = "OF-%04d"

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextOfferNumber returns one more than the largest trailing number among
// existing offer numbers, or len(offers)+1 when none has one.
func NextOfferNumber(offers []domain.Offer) string {
	highest := -1
	for _, offer := range offers {
		match := trailingDigits.FindStringSubmatch(offer.OfferNumber)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			// too many digits for an int
			continue
		}
		if n > highest {
			highest = n
		}
	}

	if highest < 0 {
		return fmt.Sprintf(offerNumberFormat, len(offers)+1)
	}
	return fmt.Sprintf(offerNumberFormat, highest+1)
}
