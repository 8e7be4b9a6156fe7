// Package money converts between user-entered major currency units and the
// integer cents stored in the database.
package money

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// maxMajor keeps cents within int64.
const maxMajor = 9e16

// ToCents converts a major-unit value (12.34) into cents (1234), rounding
// half away from zero so binary float noise (0.29*100 = 28.999…) is absorbed.
func ToCents(major float64) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, ErrInvalidAmount
	}
	if math.Abs(major) > maxMajor {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return int64(math.Round(major * 100)), nil
}

// Format renders cents as a fixed two-decimal string without going through
// float: 1000 → "10.00", -5 → "-0.05".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatUSD renders cents the way the dashboard tables show them, with a
// dollar sign and English digit grouping: 157795 → "$1,577.95". The whole
// part is grouped as an integer so large amounts stay exact.
func FormatUSD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
