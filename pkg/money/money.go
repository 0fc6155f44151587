package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCents renders a minor-unit amount as a display string,
// e.g. 123456 -> "$1,234.56".
func FormatCents(cents int64) string {
	return printer.Sprintf("$%v", number.Decimal(
		float64(cents)/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ToCents converts a major-unit amount to minor units, rounding to the
// nearest cent.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts a stored minor-unit amount back to major units.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
