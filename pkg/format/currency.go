// Package format renders monetary values for display.
package format

import (
	"math"

	"github.com/iwvelando/donut-profit/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tone names used to highlight a value.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
// Unlike a plain %.2f rendering ("$1234.56"), amounts of a thousand or more are grouped.
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Whole renders an integral count with thousands separators.
func Whole(value float64) string {
	return printer.Sprintf("%.0f", value)
}

// Tone classifies an amount so negative values can be highlighted.
func Tone(amount float64) string {
	if mathutil.IsNegative(amount) {
		return ToneNegative
	}
	return TonePositive
}
