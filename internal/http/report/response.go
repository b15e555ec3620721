package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// displayPrinter renders headline totals the way the dashboards show
// them: Indonesian digit grouping, two decimals ("1.234.567,89").
// Exact values always travel alongside as decimal strings; the display
// form is presentation sugar only.
var displayPrinter = message.NewPrinter(language.Indonesian)

func display(d decimal.Decimal) string {
	f, _ := d.Float64()

	return displayPrinter.Sprintf("%v",
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
