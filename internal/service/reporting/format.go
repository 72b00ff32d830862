package reporting

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts are shown the way the farm office reads them: Indian digit grouping, whole rupees.
var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatNumber groups digits for display.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrency renders an amount in rupees without decimals.
func FormatCurrency(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-₹" + printer.Sprintf("%d", -whole)
	}
	return "₹" + printer.Sprintf("%d", whole)
}
