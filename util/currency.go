package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders whole currency units with thousands separators,
// e.g. 1234567 -> "$1,234,567". The sign follows the symbol: "$-2,500".
func FormatCurrency(amount int) string {
	return currencyPrinter.Sprintf("$%d", amount)
}

// FormatOptionalCurrency is FormatCurrency for values that may be absent.
func FormatOptionalCurrency(amount *int) string {
	if amount == nil {
		return ""
	}
	return FormatCurrency(*amount)
}
