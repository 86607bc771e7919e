package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cleaning-cost/core/types"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[types.Currency]string{
	types.CurrencyUSD: "$",
	types.CurrencyEUR: "€",
	types.CurrencyGBP: "£",
}

// Money renders an amount as "$1,234.56" ("-$20.00" when negative).
func Money(amount decimal.Decimal, currency types.Currency) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = string(currency) + " "
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + symbol + printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// Signed renders an adjustment amount with an explicit sign.
func Signed(amount decimal.Decimal, currency types.Currency) string {
	if amount.IsNegative() {
		return Money(amount, currency)
	}
	return "+" + Money(amount, currency)
}
