package util

import (
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney formats an amount en-US style with the currency symbol,
// grouping separators and 0 to 2 fraction digits ("$1,234.5", "€10").
// Codes without a symbol in en-US are printed as the ISO code ("KZT 1,000").
func FormatMoney(amount decimal.Decimal, code string) string {
	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = moneyPrinter.Sprint(currency.Symbol(unit))
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	value := amount.Round(2).InexactFloat64()
	formatted := moneyPrinter.Sprint(number.Decimal(value, number.MaxFractionDigits(2)))

	if endsWithLetter(symbol) {
		return sign + symbol + " " + formatted
	}
	return sign + symbol + formatted
}

func endsWithLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}
