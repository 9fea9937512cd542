package utils

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// toMinorUnits rounds amount to the currency precision and scales it to minor units.
func toMinorUnits(amount decimal.Decimal, cur *money.Currency) int64 {
	factor := decimal.New(1, int32(cur.Fraction))
	return amount.Round(int32(cur.Fraction)).Mul(factor).IntPart()
}

// FormatAmount renders amount with the symbol and separators of currencyCode,
// e.g. 1234.5 USD -> "$1,234.50". Unknown currencies fall back to "1234.50 XXX".
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return strings.TrimSpace(amount.StringFixed(2) + " " + currencyCode)
	}
	return money.New(toMinorUnits(amount, cur), cur.Code).Display()
}

// AmountInWords spells out the whole part of amount, followed by the currency
// code and the minor units as a fraction, e.g. "one hundred EUR and 50/100".
func AmountInWords(amount decimal.Decimal, currencyCode string) string {
	fraction := 2
	if cur := money.GetCurrency(currencyCode); cur != nil {
		fraction = cur.Fraction
	}
	rounded := amount.Round(int32(fraction))
	whole := rounded.Truncate(0)
	words := fmt.Sprintf("%s %s", num2words.Convert(int(whole.IntPart())), currencyCode)
	if fraction == 0 {
		return strings.TrimSpace(words)
	}
	minor := rounded.Sub(whole).Abs().Mul(decimal.New(1, int32(fraction))).IntPart()
	if minor == 0 {
		return strings.TrimSpace(words)
	}
	return fmt.Sprintf("%s and %0*d/%d", strings.TrimSpace(words), fraction, minor, decimal.New(1, int32(fraction)).IntPart())
}
