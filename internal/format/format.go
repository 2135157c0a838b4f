// Package format renders amounts and ratios for display.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholders for values that cannot be shown.
const (
	Missing   = "-"
	Undefined = "N/A"
)

var printer = message.NewPrinter(language.English)

var hundred = decimal.NewFromInt(100)

// Amount formats a value with thousands separators. Whole numbers carry no
// fraction; other values keep up to two decimals.
func Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// NullAmount formats a possibly missing amount.
func NullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return Missing
	}
	return Amount(d.Decimal)
}

// AmountWithUnit appends the dataset unit, e.g. "1,000 억원".
func AmountWithUnit(d decimal.NullDecimal, unit string) string {
	s := NullAmount(d)
	if !d.Valid || unit == "" {
		return s
	}
	return s + " " + unit
}

// Percent formats a ratio as a percentage with two decimals, so 0.15
// becomes "15.00%". Undefined ratios render as N/A.
func Percent(ratio decimal.NullDecimal) string {
	if !ratio.Valid {
		return Undefined
	}
	return ratio.Decimal.Mul(hundred).StringFixed(2) + "%"
}

// Float converts a decimal for chart coordinates.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
