package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FinancialRecord is one company's annual figures. Amounts are in the
// dataset's unit (hundred-million won for the KOSPI source); an invalid
// NullDecimal marks a missing cell. Row follows sheet order but counts only
// loaded records, so skipped and duplicate rows leave no gaps.
type FinancialRecord struct {
	Row              int                 `json:"row"` // 0-based index among loaded records
	Company          string              `json:"company"`
	Year             int                 `json:"year"`
	TotalAssets      decimal.NullDecimal `json:"total_assets"`
	TotalLiabilities decimal.NullDecimal `json:"total_liabilities"`
	TotalEquity      decimal.NullDecimal `json:"total_equity"`
	Revenue          decimal.NullDecimal `json:"revenue"`
	OperatingProfit  decimal.NullDecimal `json:"operating_profit"`
	NetIncome        decimal.NullDecimal `json:"net_income"`
}

// Metric identifies one of the six tracked financial amounts.
type Metric string

const (
	TotalAssets      Metric = "total_assets"
	TotalLiabilities Metric = "total_liabilities"
	TotalEquity      Metric = "total_equity"
	Revenue          Metric = "revenue"
	OperatingProfit  Metric = "operating_profit"
	NetIncome        Metric = "net_income"
)

// Metrics lists the selectable metrics in display order.
var Metrics = []Metric{TotalAssets, TotalLiabilities, TotalEquity, Revenue, OperatingProfit, NetIncome}

var metricLabels = map[Metric]string{
	TotalAssets:      "Total Assets",
	TotalLiabilities: "Total Liabilities",
	TotalEquity:      "Total Equity",
	Revenue:          "Revenue",
	OperatingProfit:  "Operating Profit",
	NetIncome:        "Net Income",
}

var metricDescriptions = map[Metric]string{
	TotalAssets:      "All assets held by the company",
	TotalLiabilities: "All liabilities the company carries",
	TotalEquity:      "Assets minus liabilities",
	Revenue:          "Total sales earned over the period",
	OperatingProfit:  "Profit from the core business",
	NetIncome:        "Final profit or loss after taxes and other items",
}

// ParseMetric resolves a metric key. The boolean is false for unknown keys.
func ParseMetric(s string) (Metric, bool) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	_, ok := metricLabels[m]
	return m, ok
}

// Label returns the human-readable metric name.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// Description returns the glossary text for the metric.
func (m Metric) Description() string {
	return metricDescriptions[m]
}

// Value returns the record's amount for the metric.
func (m Metric) Value(r FinancialRecord) decimal.NullDecimal {
	switch m {
	case TotalAssets:
		return r.TotalAssets
	case TotalLiabilities:
		return r.TotalLiabilities
	case TotalEquity:
		return r.TotalEquity
	case Revenue:
		return r.Revenue
	case OperatingProfit:
		return r.OperatingProfit
	case NetIncome:
		return r.NetIncome
	}
	return decimal.NullDecimal{}
}

// Theme is a chart color scale. It has no effect on computed values.
type Theme string

const (
	Blues   Theme = "Blues"
	Greens  Theme = "Greens"
	Reds    Theme = "Reds"
	Viridis Theme = "Viridis"
	Plasma  Theme = "Plasma"
)

// Themes lists the selectable color themes.
var Themes = []Theme{Blues, Greens, Reds, Viridis, Plasma}

// ParseTheme resolves a theme name case-insensitively.
func ParseTheme(s string) (Theme, bool) {
	for _, t := range Themes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Selection is the user's current view state.
type Selection struct {
	Year      int      `json:"year"`
	Companies []string `json:"companies"`
	Metric    Metric   `json:"metric"`
	Theme     Theme    `json:"theme"`
}

// HasCompanies reports whether a per-company drill-down was requested.
func (s Selection) HasCompanies() bool {
	return len(s.Companies) > 0
}
