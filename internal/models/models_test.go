package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input string
		want  Metric
		ok    bool
	}{
		{"total_assets", TotalAssets, true},
		{" Net_Income ", NetIncome, true},
		{"operating_profit", OperatingProfit, true},
		{"ebitda", Metric("ebitda"), false},
		{"", Metric(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMetric(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	got, ok := ParseTheme("viridis")
	assert.True(t, ok)
	assert.Equal(t, Viridis, got)

	_, ok = ParseTheme("Magma")
	assert.False(t, ok)
}

func TestMetricValue(t *testing.T) {
	r := FinancialRecord{
		TotalAssets:      decimal.NewNullDecimal(decimal.NewFromInt(1)),
		TotalLiabilities: decimal.NewNullDecimal(decimal.NewFromInt(2)),
		TotalEquity:      decimal.NewNullDecimal(decimal.NewFromInt(3)),
		Revenue:          decimal.NewNullDecimal(decimal.NewFromInt(4)),
		OperatingProfit:  decimal.NewNullDecimal(decimal.NewFromInt(5)),
	}
	for i, m := range Metrics[:5] {
		v := m.Value(r)
		assert.True(t, v.Valid, m)
		assert.True(t, v.Decimal.Equal(decimal.NewFromInt(int64(i+1))), m)
	}
	assert.False(t, NetIncome.Value(r).Valid)
	assert.False(t, Metric("bogus").Value(r).Valid)
}

func TestMetricLabels(t *testing.T) {
	assert.Len(t, Metrics, 6)
	assert.Len(t, Themes, 5)
	for _, m := range Metrics {
		assert.NotEqual(t, string(m), m.Label())
		assert.NotEmpty(t, m.Description())
	}
	assert.Equal(t, "bogus", Metric("bogus").Label())
}

func TestSelectionHasCompanies(t *testing.T) {
	assert.False(t, Selection{}.HasCompanies())
	assert.True(t, Selection{Companies: []string{"A"}}.HasCompanies())
}
