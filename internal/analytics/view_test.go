package analytics

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/asset-ranking/internal/models"
)

func TestDerive_SingleCompanySummary(t *testing.T) {
	records := []models.FinancialRecord{{
		Company:         "A",
		Year:            2023,
		TotalAssets:     amt(1000),
		Revenue:         amt(500),
		OperatingProfit: amt(100),
		NetIncome:       amt(50),
	}}
	sel := DefaultSelection(records)
	require.Equal(t, 2023, sel.Year)

	view := Derive(records, sel, DefaultTopN)
	assert.False(t, view.Empty)
	require.NotNil(t, view.Summary)
	require.NotNil(t, view.Summary.TopAssetHolder)
	assert.Equal(t, "A", view.Summary.TopAssetHolder.Company)
	assert.True(t, view.Summary.TotalAssets.Equal(decimal.NewFromInt(1000)))
	require.True(t, view.Summary.MeanOperatingMargin.Valid)
	assert.True(t, view.Summary.MeanOperatingMargin.Decimal.Equal(decimal.RequireFromString("0.2")))
	require.True(t, view.Summary.PositiveNetIncomeRatio.Valid)
	assert.True(t, view.Summary.PositiveNetIncomeRatio.Decimal.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, view.Details)
}

func TestDerive_CompanySelection(t *testing.T) {
	sel := models.Selection{Year: 2023, Companies: []string{"SK"}, Metric: models.TotalAssets, Theme: models.Reds}
	view := Derive(sampleRecords(), sel, DefaultTopN)

	assert.Nil(t, view.Summary)
	require.Len(t, view.Details, 1)
	assert.Equal(t, "SK", view.Details[0].Company)
	// Charts and table still cover the whole year.
	assert.Len(t, view.Records, 5)
	assert.Len(t, view.TopByAssets, 4)
}

func TestDerive_EmptyYear(t *testing.T) {
	sel := models.Selection{Year: 1990, Metric: models.Revenue, Theme: models.Blues}
	view := Derive(sampleRecords(), sel, DefaultTopN)

	assert.True(t, view.Empty)
	require.NotNil(t, view.Summary)
	assert.Nil(t, view.Summary.TopAssetHolder)
	assert.False(t, view.Summary.MeanOperatingMargin.Valid)
	assert.False(t, view.Summary.PositiveNetIncomeRatio.Valid)
	assert.Empty(t, view.TopByMetric)
}

func TestDerive_TopNDefaultsAndLimits(t *testing.T) {
	var records []models.FinancialRecord
	for i := 0; i < 15; i++ {
		records = append(records, record(i, string(rune('A'+i)), 2024, amt(int64(i))))
	}
	sel := DefaultSelection(records)

	assert.Len(t, Derive(records, sel, 0).TopByMetric, DefaultTopN)
	assert.Len(t, Derive(records, sel, 3).TopByAssets, 3)
}

func TestDerive_Deterministic(t *testing.T) {
	sel := models.Selection{Year: 2023, Metric: models.TotalAssets, Theme: models.Blues}
	first, err := json.Marshal(Derive(sampleRecords(), sel, DefaultTopN))
	require.NoError(t, err)
	second, err := json.Marshal(Derive(sampleRecords(), sel, DefaultTopN))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection(sampleRecords())
	assert.Equal(t, 2023, sel.Year)
	assert.Empty(t, sel.Companies)
	assert.Equal(t, models.TotalAssets, sel.Metric)
	assert.Equal(t, models.Blues, sel.Theme)

	assert.Equal(t, 0, DefaultSelection(nil).Year)
}

func TestKnownCompanies(t *testing.T) {
	got := KnownCompanies(sampleRecords(), []string{"SK", "Nope", "Samsung", "SK"})
	assert.Equal(t, []string{"SK", "Samsung"}, got)
	assert.Empty(t, KnownCompanies(sampleRecords(), nil))
}
