package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/asset-ranking/internal/models"
)

func amt(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

var missing = decimal.NullDecimal{}

func record(row int, company string, year int, assets decimal.NullDecimal) models.FinancialRecord {
	return models.FinancialRecord{Row: row, Company: company, Year: year, TotalAssets: assets}
}

func sampleRecords() []models.FinancialRecord {
	return []models.FinancialRecord{
		record(0, "Samsung", 2022, amt(4484)),
		record(1, "Hyundai", 2022, amt(2553)),
		record(2, "Samsung", 2023, amt(4559)),
		record(3, "Hyundai", 2023, amt(2821)),
		record(4, "SK", 2023, amt(1027)),
		record(5, "LG", 2023, missing),
		record(6, "Kia", 2023, amt(2821)),
	}
}

func TestFilterByYear(t *testing.T) {
	records := sampleRecords()

	got := FilterByYear(records, 2023)
	require.Len(t, got, 5)
	for _, r := range got {
		assert.Equal(t, 2023, r.Year)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, rows(got))

	assert.Len(t, FilterByYear(records, 2022), 2)
}

func TestFilterByYear_UnknownYear(t *testing.T) {
	got := FilterByYear(sampleRecords(), 1999)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTopN(t *testing.T) {
	year := FilterByYear(sampleRecords(), 2023)

	got := TopN(year, models.TotalAssets, 3)
	require.Len(t, got, 3)
	// Hyundai and Kia tie; source order decides.
	assert.Equal(t, []string{"Samsung", "Hyundai", "Kia"}, companies(got))
}

func TestTopN_ExcludesMissing(t *testing.T) {
	year := FilterByYear(sampleRecords(), 2023)

	got := TopN(year, models.TotalAssets, 10)
	assert.Len(t, got, 4)
	assert.NotContains(t, companies(got), "LG")
}

func TestTopN_ReturnedDominateRest(t *testing.T) {
	year := FilterByYear(sampleRecords(), 2023)
	top := TopN(year, models.TotalAssets, 2)

	in := make(map[int]bool)
	for _, r := range top {
		in[r.Row] = true
	}
	for _, r := range year {
		if in[r.Row] || !r.TotalAssets.Valid {
			continue
		}
		for _, winner := range top {
			assert.True(t, winner.TotalAssets.Decimal.GreaterThanOrEqual(r.TotalAssets.Decimal))
		}
	}
}

func TestTopN_IdempotentOnSortedInput(t *testing.T) {
	year := FilterByYear(sampleRecords(), 2023)
	once := TopN(year, models.TotalAssets, 10)
	twice := TopN(once, models.TotalAssets, 10)
	assert.Equal(t, once, twice)
}

func TestTopN_NonPositiveN(t *testing.T) {
	assert.Empty(t, TopN(sampleRecords(), models.TotalAssets, 0))
	assert.Empty(t, TopN(sampleRecords(), models.TotalAssets, -1))
}

func TestOperatingMargin(t *testing.T) {
	tests := []struct {
		name    string
		revenue decimal.NullDecimal
		profit  decimal.NullDecimal
		want    string
		valid   bool
	}{
		{"regular", amt(1000), amt(150), "0.15", true},
		{"negative profit", amt(200), amt(-50), "-0.25", true},
		{"zero revenue", amt(0), amt(10), "", false},
		{"missing revenue", missing, amt(10), "", false},
		{"missing profit", amt(100), missing, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OperatingMargin(models.FinancialRecord{Revenue: tt.revenue, OperatingProfit: tt.profit})
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), got.Decimal.String())
			}
		})
	}
}

func TestMeanOperatingMargin(t *testing.T) {
	records := []models.FinancialRecord{
		{Revenue: amt(1000), OperatingProfit: amt(100)},
		{Revenue: amt(100), OperatingProfit: amt(30)},
		{Revenue: amt(0), OperatingProfit: amt(30)},
		{Revenue: missing, OperatingProfit: amt(30)},
	}
	got := MeanOperatingMargin(records)
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.RequireFromString("0.2")), got.Decimal.String())
}

func TestMeanOperatingMargin_NoneDefined(t *testing.T) {
	records := []models.FinancialRecord{
		{Revenue: amt(0), OperatingProfit: amt(30)},
		{Revenue: missing},
	}
	assert.False(t, MeanOperatingMargin(records).Valid)
	assert.False(t, MeanOperatingMargin(nil).Valid)
}

func TestPositiveNetIncomeRatio(t *testing.T) {
	records := []models.FinancialRecord{
		{NetIncome: amt(100)},
		{NetIncome: amt(-50)},
		{NetIncome: amt(0)},
		{NetIncome: amt(200)},
	}
	got := PositiveNetIncomeRatio(records)
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.RequireFromString("0.5")))
}

func TestPositiveNetIncomeRatio_MissingIsNotPositive(t *testing.T) {
	records := []models.FinancialRecord{
		{NetIncome: amt(100)},
		{NetIncome: missing},
	}
	got := PositiveNetIncomeRatio(records)
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.RequireFromString("0.5")))

	assert.False(t, PositiveNetIncomeRatio(nil).Valid)
}

func TestArgmaxTotalAssets(t *testing.T) {
	records := []models.FinancialRecord{
		record(0, "A", 2023, amt(300)),
		record(1, "B", 2023, amt(900)),
		record(2, "C", 2023, amt(450)),
	}
	got, err := ArgmaxTotalAssets(records)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Company)
}

func TestArgmaxTotalAssets_Empty(t *testing.T) {
	_, err := ArgmaxTotalAssets(nil)
	assert.ErrorIs(t, err, ErrEmptySet)

	_, err = ArgmaxTotalAssets([]models.FinancialRecord{record(0, "A", 2023, missing)})
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestArgmaxTotalAssets_TieKeepsFirst(t *testing.T) {
	got, err := ArgmaxTotalAssets(FilterByYear(sampleRecords(), 2022))
	require.NoError(t, err)
	assert.Equal(t, "Samsung", got.Company)

	tied := []models.FinancialRecord{record(0, "X", 2023, amt(5)), record(1, "Y", 2023, amt(5))}
	got, err = ArgmaxTotalAssets(tied)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Company)
}

func TestSumTotalAssets(t *testing.T) {
	got := SumTotalAssets(FilterByYear(sampleRecords(), 2023))
	assert.True(t, got.Equal(decimal.NewFromInt(4559+2821+1027+2821)), got.String())
	assert.True(t, SumTotalAssets(nil).IsZero())
}

func TestCompanyDetails(t *testing.T) {
	records := []models.FinancialRecord{
		{Company: "A", Year: 2023, TotalAssets: amt(10), Revenue: amt(100), OperatingProfit: amt(5), NetIncome: amt(3)},
		{Company: "B", Year: 2023, TotalAssets: amt(20), Revenue: amt(0), OperatingProfit: amt(5), NetIncome: amt(-3)},
		{Company: "C", Year: 2023, TotalAssets: amt(30), NetIncome: missing},
	}

	got := CompanyDetails(records, []string{"C", "A", "Z"})
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Company)
	assert.Equal(t, StatusProfit, got[0].Status)
	require.True(t, got[0].OperatingMargin.Valid)
	assert.True(t, got[0].OperatingMargin.Decimal.Equal(decimal.RequireFromString("0.05")))

	assert.Equal(t, "C", got[1].Company)
	assert.Equal(t, StatusLoss, got[1].Status)
	assert.False(t, got[1].OperatingMargin.Valid)

	loss := CompanyDetails(records, []string{"B"})
	require.Len(t, loss, 1)
	assert.Equal(t, StatusLoss, loss[0].Status)
	assert.False(t, loss[0].OperatingMargin.Valid)
}

func TestYearsAndCompanies(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, []int{2023, 2022}, Years(records))
	assert.Equal(t, []string{"Samsung", "Hyundai", "SK", "LG", "Kia"}, Companies(records))
	assert.Empty(t, Years(nil))
}

func rows(records []models.FinancialRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Row
	}
	return out
}

func companies(records []models.FinancialRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Company
	}
	return out
}
