// Package analytics derives dashboard figures from the loaded dataset.
// Every function is a pure computation over an immutable record slice.
package analytics

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// ErrEmptySet is returned when an argmax is taken over no values.
var ErrEmptySet = eris.New("analytics: empty record set")

// Profit and loss labels for per-company detail.
const (
	StatusProfit = "profit"
	StatusLoss   = "loss"
)

// FilterByYear returns the records for year in source order. An unknown
// year yields an empty, non-nil slice.
func FilterByYear(records []models.FinancialRecord, year int) []models.FinancialRecord {
	out := make([]models.FinancialRecord, 0)
	for _, r := range records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// TopN returns up to n records with the largest metric value, descending.
// Records missing the metric are excluded; ties keep input order.
func TopN(records []models.FinancialRecord, metric models.Metric, n int) []models.FinancialRecord {
	if n <= 0 {
		return []models.FinancialRecord{}
	}

	ranked := make([]models.FinancialRecord, 0, len(records))
	for _, r := range records {
		if metric.Value(r).Valid {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return metric.Value(ranked[i]).Decimal.GreaterThan(metric.Value(ranked[j]).Decimal)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// OperatingMargin is operating profit over revenue. The result is invalid
// when revenue is missing or zero, or operating profit is missing.
func OperatingMargin(r models.FinancialRecord) decimal.NullDecimal {
	if !r.Revenue.Valid || r.Revenue.Decimal.IsZero() || !r.OperatingProfit.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.OperatingProfit.Decimal.Div(r.Revenue.Decimal))
}

// MeanOperatingMargin averages the defined operating margins. It is invalid
// when no record has a defined margin.
func MeanOperatingMargin(records []models.FinancialRecord) decimal.NullDecimal {
	sum := decimal.Zero
	count := 0
	for _, r := range records {
		m := OperatingMargin(r)
		if !m.Valid {
			continue
		}
		sum = sum.Add(m.Decimal)
		count++
	}
	if count == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(count))))
}

// PositiveNetIncomeRatio is the share of records with net income strictly
// above zero. Missing net income counts as not positive. The ratio of an
// empty set is invalid.
func PositiveNetIncomeRatio(records []models.FinancialRecord) decimal.NullDecimal {
	if len(records) == 0 {
		return decimal.NullDecimal{}
	}
	positive := 0
	for _, r := range records {
		if isProfitable(r) {
			positive++
		}
	}
	return decimal.NewNullDecimal(
		decimal.NewFromInt(int64(positive)).Div(decimal.NewFromInt(int64(len(records)))),
	)
}

// ArgmaxTotalAssets returns the record holding the most total assets. The
// first record wins a tie.
func ArgmaxTotalAssets(records []models.FinancialRecord) (models.FinancialRecord, error) {
	best := -1
	for i, r := range records {
		if !r.TotalAssets.Valid {
			continue
		}
		if best < 0 || r.TotalAssets.Decimal.GreaterThan(records[best].TotalAssets.Decimal) {
			best = i
		}
	}
	if best < 0 {
		return models.FinancialRecord{}, ErrEmptySet
	}
	return records[best], nil
}

// SumTotalAssets adds every present total-assets value.
func SumTotalAssets(records []models.FinancialRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if r.TotalAssets.Valid {
			sum = sum.Add(r.TotalAssets.Decimal)
		}
	}
	return sum
}

// CompanyDetail is the per-company card content.
type CompanyDetail struct {
	Company         string              `json:"company"`
	Year            int                 `json:"year"`
	TotalAssets     decimal.NullDecimal `json:"total_assets"`
	OperatingMargin decimal.NullDecimal `json:"operating_margin"`
	NetIncome       decimal.NullDecimal `json:"net_income"`
	Status          string              `json:"status"`
}

// CompanyDetails builds a detail entry for every record of a selected
// company, following the order of records.
func CompanyDetails(records []models.FinancialRecord, companies []string) []CompanyDetail {
	selected := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		selected[c] = struct{}{}
	}

	details := make([]CompanyDetail, 0, len(companies))
	for _, r := range records {
		if _, ok := selected[r.Company]; !ok {
			continue
		}
		status := StatusLoss
		if isProfitable(r) {
			status = StatusProfit
		}
		details = append(details, CompanyDetail{
			Company:         r.Company,
			Year:            r.Year,
			TotalAssets:     r.TotalAssets,
			OperatingMargin: OperatingMargin(r),
			NetIncome:       r.NetIncome,
			Status:          status,
		})
	}
	return details
}

// Years returns the distinct years, most recent first.
func Years(records []models.FinancialRecord) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Companies returns the distinct company names in first-seen order.
func Companies(records []models.FinancialRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		if _, ok := seen[r.Company]; ok {
			continue
		}
		seen[r.Company] = struct{}{}
		names = append(names, r.Company)
	}
	return names
}

func isProfitable(r models.FinancialRecord) bool {
	return r.NetIncome.Valid && r.NetIncome.Decimal.IsPositive()
}
