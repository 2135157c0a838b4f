package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// DefaultTopN is the size of the rankings shown on the dashboard.
const DefaultTopN = 10

// Summary holds the dataset-wide cards shown when no company is selected.
type Summary struct {
	TopAssetHolder         *models.FinancialRecord `json:"top_asset_holder"`
	TotalAssets            decimal.Decimal         `json:"total_assets"`
	MeanOperatingMargin    decimal.NullDecimal     `json:"mean_operating_margin"`
	PositiveNetIncomeRatio decimal.NullDecimal     `json:"positive_net_income_ratio"`
}

// DerivedView is everything the dashboard shows for one selection.
type DerivedView struct {
	Selection   models.Selection         `json:"selection"`
	Records     []models.FinancialRecord `json:"records"`
	TopByMetric []models.FinancialRecord `json:"top_by_metric"`
	TopByAssets []models.FinancialRecord `json:"top_by_assets"`
	Summary     *Summary                 `json:"summary,omitempty"`
	Details     []CompanyDetail          `json:"details,omitempty"`
	Empty       bool                     `json:"empty"`
}

// Derive computes the view for sel from the full dataset. A year with no
// records produces an Empty view rather than an error.
func Derive(records []models.FinancialRecord, sel models.Selection, topN int) DerivedView {
	if topN <= 0 {
		topN = DefaultTopN
	}

	yearRecords := FilterByYear(records, sel.Year)
	view := DerivedView{
		Selection:   sel,
		Records:     yearRecords,
		TopByMetric: TopN(yearRecords, sel.Metric, topN),
		TopByAssets: TopN(yearRecords, models.TotalAssets, topN),
		Empty:       len(yearRecords) == 0,
	}

	if sel.HasCompanies() {
		view.Details = CompanyDetails(yearRecords, sel.Companies)
		return view
	}

	summary := &Summary{
		TotalAssets:            SumTotalAssets(yearRecords),
		MeanOperatingMargin:    MeanOperatingMargin(yearRecords),
		PositiveNetIncomeRatio: PositiveNetIncomeRatio(yearRecords),
	}
	// ErrEmptySet leaves the top holder unset; the cards show "no data".
	if top, err := ArgmaxTotalAssets(yearRecords); err == nil {
		summary.TopAssetHolder = &top
	}
	view.Summary = summary
	return view
}

// DefaultSelection is the session-start state: the most recent year, no
// companies, total assets and the first theme.
func DefaultSelection(records []models.FinancialRecord) models.Selection {
	sel := models.Selection{
		Companies: []string{},
		Metric:    models.TotalAssets,
		Theme:     models.Themes[0],
	}
	if years := Years(records); len(years) > 0 {
		sel.Year = years[0]
	}
	return sel
}

// KnownCompanies keeps the requested names that exist in the dataset, in
// request order without duplicates.
func KnownCompanies(records []models.FinancialRecord, requested []string) []string {
	known := make(map[string]struct{})
	for _, c := range Companies(records) {
		known[c] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	for _, c := range requested {
		if _, ok := known[c]; !ok {
			continue
		}
		delete(known, c)
		out = append(out, c)
	}
	return out
}
