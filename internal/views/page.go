package views

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mauv0809/asset-ranking/internal/analytics"
	"github.com/mauv0809/asset-ranking/internal/format"
)

// DataSourceNote is shown under the glossary.
const DataSourceNote = "Source: Financial Supervisory Service / Korea Exchange disclosures"

// PageModel is everything the dashboard page needs. Charts arrive
// pre-rendered as SVG; an empty string shows the no-data placeholder.
type PageModel struct {
	Title      string
	Unit       string
	Years      []int
	Companies  []string
	View       analytics.DerivedView
	BarSVG     string
	ScatterSVG string
}

func (m PageModel) companySelected(company string) bool {
	for _, c := range m.View.Selection.Companies {
		if c == company {
			return true
		}
	}
	return false
}

func topHolderText(m PageModel) string {
	top := m.View.Summary.TopAssetHolder
	if top == nil {
		return "No data"
	}
	return top.Company + " : " + format.AmountWithUnit(top.TotalAssets, m.Unit)
}

func totalAssetsText(m PageModel) string {
	return format.AmountWithUnit(decimal.NewNullDecimal(m.View.Summary.TotalAssets), m.Unit)
}

func rankingTitle(m PageModel) string {
	return fmt.Sprintf("%d Total Assets Top %d", m.View.Selection.Year, len(m.View.TopByAssets))
}
