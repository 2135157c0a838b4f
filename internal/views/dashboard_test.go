package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/asset-ranking/internal/analytics"
	"github.com/mauv0809/asset-ranking/internal/models"
)

func amt(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func singleCompany() []models.FinancialRecord {
	return []models.FinancialRecord{{
		Company:         "A",
		Year:            2023,
		TotalAssets:     amt(1000),
		Revenue:         amt(500),
		OperatingProfit: amt(100),
		NetIncome:       amt(50),
	}}
}

func pageFor(records []models.FinancialRecord, sel models.Selection) PageModel {
	return PageModel{
		Title:     "Dashboard",
		Unit:      "억원",
		Years:     analytics.Years(records),
		Companies: analytics.Companies(records),
		View:      analytics.Derive(records, sel, analytics.DefaultTopN),
	}
}

func TestIndex_SummaryCards(t *testing.T) {
	records := singleCompany()
	html := render(t, Index(pageFor(records, analytics.DefaultSelection(records))))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, `href="/assets/css/dashboard.css"`)
	assert.Contains(t, html, "Top Asset Holder (2023)")
	assert.Contains(t, html, "A : 1,000 억원")
	assert.Contains(t, html, "Mean Operating Margin")
	assert.Contains(t, html, "20.00%")
	assert.Contains(t, html, "100.00%")
	assert.Contains(t, html, `<option value="2023" selected>2023</option>`)
	assert.Contains(t, html, `value="total_assets" checked`)
	// Empty chart SVGs fall back to the placeholder.
	assert.Contains(t, html, "No data to chart")
}

func TestIndex_CompanyCards(t *testing.T) {
	records := []models.FinancialRecord{
		{Company: "A", Year: 2023, TotalAssets: amt(1000), Revenue: amt(500), OperatingProfit: amt(100), NetIncome: amt(50)},
		{Company: "B", Year: 2023, TotalAssets: amt(700), Revenue: amt(0), OperatingProfit: amt(5), NetIncome: amt(-20)},
	}
	sel := models.Selection{Year: 2023, Companies: []string{"B"}, Metric: models.Revenue, Theme: models.Reds}
	html := render(t, Index(pageFor(records, sel)))

	assert.Contains(t, html, "B (2023) Total Assets")
	assert.Contains(t, html, "700 억원")
	// Zero revenue hides the margin card.
	assert.NotContains(t, html, "B Operating Margin")
	assert.Contains(t, html, `<div class="delta loss">loss</div>`)
	assert.NotContains(t, html, "Top Asset Holder")
	assert.Contains(t, html, `<option value="B" selected>B</option>`)
	assert.Contains(t, html, `<option value="Reds" selected>Reds</option>`)
}

func TestIndex_EmptyYear(t *testing.T) {
	sel := models.Selection{Year: 1999, Metric: models.TotalAssets, Theme: models.Blues}
	html := render(t, Index(pageFor(singleCompany(), sel)))

	assert.Contains(t, html, "No data")
	assert.Contains(t, html, "No companies to rank.")
	assert.Contains(t, html, "N/A")
}

func TestIndex_EmbedsCharts(t *testing.T) {
	m := pageFor(singleCompany(), analytics.DefaultSelection(singleCompany()))
	m.BarSVG = `<svg id="bar"></svg>`
	m.ScatterSVG = `<svg id="scatter"></svg>`
	html := render(t, Index(m))

	assert.Contains(t, html, `<svg id="bar"></svg>`)
	assert.Contains(t, html, `<svg id="scatter"></svg>`)
	assert.NotContains(t, html, "No data to chart")
}

func TestRankingTable(t *testing.T) {
	records := []models.FinancialRecord{
		{Company: "Big", TotalAssets: amt(4559060), OperatingProfit: amt(65670), NetIncome: amt(154871)},
		{Company: "<b>Small</b>", TotalAssets: amt(12), OperatingProfit: decimal.NullDecimal{}, NetIncome: amt(-1)},
	}
	html := render(t, RankingTable(records))

	assert.Contains(t, html, "<td>1</td><td>Big</td>")
	assert.Contains(t, html, "4,559,060")
	assert.Contains(t, html, "<td>2</td><td>&lt;b&gt;Small&lt;/b&gt;</td>")
	assert.Contains(t, html, `<td class="num">-</td>`)
}

func TestGlossary(t *testing.T) {
	html := render(t, Glossary())
	for _, m := range models.Metrics {
		assert.Contains(t, html, m.Label())
	}
	assert.Contains(t, html, "<dt>Total Assets</dt><dd>All assets held by the company</dd>")
	assert.Contains(t, html, DataSourceNote)
}

func TestCard(t *testing.T) {
	html := render(t, Card("Net Income", "50 억원", analytics.StatusProfit))
	assert.Equal(t,
		`<div class="card"><div class="label">Net Income</div><div class="value">50 억원</div><div class="delta profit">profit</div></div>`,
		html)
}

func TestOption(t *testing.T) {
	assert.Equal(t, `<option value="A&amp;B" selected>A&amp;B</option>`, render(t, option("A&B", true)))
	assert.Equal(t, `<option value="2022">2022</option>`, render(t, option("2022", false)))
}
