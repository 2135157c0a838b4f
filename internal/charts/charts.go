// Package charts renders the dashboard's bar and scatter charts to SVG.
package charts

import (
	"bytes"
	"html"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mauv0809/asset-ranking/internal/format"
	"github.com/mauv0809/asset-ranking/internal/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = eris.New("charts: no data to plot")

const (
	width       = 760
	height      = 380
	maxBarWidth = 48
	minDot      = 3.0
	maxDot      = 16.0

	// maxLabels caps scatter annotations so a full year of listings stays
	// readable; the largest companies by total assets are labelled.
	maxLabels = 20
)

// BarChart ranks records by metric. Records must already be ordered and
// carry a value for metric. Bars are colored by value on the theme scale.
func BarChart(records []models.FinancialRecord, metric models.Metric, theme models.Theme, title string) (string, error) {
	values := make([]float64, 0, len(records))
	labels := make([]string, 0, len(records))
	for _, r := range records {
		v := metric.Value(r)
		if !v.Valid {
			continue
		}
		values = append(values, format.Float(v.Decimal))
		labels = append(labels, html.EscapeString(r.Company))
	}
	if len(values) == 0 {
		return "", ErrNoData
	}

	lo, hi := bounds(values)
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		c := Scale(theme, v, lo, hi)
		bars[i] = chart.Value{
			Label: labels[i],
			Value: v,
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		}
	}

	yMin, yMax := pad(math.Min(0, lo), math.Max(0, hi))
	if lo >= 0 {
		yMin = 0
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(len(bars)),
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: amountFormatter,
		},
		Bars: bars,
	}
	if lo < 0 {
		graph.UseBaseValue = true
		graph.BaseValue = 0
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", eris.Wrap(err, "charts: render bar chart")
	}
	return buf.String(), nil
}

// ScatterChart plots total assets against operating profit. Dot size
// follows revenue and dot color follows net income, and points are labelled
// with the company name. Records missing either axis value are left out.
func ScatterChart(records []models.FinancialRecord, theme models.Theme, title string) (string, error) {
	var xs, ys []float64
	var names []string
	var revenue, income []decimal.NullDecimal
	for _, r := range records {
		if !r.TotalAssets.Valid || !r.OperatingProfit.Valid {
			continue
		}
		xs = append(xs, format.Float(r.TotalAssets.Decimal))
		ys = append(ys, format.Float(r.OperatingProfit.Decimal))
		names = append(names, r.Company)
		revenue = append(revenue, r.Revenue)
		income = append(income, r.NetIncome)
	}
	if len(xs) == 0 {
		return "", ErrNoData
	}

	sizes := dotSizes(revenue)
	colors := dotColors(income, theme)

	xMin, xMax := pad(bounds(xs))
	yMin, yMax := pad(bounds(ys))

	graph := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		XAxis: chart.XAxis{
			Name:           models.TotalAssets.Label(),
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: amountFormatter,
		},
		YAxis: chart.YAxis{
			Name:           models.OperatingProfit.Label(),
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: amountFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "companies",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
						return sizes[index]
					},
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return colors[index]
					},
				},
			},
			chart.AnnotationSeries{
				Name:        "company",
				Style:       chart.Style{FontSize: 7, StrokeWidth: 0.5},
				Annotations: pointLabels(names, xs, ys),
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", eris.Wrap(err, "charts: render scatter chart")
	}
	return buf.String(), nil
}

// pointLabels names up to maxLabels points, largest total assets first.
// Names are escaped because the SVG writer emits text verbatim.
func pointLabels(names []string, xs, ys []float64) []chart.Value2 {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return xs[order[a]] > xs[order[b]]
	})
	if len(order) > maxLabels {
		order = order[:maxLabels]
	}

	labels := make([]chart.Value2, 0, len(order))
	for _, i := range order {
		labels = append(labels, chart.Value2{
			Label:  html.EscapeString(names[i]),
			XValue: xs[i],
			YValue: ys[i],
		})
	}
	return labels
}

// dotSizes scales dot radius with the square root of revenue so the dot
// area tracks the amount. Missing or non-positive revenue gets the minimum.
func dotSizes(revenue []decimal.NullDecimal) []float64 {
	maxRev := 0.0
	for _, r := range revenue {
		if r.Valid {
			maxRev = math.Max(maxRev, format.Float(r.Decimal))
		}
	}

	sizes := make([]float64, len(revenue))
	for i, r := range revenue {
		sizes[i] = minDot
		if !r.Valid || maxRev <= 0 {
			continue
		}
		v := format.Float(r.Decimal)
		if v <= 0 {
			continue
		}
		sizes[i] = minDot + (maxDot-minDot)*math.Sqrt(v/maxRev)
	}
	return sizes
}

func dotColors(income []decimal.NullDecimal, theme models.Theme) []drawing.Color {
	var present []float64
	for _, n := range income {
		if n.Valid {
			present = append(present, format.Float(n.Decimal))
		}
	}

	colors := make([]drawing.Color, len(income))
	if len(present) == 0 {
		for i := range colors {
			colors[i] = missingColor
		}
		return colors
	}

	lo, hi := bounds(present)
	for i, n := range income {
		if !n.Valid {
			colors[i] = missingColor
			continue
		}
		colors[i] = Scale(theme, format.Float(n.Decimal), lo, hi)
	}
	return colors
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// pad widens a range by 5% on each side; a degenerate range becomes one
// unit wide so the renderer has a non-zero delta.
func pad(lo, hi float64) (float64, float64) {
	delta := hi - lo
	if delta == 0 {
		return lo - 1, hi + 1
	}
	return lo - delta*0.05, hi + delta*0.05
}

func barWidth(n int) int {
	if n == 0 {
		return maxBarWidth
	}
	w := (width - 120) / n
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

func amountFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return format.Amount(decimal.NewFromFloat(f).Round(0))
}
