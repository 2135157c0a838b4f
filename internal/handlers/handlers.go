package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mauv0809/asset-ranking/internal/analytics"
	"github.com/mauv0809/asset-ranking/internal/charts"
	"github.com/mauv0809/asset-ranking/internal/models"
	"github.com/mauv0809/asset-ranking/internal/views"
)

// Options holds presentation settings for the dashboard.
type Options struct {
	Title string
	Unit  string
	TopN  int
}

// Handler serves the dashboard over an immutable dataset.
type Handler struct {
	records   []models.FinancialRecord
	years     []int
	companies []string
	opts      Options
}

// New creates a handler for records. The slice must not be modified
// afterwards.
func New(records []models.FinancialRecord, opts Options) *Handler {
	if opts.TopN <= 0 {
		opts.TopN = analytics.DefaultTopN
	}
	return &Handler{
		records:   records,
		years:     analytics.Years(records),
		companies: analytics.Companies(records),
		opts:      opts,
	}
}

// Render writes a templ component as the HTML response.
func Render(c echo.Context, statusCode int, t templ.Component) error {
	var buf bytes.Buffer
	if err := t.Render(c.Request().Context(), &buf); err != nil {
		return eris.Wrap(err, "handlers: render component")
	}
	return c.HTMLBlob(statusCode, buf.Bytes())
}

// Health returns application health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Index renders the dashboard for the selection in the query string.
// Query params:
// - year: reporting year (default: most recent)
// - company: repeatable company name
// - metric: ranking metric key (default: total_assets)
// - theme: chart color theme (default: Blues)
func (h *Handler) Index(c echo.Context) error {
	start := time.Now()
	defer func() {
		dashboardRenderSeconds.Observe(time.Since(start).Seconds())
	}()

	sel := h.Selection(c)
	view := analytics.Derive(h.records, sel, h.opts.TopN)

	page := views.PageModel{
		Title:     h.opts.Title,
		Unit:      h.opts.Unit,
		Years:     h.years,
		Companies: h.companies,
		View:      view,
	}

	// Chart failures degrade to a placeholder, so the group never errors.
	var g errgroup.Group
	g.Go(func() error {
		page.BarSVG = renderChart("bar", func() (string, error) {
			title := fmt.Sprintf("%d %s Top %d", sel.Year, sel.Metric.Label(), h.opts.TopN)
			return charts.BarChart(view.TopByMetric, sel.Metric, sel.Theme, title)
		})
		return nil
	})
	g.Go(func() error {
		page.ScatterSVG = renderChart("scatter", func() (string, error) {
			title := fmt.Sprintf("%d %s vs %s", sel.Year, models.TotalAssets.Label(), models.OperatingProfit.Label())
			return charts.ScatterChart(view.Records, sel.Theme, title)
		})
		return nil
	})
	_ = g.Wait()

	outcome := "ok"
	if view.Empty {
		outcome = "empty"
	}
	dashboardRenders.WithLabelValues(outcome).Inc()

	return Render(c, http.StatusOK, views.Index(page))
}

// View returns the derived view for the selection as JSON.
func (h *Handler) View(c echo.Context) error {
	sel := h.Selection(c)
	return c.JSON(http.StatusOK, analytics.Derive(h.records, sel, h.opts.TopN))
}

// Selection parses the query string over the session defaults. Unknown
// metrics, themes and companies are ignored; an unparseable year keeps the
// default while an unknown one selects an empty view.
func (h *Handler) Selection(c echo.Context) models.Selection {
	sel := analytics.DefaultSelection(h.records)

	if y := c.QueryParam("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			sel.Year = year
		}
	}
	if m, ok := models.ParseMetric(c.QueryParam("metric")); ok {
		sel.Metric = m
	}
	if t, ok := models.ParseTheme(c.QueryParam("theme")); ok {
		sel.Theme = t
	}
	sel.Companies = analytics.KnownCompanies(h.records, c.QueryParams()["company"])

	return sel
}

// renderChart returns the SVG or "" when the chart cannot be drawn.
func renderChart(name string, fn func() (string, error)) string {
	svg, err := fn()
	if err == nil {
		return svg
	}
	if errors.Is(err, charts.ErrNoData) {
		zap.L().Debug("chart skipped, no data", zap.String("chart", name))
		return ""
	}
	chartErrors.WithLabelValues(name).Inc()
	zap.L().Warn("chart render failed", zap.String("chart", name), zap.Error(err))
	return ""
}
