package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	dashboardRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_renders_total",
		Help: "Dashboard pages rendered, by outcome (ok, empty).",
	}, []string{"outcome"})

	dashboardRenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_render_seconds",
		Help:    "Time to derive and render one dashboard page.",
		Buckets: prometheus.DefBuckets,
	})

	chartErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_chart_errors_total",
		Help: "Charts that failed to render, by chart.",
	}, []string{"chart"})
)

// Metrics exposes the Prometheus registry.
func Metrics() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
