package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewServer wires middleware and routes. ingestHandler may be nil when no
// database is configured.
func NewServer(h *Handler, ingestHandler *IngestHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
			}
			if v.Error == nil {
				zap.L().Info("request", fields...)
			} else {
				zap.L().Warn("request failed", append(fields, zap.Error(v.Error))...)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Static files
	e.Static("/assets", "assets")

	// Routes
	e.GET("/health", h.Health)
	e.GET("/metrics", Metrics())
	e.GET("/", h.Index)
	e.GET("/api/view", h.View)

	// Admin routes for data ingestion
	if ingestHandler != nil {
		admin := e.Group("/admin")
		admin.GET("/ingest/status", ingestHandler.IngestStatus)
		admin.POST("/ingest/records", ingestHandler.IngestRecords)
		zap.L().Info("ingestion endpoints registered")
	}

	return e
}
