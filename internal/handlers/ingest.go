package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/ingest"
	"github.com/mauv0809/asset-ranking/internal/models"
)

// RecordStore is the Postgres side of ingestion.
type RecordStore interface {
	UpsertFinancialRecords(ctx context.Context, records []models.FinancialRecord) (int, error)
	GetRecordCount(ctx context.Context) (int, error)
	GetCompanyCount(ctx context.Context) (int, error)
}

// IngestHandler copies the spreadsheet into Postgres.
type IngestHandler struct {
	source ingest.Source
	store  RecordStore
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(source ingest.Source, store RecordStore) *IngestHandler {
	return &IngestHandler{
		source: source,
		store:  store,
	}
}

// IngestResponse is the JSON response for ingestion endpoints.
type IngestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
}

// IngestRecords handles POST /admin/ingest/records
// Re-reads the spreadsheet and upserts every record. The running
// dashboard keeps serving the dataset it started with.
func (h *IngestHandler) IngestRecords(c echo.Context) error {
	ctx := c.Request().Context()
	start := time.Now()

	zap.L().Info("starting record ingestion")

	records, err := h.source.Load(ctx)
	if err != nil {
		zap.L().Error("loading records failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, IngestResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to load records: %v", err),
		})
	}

	count, err := h.store.UpsertFinancialRecords(ctx, records)
	if err != nil {
		zap.L().Error("upserting records failed", zap.Int("upserted", count), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, IngestResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to upsert records: %v", err),
			Count:   count,
		})
	}

	elapsed := time.Since(start)
	zap.L().Info("record ingestion complete", zap.Int("records", count), zap.Duration("elapsed", elapsed))

	return c.JSON(http.StatusOK, IngestResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully ingested %d records", count),
		Count:   count,
		Elapsed: elapsed.String(),
	})
}

// IngestStatus handles GET /admin/ingest/status
// Returns stored record and company counts.
func (h *IngestHandler) IngestStatus(c echo.Context) error {
	ctx := c.Request().Context()

	recordCount, err := h.store.GetRecordCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, IngestResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to count records: %v", err),
		})
	}
	companyCount, err := h.store.GetCompanyCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, IngestResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to count companies: %v", err),
		})
	}

	return c.JSON(http.StatusOK, map[string]int{
		"records":   recordCount,
		"companies": companyCount,
	})
}
