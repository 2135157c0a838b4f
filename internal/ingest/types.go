package ingest

import (
	"context"
	"fmt"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// Source produces the full dataset for a session.
type Source interface {
	Load(ctx context.Context) ([]models.FinancialRecord, error)
}

// LoadError reports a dataset that could not be read. It is fatal at
// start-up.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("data load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadReport summarises rows that did not become records.
type LoadReport struct {
	Rows       int // data rows read, header excluded
	Records    int
	Skipped    int // no usable year or company
	Duplicates int // repeated (company, year), later rows dropped
}

// XLSXOptions selects the worksheet to read.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}
