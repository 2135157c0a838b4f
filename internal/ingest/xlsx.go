package ingest

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// ReadXLSX reads a worksheet and returns all rows as string slices.
// Numeric cells yield their raw stored value rather than the display format.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if cell.Type() == xlsx.CellTypeNumeric {
			cells[j] = cell.Value
			continue
		}
		cells[j] = cell.String()
	}
	return cells
}

// LoadXLSX reads the dataset spreadsheet. The first row must be the header.
// Any failure is returned as a *LoadError.
func LoadXLSX(path string, opts XLSXOptions) ([]models.FinancialRecord, LoadReport, error) {
	rows, err := ReadXLSX(path, opts)
	if err != nil {
		return nil, LoadReport{}, &LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, LoadReport{}, &LoadError{Path: path, Err: eris.New("xlsx: sheet is empty")}
	}

	records, report, err := ParseRecords(rows[0], rows[1:])
	if err != nil {
		return nil, LoadReport{}, &LoadError{Path: path, Err: err}
	}
	return records, report, nil
}

// XLSXSource loads the dataset from a spreadsheet file.
type XLSXSource struct {
	Path    string
	Options XLSXOptions
}

// NewXLSXSource creates a spreadsheet-backed source.
func NewXLSXSource(path string, opts XLSXOptions) *XLSXSource {
	return &XLSXSource{Path: path, Options: opts}
}

// Load implements Source.
func (s *XLSXSource) Load(ctx context.Context) ([]models.FinancialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: s.Path, Err: eris.Wrap(err, "xlsx: context cancelled")}
	}

	records, report, err := LoadXLSX(s.Path, s.Options)
	if err != nil {
		return nil, err
	}

	zap.L().Info("dataset loaded",
		zap.String("path", s.Path),
		zap.Int("rows", report.Rows),
		zap.Int("records", report.Records),
		zap.Int("skipped", report.Skipped),
		zap.Int("duplicates", report.Duplicates),
	)
	return records, nil
}
