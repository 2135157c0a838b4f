package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// Column keys understood by the parser.
const (
	colYear    = "year"
	colCompany = "company"
)

// headerAliases maps normalized header text to a column key. The KOSPI
// export uses Korean headers.
var headerAliases = map[string]string{
	"year":              colYear,
	"년도":                colYear,
	"연도":                colYear,
	"company":           colCompany,
	"company_name":      colCompany,
	"회사명":               colCompany,
	"total_assets":      string(models.TotalAssets),
	"자산총계":              string(models.TotalAssets),
	"total_liabilities": string(models.TotalLiabilities),
	"부채총계":              string(models.TotalLiabilities),
	"total_equity":      string(models.TotalEquity),
	"자본총계":              string(models.TotalEquity),
	"revenue":           string(models.Revenue),
	"매출액":               string(models.Revenue),
	"operating_profit":  string(models.OperatingProfit),
	"영업이익":              string(models.OperatingProfit),
	"net_income":        string(models.NetIncome),
	"당기순이익":             string(models.NetIncome),
}

// normalizeHeader lowercases and joins words with underscores, so
// "Total Assets" and "total_assets" match.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

// buildColumnIndex creates a map from column key to row index. The first
// matching header wins.
func buildColumnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// getString safely extracts a trimmed cell.
func getString(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// getDecimal extracts an amount. Blank and unparseable cells are missing.
func getDecimal(row []string, idx map[string]int, col string) decimal.NullDecimal {
	return parseAmount(getString(row, idx, col))
}

// getYear extracts an integral year. Spreadsheets often store it as 2023.0.
func getYear(row []string, idx map[string]int) (int, bool) {
	d := getDecimal(row, idx, colYear)
	if !d.Valid || !d.Decimal.IsInteger() {
		return 0, false
	}
	return int(d.Decimal.IntPart()), true
}

func parseAmount(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	switch strings.ToLower(s) {
	case "", "-", "nan", "n/a", "na", "null":
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseRecords converts a header row plus data rows into records. Rows
// without a usable year or company are skipped. When a (company, year) pair
// repeats, the first row is kept.
func ParseRecords(header []string, rows [][]string) ([]models.FinancialRecord, LoadReport, error) {
	idx := buildColumnIndex(header)
	for _, col := range []string{colYear, colCompany} {
		if _, ok := idx[col]; !ok {
			return nil, LoadReport{}, eris.Errorf("ingest: required column %q not found in header", col)
		}
	}

	type key struct {
		company string
		year    int
	}
	seen := make(map[key]struct{}, len(rows))

	report := LoadReport{Rows: len(rows)}
	records := make([]models.FinancialRecord, 0, len(rows))

	for i, row := range rows {
		company := getString(row, idx, colCompany)
		year, ok := getYear(row, idx)
		if company == "" || !ok {
			report.Skipped++
			continue
		}

		k := key{company: company, year: year}
		if _, dup := seen[k]; dup {
			report.Duplicates++
			zap.L().Warn("duplicate company/year row dropped",
				zap.String("company", company),
				zap.Int("year", year),
				zap.Int("sheet_row", i+2),
			)
			continue
		}
		seen[k] = struct{}{}

		records = append(records, models.FinancialRecord{
			Row:              len(records),
			Company:          company,
			Year:             year,
			TotalAssets:      getDecimal(row, idx, string(models.TotalAssets)),
			TotalLiabilities: getDecimal(row, idx, string(models.TotalLiabilities)),
			TotalEquity:      getDecimal(row, idx, string(models.TotalEquity)),
			Revenue:          getDecimal(row, idx, string(models.Revenue)),
			OperatingProfit:  getDecimal(row, idx, string(models.OperatingProfit)),
			NetIncome:        getDecimal(row, idx, string(models.NetIncome)),
		})
	}

	report.Records = len(records)
	return records, report, nil
}
