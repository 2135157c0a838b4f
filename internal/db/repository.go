package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// Repository stores the dataset in Postgres.
type Repository struct {
	pool Pool
}

// NewRepository creates a new repository.
func NewRepository(pool Pool) *Repository {
	return &Repository{pool: pool}
}

// UpsertFinancialRecords inserts or updates records keyed by (company, year).
// Returns the number of rows affected.
func (r *Repository) UpsertFinancialRecords(ctx context.Context, records []models.FinancialRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO financial_records (
				company, year,
				total_assets, total_liabilities, total_equity,
				revenue, operating_profit, net_income,
				source_row, updated_at
			) VALUES (
				$1, $2,
				$3, $4, $5,
				$6, $7, $8,
				$9, NOW()
			)
			ON CONFLICT (company, year) DO UPDATE SET
				total_assets = EXCLUDED.total_assets,
				total_liabilities = EXCLUDED.total_liabilities,
				total_equity = EXCLUDED.total_equity,
				revenue = EXCLUDED.revenue,
				operating_profit = EXCLUDED.operating_profit,
				net_income = EXCLUDED.net_income,
				source_row = EXCLUDED.source_row,
				updated_at = NOW()
		`,
			rec.Company, rec.Year,
			nullDecimal(rec.TotalAssets), nullDecimal(rec.TotalLiabilities), nullDecimal(rec.TotalEquity),
			nullDecimal(rec.Revenue), nullDecimal(rec.OperatingProfit), nullDecimal(rec.NetIncome),
			rec.Row,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range records {
		if _, err := br.Exec(); err != nil {
			return count, eris.Wrap(err, "db: upsert financial record")
		}
		count++
	}

	return count, nil
}

// ListFinancialRecords returns every stored record in source row order.
func (r *Repository) ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT company, year,
			total_assets, total_liabilities, total_equity,
			revenue, operating_profit, net_income
		FROM financial_records
		ORDER BY source_row, company, year`)
	if err != nil {
		return nil, eris.Wrap(err, "db: query financial records")
	}
	defer rows.Close()

	var records []models.FinancialRecord
	for rows.Next() {
		rec := models.FinancialRecord{Row: len(records)}
		if err := rows.Scan(
			&rec.Company, &rec.Year,
			&rec.TotalAssets, &rec.TotalLiabilities, &rec.TotalEquity,
			&rec.Revenue, &rec.OperatingProfit, &rec.NetIncome,
		); err != nil {
			return nil, eris.Wrap(err, "db: scan financial record")
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "db: iterate financial records")
	}
	return records, nil
}

// Load implements ingest.Source.
func (r *Repository) Load(ctx context.Context) ([]models.FinancialRecord, error) {
	return r.ListFinancialRecords(ctx)
}

// GetRecordCount returns the number of stored records.
func (r *Repository) GetRecordCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM financial_records").Scan(&count)
	if err != nil {
		return 0, eris.Wrap(err, "db: count records")
	}
	return count, nil
}

// GetCompanyCount returns the number of distinct companies stored.
func (r *Repository) GetCompanyCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(DISTINCT company) FROM financial_records").Scan(&count)
	if err != nil {
		return 0, eris.Wrap(err, "db: count companies")
	}
	return count, nil
}

// nullDecimal converts a NullDecimal to a value pgx can bind, nil when missing.
func nullDecimal(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}
