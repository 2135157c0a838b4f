package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/config"
	"github.com/mauv0809/asset-ranking/internal/db"
	"github.com/mauv0809/asset-ranking/internal/ingest"
	"github.com/mauv0809/asset-ranking/internal/models"
)

// xlsxSource builds the spreadsheet source from config.
func xlsxSource(c *config.Config) *ingest.XLSXSource {
	return ingest.NewXLSXSource(c.Data.Path, ingest.XLSXOptions{
		SheetName:  c.Data.Sheet,
		SheetIndex: c.Data.SheetIndex,
	})
}

// connectDB applies migrations and opens a pool.
func connectDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if err := db.RunMigrations(databaseURL); err != nil {
		return nil, eris.Wrap(err, "run migrations")
	}
	zap.L().Info("migrations completed")

	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "connect database")
	}
	zap.L().Info("connected to database")
	return pool, nil
}

// loadRecords reads the dataset once from the configured source. The
// returned close func releases any database pool.
func loadRecords(ctx context.Context, c *config.Config) ([]models.FinancialRecord, func(), error) {
	noop := func() {}

	switch c.Data.Source {
	case config.SourcePostgres:
		pool, err := db.Connect(ctx, c.Database.URL)
		if err != nil {
			return nil, noop, eris.Wrap(err, "connect database")
		}
		records, err := db.NewRepository(pool).Load(ctx)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return records, pool.Close, nil
	default:
		records, err := xlsxSource(c).Load(ctx)
		if err != nil {
			return nil, noop, err
		}
		return records, noop, nil
	}
}
