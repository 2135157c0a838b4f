package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the spreadsheet into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Database.URL == "" {
			return eris.New("database url is required (DATABASE_URL)")
		}

		records, err := xlsxSource(cfg).Load(ctx)
		if err != nil {
			return err
		}

		pool, err := connectDB(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		count, err := db.NewRepository(pool).UpsertFinancialRecords(ctx, records)
		if err != nil {
			return eris.Wrap(err, "upsert records")
		}

		zap.L().Info("import complete",
			zap.Int("upserted", count),
			zap.String("xlsx", cfg.Data.Path),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
