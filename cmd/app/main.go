package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "asset-ranking",
	Short: "KOSPI asset ranking dashboard",
	Long:  "Loads yearly KOSPI company financials from a spreadsheet or Postgres and serves a ranking dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional (local dev)
		envErr := godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		if envErr != nil {
			zap.L().Debug("no .env file found, using environment variables")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
