package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mauv0809/asset-ranking/internal/db"
	"github.com/mauv0809/asset-ranking/internal/handlers"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		records, closeSource, err := loadRecords(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		h := handlers.New(records, handlers.Options{
			Title: cfg.Dashboard.Title,
			Unit:  cfg.Dashboard.Unit,
			TopN:  cfg.Dashboard.TopN,
		})

		// Admin ingestion needs a database
		var ingestHandler *handlers.IngestHandler
		if cfg.Database.URL != "" {
			pool, err := connectDB(ctx, cfg.Database.URL)
			if err != nil {
				zap.L().Warn("database unavailable, ingestion endpoints disabled", zap.Error(err))
			} else {
				defer pool.Close()
				ingestHandler = handlers.NewIngestHandler(xlsxSource(cfg), db.NewRepository(pool))
				zap.L().Info("ingestion endpoints registered")
			}
		}

		e := handlers.NewServer(h, ingestHandler)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = e.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.Int("records", len(records)))
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
