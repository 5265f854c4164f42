package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"nextgen/adapters/excel"
	"nextgen/adapters/sqlstore"
	"nextgen/app"
	"nextgen/internal"
	"nextgen/internal/config"
	"nextgen/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))

	dataset, err := excel.Load(excel.DefaultSourceConfig(appConfig.Data.File), logger)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(ctx, appConfig.Presets.Driver, appConfig.Presets.DSN)
	if err != nil {
		log.Fatalf("Failed to open preset store: %v", err)
	}
	defer db.Close()

	service := app.NewDashboardService(dataset, logger,
		app.WithPreviewRows(appConfig.Data.PreviewRows),
		app.WithHistogramBins(appConfig.Data.HistogramBins),
	)

	server, err := ui.NewServer(service, sqlstore.NewPresetRepository(db), appConfig.Server, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	httpServer := server.HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting NextGen dashboard on port %s (%d records, presets on %s)",
			appConfig.Server.Port, dataset.Len(), appConfig.Presets.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
