package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/repository/sheets"
	"github.com/mamadbah2/inventory/internal/scheduler"
	"github.com/mamadbah2/inventory/internal/server/handlers"
	"github.com/mamadbah2/inventory/internal/server/router"
	"github.com/mamadbah2/inventory/internal/service/alerting"
	commandsvc "github.com/mamadbah2/inventory/internal/service/commands"
	reportingsvc "github.com/mamadbah2/inventory/internal/service/reporting"
	"github.com/mamadbah2/inventory/pkg/clients/webhook"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP and run scheduled low-stock checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	cfg := a.cfg
	baseLogger := a.logger

	if err := a.store.Load(context.Background(), a.repo); err != nil {
		baseLogger.Error("failed to load inventory", zap.Error(err))
		return err
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Error("failed to init sheets repository", zap.Error(err))
			return err
		}
		sheetsRepo = repo
	}

	var alertClient webhook.Client
	if cfg.Alerts.WebhookURL != "" {
		alertClient = webhook.NewClient(cfg.Alerts)
		baseLogger.Info("low stock webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, low stock alerts will only be logged")
	}

	var recorder alerting.Recorder
	if a.mongo != nil {
		recorder = a.mongo
	}

	threshold := cfg.Inventory.LowStockThreshold
	reportingSvc := reportingsvc.NewService(a.store, sheetsRepo, baseLogger.Named("svc.reporting"))
	alertSvc := alerting.NewService(a.store, alertClient, recorder, threshold, baseLogger.Named("svc.alerting"))
	dispatcher := commandsvc.NewService(a.store, a.repo, reportingSvc, threshold, baseLogger.Named("svc.commands"))
	handler := handlers.NewInventoryHandler(a.store, a.repo, dispatcher, reportingSvc, threshold, baseLogger.Named("handlers.inventory"))
	engine := router.New(handler, baseLogger.Named("router"))

	var exporter scheduler.SheetExporter
	if sheetsRepo != nil {
		exporter = reportingSvc
	}
	sched := scheduler.NewScheduler(cfg.Schedule, a.store, a.repo, alertSvc, exporter, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Error("failed to start scheduler", zap.Error(err))
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		baseLogger.Error("http server crashed", zap.Error(err))
		return err
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := a.store.Save(shutdownCtx, a.repo); err != nil {
		baseLogger.Error("failed to save inventory on shutdown", zap.Error(err))
		return err
	}
	return nil
}
