package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/inventory"
)

const jobTimeout = 2 * time.Minute

// AlertChecker raises low-stock alerts.
type AlertChecker interface {
	CheckAndNotify(ctx context.Context) (*models.LowStockAlert, error)
}

// SheetExporter pushes the current inventory to a spreadsheet.
type SheetExporter interface {
	ExportToSheet(ctx context.Context) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	store    *inventory.Store
	repo     inventory.Repository
	alerts   AlertChecker
	exporter SheetExporter
	cfg      config.ScheduleConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter may be nil.
func NewScheduler(cfg config.ScheduleConfig, store *inventory.Store, repo inventory.Repository, alerts AlertChecker, exporter SheetExporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:     c,
		store:    store,
		repo:     repo,
		alerts:   alerts,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("low_stock_cron", s.cfg.LowStockCron),
		zap.String("autosave_cron", s.cfg.AutosaveCron))

	if _, err := s.cron.AddFunc(s.cfg.LowStockCron, s.checkLowStock); err != nil {
		return fmt.Errorf("schedule low stock check: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.AutosaveCron, s.autosave); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) checkLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	alert, err := s.alerts.CheckAndNotify(ctx)
	if err != nil {
		s.logger.Error("low stock check failed", zap.Error(err))
	} else if alert != nil {
		s.logger.Info("low stock check raised alert", zap.String("alert_id", alert.ID), zap.Int("items", len(alert.Items)))
	}

	if s.exporter == nil {
		return
	}
	if err := s.exporter.ExportToSheet(ctx); err != nil {
		s.logger.Error("sheet export failed", zap.Error(err))
	}
}

func (s *Scheduler) autosave() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.store.Save(ctx, s.repo); err != nil {
		s.logger.Error("autosave failed", zap.Error(err))
		return
	}
	s.logger.Debug("autosave completed", zap.Int("items", s.store.Len()))
}
