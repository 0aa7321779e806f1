package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/pkg/clients/webhook"
)

// StockReader exposes the items the alert is computed from.
type StockReader interface {
	Items() []models.StockItem
}

// Recorder keeps a history of raised alerts.
type Recorder interface {
	SaveAlert(ctx context.Context, alert models.LowStockAlert) error
}

// Service raises low-stock alerts.
type Service struct {
	stock     StockReader
	client    webhook.Client
	recorder  Recorder
	threshold int
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the alerting service. client and recorder are optional.
func NewService(stock StockReader, client webhook.Client, recorder Recorder, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stock:     stock,
		client:    client,
		recorder:  recorder,
		threshold: threshold,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckAndNotify builds an alert for items strictly below the threshold and
// delivers it. It returns nil when nothing is low.
func (s *Service) CheckAndNotify(ctx context.Context) (*models.LowStockAlert, error) {
	var low []models.StockItem
	for _, item := range s.stock.Items() {
		if item.Quantity < s.threshold {
			low = append(low, item)
		}
	}
	if len(low) == 0 {
		s.logger.Debug("no low stock items", zap.Int("threshold", s.threshold))
		return nil, nil
	}

	alert := models.LowStockAlert{
		ID:          uuid.NewString(),
		Threshold:   s.threshold,
		Items:       low,
		GeneratedAt: s.now().UTC(),
	}
	s.logger.Warn("low stock detected", zap.String("alert_id", alert.ID), zap.Int("items", len(low)))

	if s.recorder != nil {
		if err := s.recorder.SaveAlert(ctx, alert); err != nil {
			s.logger.Error("failed to record low stock alert", zap.Error(err))
		}
	}

	if s.client == nil {
		return &alert, nil
	}
	if err := s.client.SendLowStockAlert(ctx, alert); err != nil {
		return &alert, fmt.Errorf("deliver alert %s: %w", alert.ID, err)
	}

	s.logger.Info("low stock alert sent", zap.String("alert_id", alert.ID))
	return &alert, nil
}
