package reporting

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	repo "github.com/mamadbah2/inventory/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	inventoryRange   = "Inventory!A:C"
	reportHeader     = "Items Report"
	reportLineFormat = "%s -> %d\n"
)

// StockReader is the read side of the inventory store.
type StockReader interface {
	Items() []models.StockItem
	LowItems(threshold int) []string
}

// Service renders inventory reports and optionally exports them to Google Sheets.
type Service struct {
	stock  StockReader
	sheets repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. sheets may be nil, in
// which case exports are skipped.
func NewService(stock StockReader, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stock: stock, sheets: sheets, logger: logger, now: time.Now}
}

// WriteReport writes the header line followed by one "item -> qty" line per item.
func WriteReport(w io.Writer, items []models.StockItem) error {
	if _, err := fmt.Fprintln(w, reportHeader); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, reportLineFormat, item.Name, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Report returns the current items report as text.
func (s *Service) Report() string {
	var b strings.Builder
	_ = WriteReport(&b, s.stock.Items())
	return b.String()
}

// LowStockSummary describes the items below threshold in one sentence.
func (s *Service) LowStockSummary(threshold int) string {
	low := s.stock.LowItems(threshold)
	if len(low) == 0 {
		return fmt.Sprintf("No items below %d.", threshold)
	}
	return fmt.Sprintf("%d item(s) below %d: %s.", len(low), threshold, strings.Join(low, ", "))
}

// ExportToSheet appends one dated row per item to the inventory sheet.
func (s *Service) ExportToSheet(ctx context.Context) error {
	if s.sheets == nil {
		s.logger.Debug("sheet export skipped, no spreadsheet configured")
		return nil
	}

	items := s.stock.Items()
	date := s.now().Format(dateLayout)
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{date, item.Name, item.Quantity})
	}

	if err := s.sheets.WriteRows(ctx, inventoryRange, rows); err != nil {
		return fmt.Errorf("export inventory to sheet: %w", err)
	}

	s.logger.Info("inventory exported to sheet", zap.Int("rows", len(rows)))
	return nil
}
