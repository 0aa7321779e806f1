package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/inventory/internal/config"
)

// Repository appends rows to a spreadsheet.
type Repository interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	return newRepository(ctx, cfg.SpreadsheetID, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
}

func newRepository(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRows appends the provided rows to the supplied sheet range in one call.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}
