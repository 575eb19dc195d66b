package sheets

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/feedration/internal/config"
	"github.com/mamadbah2/feedration/internal/domain/models"
)

// LedgerRange is where ledger rows are appended.
const LedgerRange = "Rations!A:J"

// Ledger mirrors saved rations into an append-only log.
type Ledger interface {
	AppendRecord(ctx context.Context, record models.SavedRecord, breedName string) error
}

// GoogleSheetRepository implements Ledger using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	location      *time.Location
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed ledger. Extra client options
// are appended after the credentials file option.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, loc *time.Location, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		location:      loc,
		logger:        logger,
	}, nil
}

// AppendRecord writes a one-line summary of a saved ration.
func (r *GoogleSheetRepository) AppendRecord(ctx context.Context, record models.SavedRecord, breedName string) error {
	values := []interface{}{
		time.UnixMilli(record.Timestamp).In(r.location).Format("2006-01-02 15:04"),
		record.ID,
		string(record.Profile.Category),
		breedName,
		record.Profile.LiveWeightKg,
		record.Profile.DailyGainKg,
		record.QualityScore,
		round2(record.Totals.Cost),
		round2(record.Totals.TotalFreshKg),
		len(record.AdvisoryReports),
	}
	return r.WriteRow(ctx, LedgerRange, values)
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
