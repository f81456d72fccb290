package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/sheets/v4"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// Spreadsheet is a reshaped spreadsheet summary.
type Spreadsheet struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Sheets []string `json:"sheets"`
}

// ValueRangeInput describes cells to write or append.
type ValueRangeInput struct {
	Range  string          `json:"range"`
	Values [][]interface{} `json:"values"`
}

// SheetsService adapts requests to the Google Sheets API.
type SheetsService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewSheetsService creates a sheets adapter.
func NewSheetsService(logger zerolog.Logger) *SheetsService {
	return &SheetsService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceSheets),
		logger:  logger,
	}
}

// CreateSpreadsheet creates a spreadsheet with optional named sheets.
func (s *SheetsService) CreateSpreadsheet(ctx context.Context, rec *domain.CredentialRecord, title string, sheetTitles []string) (*Spreadsheet, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, st := range sheetTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: st},
		})
	}
	created, err := svc.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	out := reshapeSpreadsheet(created)
	return &out, nil
}

// GetSpreadsheet returns spreadsheet metadata.
func (s *SheetsService) GetSpreadsheet(ctx context.Context, rec *domain.CredentialRecord, spreadsheetID string) (*Spreadsheet, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	got, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	out := reshapeSpreadsheet(got)
	return &out, nil
}

// ReadRange reads cell values from a range.
func (s *SheetsService) ReadRange(ctx context.Context, rec *domain.CredentialRecord, spreadsheetID, readRange string) ([][]interface{}, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	return res.Values, nil
}

// WriteRange overwrites cell values in a range.
func (s *SheetsService) WriteRange(ctx context.Context, rec *domain.CredentialRecord, spreadsheetID string, input ValueRangeInput) (int64, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return 0, err
	}
	res, err := svc.Spreadsheets.Values.Update(spreadsheetID, input.Range, &sheets.ValueRange{
		Values: input.Values,
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return 0, googleinfra.WrapError(err)
	}
	return res.UpdatedCells, nil
}

// AppendRows appends rows after the last row of a range.
func (s *SheetsService) AppendRows(ctx context.Context, rec *domain.CredentialRecord, spreadsheetID string, input ValueRangeInput) (int64, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return 0, err
	}
	res, err := svc.Spreadsheets.Values.Append(spreadsheetID, input.Range, &sheets.ValueRange{
		Values: input.Values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, googleinfra.WrapError(err)
	}
	if res.Updates == nil {
		return 0, nil
	}
	return res.Updates.UpdatedCells, nil
}

func (s *SheetsService) service(ctx context.Context, rec *domain.CredentialRecord) (*sheets.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewSheetsService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return svc, nil
}

func reshapeSpreadsheet(sp *sheets.Spreadsheet) Spreadsheet {
	out := Spreadsheet{
		ID:  sp.SpreadsheetId,
		URL: sp.SpreadsheetUrl,
	}
	if sp.Properties != nil {
		out.Title = sp.Properties.Title
	}
	for _, sh := range sp.Sheets {
		if sh.Properties != nil {
			out.Sheets = append(out.Sheets, sh.Properties.Title)
		}
	}
	return out
}
