package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"clientListWebsite/internal/models"
)

// Expected column order of a client sheet.
const (
	colID = iota
	colName
	colEmail
	colType
	colStatus
	colCreatedAt
	colUpdatedAt
	columnCount
)

var sheetTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SheetsSource reads clients from a Google Sheet, one client per row in the
// column order id, name, email, type, status, created at, updated at.
type SheetsSource struct {
	SpreadsheetID string
	Range         string
	// CredentialsJSON is a service account or authorized user key file.
	CredentialsJSON []byte
	// Options are passed to the Sheets client after the credentials.
	Options []option.ClientOption
}

func (s *SheetsSource) Clients(ctx context.Context) ([]models.Client, error) {
	opts := make([]option.ClientOption, 0, len(s.Options)+1)
	if len(s.CredentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, s.CredentialsJSON, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Google credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	opts = append(opts, s.Options...)

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(s.SpreadsheetID, s.Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet: %w", err)
	}

	clients := make([]models.Client, 0, len(resp.Values))
	for i, row := range resp.Values {
		if isBlankRow(row) {
			continue
		}
		c, err := parseClientRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if cellString(cell) != "" {
			return false
		}
	}
	return true
}

func cellString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", cell))
}

func parseClientRow(row []interface{}) (models.Client, error) {
	if len(row) < columnCount {
		return models.Client{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(row))
	}

	c := models.Client{
		ID:     cellString(row[colID]),
		Name:   cellString(row[colName]),
		Email:  cellString(row[colEmail]),
		Type:   models.ClientType(strings.ToLower(cellString(row[colType]))),
		Status: models.ClientStatus(strings.ToLower(cellString(row[colStatus]))),
	}
	if c.ID == "" {
		return models.Client{}, fmt.Errorf("missing client id")
	}
	if !c.Type.IsValid() {
		return models.Client{}, fmt.Errorf("invalid client type %q", c.Type)
	}
	if !c.Status.IsValid() {
		return models.Client{}, fmt.Errorf("invalid client status %q", c.Status)
	}

	var err error
	if c.CreatedAt, err = parseSheetTime(cellString(row[colCreatedAt])); err != nil {
		return models.Client{}, fmt.Errorf("created at: %w", err)
	}
	if c.UpdatedAt, err = parseSheetTime(cellString(row[colUpdatedAt])); err != nil {
		return models.Client{}, fmt.Errorf("updated at: %w", err)
	}
	return c, nil
}

func parseSheetTime(s string) (time.Time, error) {
	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
