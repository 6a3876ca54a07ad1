package fetcher

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetSource reads the document out of a Google Sheet, for collectors
// that log straight into a spreadsheet. The fetched range is flattened
// back into delimited text so the parser sees the same document shape as
// the file and HTTP sources: the first row is the header.
//
// Locator form: gsheet://<spreadsheetID>/<range>, e.g.
// gsheet://1KCnvCP_jSmL/Sheet1!A:B
type SheetSource struct {
	spreadsheetID string
	readRange     string
	credentials   string

	once sync.Once
	svc  *sheets.Service
	err  error
}

// NewSheetSource parses a gsheet locator. The credentials path points at
// a service-account JSON key with spreadsheet read access.
func NewSheetSource(locator, credentials string) (*SheetSource, error) {
	rest := strings.TrimPrefix(locator, "gsheet://")
	id, readRange, ok := strings.Cut(rest, "/")
	if !ok || id == "" || readRange == "" {
		return nil, fmt.Errorf("invalid gsheet locator %q: want gsheet://<spreadsheetID>/<range>", locator)
	}
	if credentials == "" {
		return nil, fmt.Errorf("gsheet source requires a credentials file")
	}
	return &SheetSource{
		spreadsheetID: id,
		readRange:     readRange,
		credentials:   credentials,
	}, nil
}

func (s *SheetSource) Describe() string {
	return "gsheet:" + s.spreadsheetID + "/" + s.readRange
}

// Fetch reads the configured range and joins each row with the field
// delimiter. The sheets service is built once, on first use.
func (s *SheetSource) Fetch(ctx context.Context) (string, error) {
	s.once.Do(func() { s.svc, s.err = s.service() })
	if s.err != nil {
		return "", s.err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read sheet range %s: %w", s.readRange, err)
	}

	var b strings.Builder
	for i, row := range resp.Values {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%v", cell)
		}
	}
	return b.String(), nil
}

// service builds the sheets client once. The client outlives any single
// fetch, so it is rooted in the background context rather than a
// per-cycle timeout.
func (s *SheetSource) service() (*sheets.Service, error) {
	raw, err := os.ReadFile(s.credentials)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(raw, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	ctx := context.Background()
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return svc, nil
}
