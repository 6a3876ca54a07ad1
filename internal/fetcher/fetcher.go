// Package fetcher retrieves the raw attendance document from its
// configured location. The rest of the pipeline only ever sees the
// document text; retrieval failures come back as plain errors so the
// refresh loop can degrade to a waiting state and try again next cycle.
package fetcher

import (
	"context"
	"fmt"
	"strings"
)

// Source retrieves the full source document text.
type Source interface {
	Fetch(ctx context.Context) (string, error)

	// Describe identifies the source for logs and health output.
	Describe() string
}

// Notifier is implemented by sources that can signal that the document
// changed between scheduled cycles (e.g. the collector rewrote the file).
type Notifier interface {
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// Options carries source-type-specific settings.
type Options struct {
	// CredentialsFile is the service-account JSON used by gsheet sources.
	CredentialsFile string
}

// New picks a Source implementation from the locator:
//
//	https://host/attendance.csv          HTTP(S) fetch with retries
//	gsheet://<spreadsheetID>/<range>     Google Sheets range read
//	/var/collector/attendance-*.csv      newest file matching the pattern
func New(locator string, opts Options) (Source, error) {
	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return NewHTTPSource(locator), nil

	case strings.HasPrefix(locator, "gsheet://"):
		return NewSheetSource(locator, opts.CredentialsFile)

	case locator == "":
		return nil, fmt.Errorf("empty source locator")

	default:
		return NewFileSource(locator)
	}
}
