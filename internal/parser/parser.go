package parser

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tahmidriaz/scrubdash/internal/model"
)

// Field delimiter of the source document. Values are not quote-escaped,
// so a delimiter inside a value is unsupported.
const delimiter = ","

// Timestamp layouts tried after the separating space is replaced with a
// date-time delimiter. The collector writes "2006-01-02 15:04:05".
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Parse converts the full source text into events.
//
// The first line is the header; each remaining non-blank line is split on
// the delimiter and trimmed. Short rows and rows with unparseable
// timestamps are dropped without failing the batch. A header missing a
// required column returns a *SchemaError and no events.
//
// Events come back in order of appearance.
func Parse(text string) ([]model.Event, error) {
	lines := strings.Split(text, "\n")

	header, err := resolveHeader(splitRow(lines[0]))
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := splitRow(line)
		if len(row) < header.minFields() {
			slog.Debug("dropping short row", "fields", len(row), "want", header.minFields())
			continue
		}

		raw := row[header.timestamp]
		millis, ok := parseTimestamp(raw)
		if !ok {
			slog.Debug("dropping row with unparseable timestamp", "timestamp", raw)
			continue
		}

		events = append(events, model.Event{
			WorkerName:   row[header.name],
			TimestampRaw: raw,
			DatePart:     datePart(raw),
			EpochMillis:  millis,
		})
	}

	return events, nil
}

// splitRow splits a line on the delimiter and trims each field.
func splitRow(line string) []string {
	fields := strings.Split(line, delimiter)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// parseTimestamp converts a raw timestamp to epoch milliseconds. The
// first space becomes the date-time delimiter, then the known layouts
// are tried in order. Timestamps without a zone are taken as local time.
func parseTimestamp(raw string) (int64, bool) {
	candidate := strings.Replace(raw, " ", "T", 1)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, candidate, time.Local); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// datePart returns the literal substring before the first space. Today
// matching downstream is a string comparison against this value, not a
// calendar operation.
func datePart(raw string) string {
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		return raw[:i]
	}
	return raw
}
