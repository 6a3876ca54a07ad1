package parser

import (
	"fmt"
	"strings"
)

// Logical fields the source document must provide. Matching is a
// case-insensitive substring test against the column labels, so headers
// like "Worker Name" or "Event Timestamp" resolve in any column order.
const (
	fieldName      = "name"
	fieldTimestamp = "timestamp"
)

// SchemaError reports a header row missing a required logical column.
// It aborts the whole parse: a bad header is a document-level failure,
// not a per-row one.
type SchemaError struct {
	Missing string   // logical field that failed to resolve
	Labels  []string // the labels that were searched
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no column label contains %q (header: %s)", e.Missing, strings.Join(e.Labels, ", "))
}

// headerMap maps logical fields to zero-based column indices.
type headerMap struct {
	name      int
	timestamp int
}

// minFields is the lowest field count a row needs to be usable.
func (h headerMap) minFields() int {
	if h.name > h.timestamp {
		return h.name + 1
	}
	return h.timestamp + 1
}

// resolveHeader maps the logical fields onto the first row's labels.
func resolveHeader(labels []string) (headerMap, error) {
	name, err := resolveColumn(labels, fieldName)
	if err != nil {
		return headerMap{}, err
	}
	ts, err := resolveColumn(labels, fieldTimestamp)
	if err != nil {
		return headerMap{}, err
	}
	return headerMap{name: name, timestamp: ts}, nil
}

// resolveColumn returns the index of the first label containing key.
func resolveColumn(labels []string, key string) (int, error) {
	for i, label := range labels {
		if strings.Contains(strings.ToLower(strings.TrimSpace(label)), key) {
			return i, nil
		}
	}
	return 0, &SchemaError{Missing: key, Labels: labels}
}
