// Package hivetime formats instants the way the HAFAH API and the result
// output expect them. Every formatter derives all calendar fields from UTC;
// the host timezone never leaks into output.
package hivetime

import (
	"strings"
	"time"
)

const (
	queryLayout   = "2006-01-02 15:04:05"
	displayLayout = "2006-01-02 15:04:05 UTC"
	humanLayout   = "Jan 2, 2006 15:04 UTC"
)

// FormatQuery formats an instant as a HAFAH from/to bound:
// "YYYY-MM-DD HH:MM:SS" with no zone suffix.
func FormatQuery(t time.Time) string {
	return t.UTC().Format(queryLayout)
}

// FormatDisplay formats an instant for logs and results:
// "YYYY-MM-DD HH:MM:SS UTC".
func FormatDisplay(t time.Time) string {
	return t.UTC().Format(displayLayout)
}

// FormatHuman formats an instant for duration summaries:
// "Mon D, YYYY HH:MM UTC".
func FormatHuman(t time.Time) string {
	return t.UTC().Format(humanLayout)
}

// ParseOperationTimestamp parses a HAFAH operation timestamp. The API
// reports timestamps without a zone marker even though they are UTC, so
// one is appended when absent.
func ParseOperationTimestamp(ts string) (time.Time, error) {
	if !strings.HasSuffix(ts, "Z") {
		ts += "Z"
	}
	return time.Parse(time.RFC3339, ts)
}
