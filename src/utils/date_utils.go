package utils

import (
	"fmt"
	"strings"
	"time"
)

const DefaultDateFormat = "2006-01-02"

var ledgerDateLayouts = []string{
	DefaultDateFormat,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseLedgerDate parses a stored operation date, accepting the plain day
// format and the datetime forms older rows were written with.
func ParseLedgerDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// YearMonth returns the "YYYY-MM" bucket of a stored operation date.
func YearMonth(s string) (string, error) {
	t, err := ParseLedgerDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}
