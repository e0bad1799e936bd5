package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Cargo timestamps come back in several shapes, usually without an offset.
// Policy: a timestamp with no explicit offset is interpreted as UTC.
var bareLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a feed timestamp. Fixtures whose timestamps fail
// to parse are dropped from reconciliation, so this never guesses.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range bareLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
