package datetime

import (
	"fmt"
	"strings"
	"time"

	"clubvenue/internal/domain"
)

var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseLocal parses an ISO-8601 date-time (YYYY-MM-DDTHH:MM, seconds optional).
// Values without an offset are read in loc.
func ParseLocal(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", domain.ErrInvalidDateTime)
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateTime, s)
}

// ParseWindow parses both bounds and requires start <= end.
func ParseWindow(startStr, endStr string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseLocal(startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseLocal(endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s", domain.ErrInvalidDateTime, startStr, endStr)
	}
	return start, end, nil
}

// ParseOptional returns nil for an empty string.
func ParseOptional(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseLocal(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04")
}
