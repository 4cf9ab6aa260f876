package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// FallbackLayouts are tried in order, after the flexible parser, for dates
// written with CJK date markers. The AM/PM marker may also be written as
// 上午/下午.
var FallbackLayouts = []string{
	"2006年1月2日",
	"2006年1月2日 15:04",
	"2006年1月2日 PM3:04",
	"15:04 2006年1月2日",
	"PM3:04 2006年1月2日",
}

var meridiem = strings.NewReplacer("上午", "AM", "下午", "PM")

// ParseDate parses a date/time string in loc, the way a user would type it.
// It first tries the flexible parser and then each of the FallbackLayouts.
// Strings that carry their own zone or offset keep it.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	if t, err := ParseFlexible(s, loc); err == nil {
		return t, nil
	}

	if t, err := ParseFallback(s, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseFlexible parses s with the format-detecting parser.
func ParseFlexible(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseFallback parses s against each of the FallbackLayouts in order and
// returns the first match.
func ParseFallback(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	normalized := meridiem.Replace(s)
	var errs []error
	for _, layout := range FallbackLayouts {
		t, err := time.ParseInLocation(layout, normalized, loc)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}

	return time.Time{}, fmt.Errorf("invalid date %q: %w", s, errors.Join(errs...))
}
