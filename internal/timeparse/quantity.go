// Package timeparse provides the date, timestamp and unit-quantity parsing
// used to classify and resolve time values.
package timeparse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jparise/semtime/internal/calendar"
)

// ParseQuantity parses an unsigned "<integer><unit>" pair such as "3h",
// "15ms" or "2M". Units are case-sensitive (see calendar.Unit).
func ParseQuantity(s string) (int, calendar.Unit, error) {
	if s == "" {
		return 0, "", fmt.Errorf("empty quantity")
	}

	// Find where the unit starts (first non-digit)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}

	if i == 0 {
		return 0, "", fmt.Errorf("invalid quantity %q: missing number", s)
	}
	if i == len(s) {
		return 0, "", fmt.Errorf("invalid quantity %q: missing unit", s)
	}

	numStr := s[:i]
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil || num > math.MaxInt32 {
		return 0, "", fmt.Errorf("invalid quantity %q: value too large", s)
	}

	unitStr := s[i:]
	unit, ok := calendar.ParseUnit(unitStr)
	if !ok {
		return 0, "", fmt.Errorf("invalid quantity %q: unknown unit %q", s, unitStr)
	}

	// Check for overflow: num * unit must fit in time.Duration (int64)
	if d, ok := unit.Duration(); ok && num > math.MaxInt64/int64(d) {
		return 0, "", fmt.Errorf("invalid quantity %q: value too large", s)
	}

	return int(num), unit, nil
}
