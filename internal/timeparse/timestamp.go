package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// millisDigits is the longest digit string still treated as seconds by
// LooksLikeMillis. Ten digits of seconds reach the year 2286.
const millisDigits = 10

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LooksLikeMillis reports whether a digit string is probably already in
// milliseconds. It is a hint for callers choosing the unit; ParseTimestamp
// never applies it on its own.
func LooksLikeMillis(s string) bool {
	return IsDigits(s) && len(s) > millisDigits
}

// ParseTimestamp parses a Unix timestamp made only of digits. When millis is
// false the value is in seconds.
func ParseTimestamp(s string, millis bool) (time.Time, error) {
	if !IsDigits(s) {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: not a number", s)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: value too large", s)
	}

	if !millis {
		if n > math.MaxInt64/1000 {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: value too large", s)
		}
		n *= 1000
	}

	return time.UnixMilli(n), nil
}
