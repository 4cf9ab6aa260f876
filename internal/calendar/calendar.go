// Package calendar provides unit-level calendar arithmetic: setting a single
// calendar component, adding signed quantities, and snapping to the start or
// end of the period containing an instant.
package calendar

import (
	"time"

	"github.com/jinzhu/now"
)

// Unit is a calendar or duration granularity. Units are case-sensitive:
// "m" is a minute and "M" is a month.
type Unit string

const (
	Year        Unit = "y"
	Month       Unit = "M"
	Day         Unit = "d"
	Hour        Unit = "h"
	Minute      Unit = "m"
	Second      Unit = "s"
	Millisecond Unit = "ms"
)

// Units lists every supported unit from largest to smallest.
var Units = []Unit{Year, Month, Day, Hour, Minute, Second, Millisecond}

var unitNames = map[Unit]string{
	Year:        "year",
	Month:       "month",
	Day:         "day",
	Hour:        "hour",
	Minute:      "minute",
	Second:      "second",
	Millisecond: "millisecond",
}

// fixed maps the sub-day units to their absolute length.
var fixed = map[Unit]time.Duration{
	Hour:        time.Hour,
	Minute:      time.Minute,
	Second:      time.Second,
	Millisecond: time.Millisecond,
}

// ParseUnit returns the unit spelled exactly as s.
func ParseUnit(s string) (Unit, bool) {
	u := Unit(s)
	_, ok := unitNames[u]
	return u, ok
}

// Name returns the English name of the unit.
func (u Unit) Name() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return "unknown"
}

// Duration returns the absolute length of a sub-day unit. Years, months
// and days vary in length and report false.
func (u Unit) Duration() (time.Duration, bool) {
	d, ok := fixed[u]
	return d, ok
}

// Edge selects the start or the end of a period.
type Edge int

const (
	Start Edge = iota
	End
)

func (e Edge) String() string {
	if e == End {
		return "end"
	}
	return "start"
}

// Set returns t with the unit's calendar component replaced by v. Months are
// 1-based. Out-of-range values are normalized by time.Date, so setting day 30
// in February rolls over into March.
func Set(t time.Time, u Unit, v int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	nsec := t.Nanosecond()

	switch u {
	case Year:
		year = v
	case Month:
		month = time.Month(v)
	case Day:
		day = v
	case Hour:
		hour = v
	case Minute:
		minute = v
	case Second:
		sec = v
	case Millisecond:
		nsec = v*int(time.Millisecond) + nsec%int(time.Millisecond)
	default:
		return t
	}

	return time.Date(year, month, day, hour, minute, sec, nsec, t.Location())
}

// Add returns t shifted by n units. Years, months and days move the calendar
// date (AddDate normalization applies); smaller units add absolute time.
func Add(t time.Time, u Unit, n int) time.Time {
	switch u {
	case Year:
		return t.AddDate(n, 0, 0)
	case Month:
		return t.AddDate(0, n, 0)
	case Day:
		return t.AddDate(0, 0, n)
	}

	if d, ok := u.Duration(); ok {
		return t.Add(time.Duration(n) * d)
	}
	return t
}

// StartOf returns the first instant of the period of unit u containing t.
func StartOf(t time.Time, u Unit) time.Time {
	n := now.With(t)

	switch u {
	case Year:
		return n.BeginningOfYear()
	case Month:
		return n.BeginningOfMonth()
	case Day:
		return n.BeginningOfDay()
	case Hour:
		return n.BeginningOfHour()
	case Minute:
		return n.BeginningOfMinute()
	case Second:
		return t.Truncate(time.Second)
	case Millisecond:
		return t.Truncate(time.Millisecond)
	default:
		return t
	}
}

// EndOf returns the last millisecond of the period of unit u containing t,
// e.g. 23:59:59.999 for a day.
func EndOf(t time.Time, u Unit) time.Time {
	n := now.With(t)

	var end time.Time
	switch u {
	case Year:
		end = n.EndOfYear()
	case Month:
		end = n.EndOfMonth()
	case Day:
		end = n.EndOfDay()
	case Hour:
		end = n.EndOfHour()
	case Minute:
		end = n.EndOfMinute()
	case Second:
		end = t.Truncate(time.Second).Add(time.Second - time.Nanosecond)
	case Millisecond:
		end = t
	default:
		return t
	}

	return end.Truncate(time.Millisecond)
}

// Snap dispatches to StartOf or EndOf.
func Snap(t time.Time, u Unit, e Edge) time.Time {
	if e == End {
		return EndOf(t, u)
	}
	return StartOf(t, u)
}
