package resolve

import (
	"time"

	"github.com/dustin/go-humanize"
)

const (
	isoUTCLayout   = "2006-01-02T15:04:05.000Z"
	isoLocalLayout = "2006-01-02T15:04:05.000-07:00"
)

// Time is a resolved instant together with the reference "now" it was
// computed against. It is immutable.
type Time struct {
	t   time.Time
	ref time.Time
}

// NewTime returns the resolved instant t, described relative to ref.
func NewTime(t, ref time.Time) Time {
	return Time{t: t, ref: ref}
}

// Time returns the underlying instant.
func (t Time) Time() time.Time {
	return t.t
}

// Ref returns the reference instant.
func (t Time) Ref() time.Time {
	return t.ref
}

// UnixMilli returns the instant in Unix milliseconds.
func (t Time) UnixMilli() int64 {
	return t.t.UnixMilli()
}

// Unix returns the instant in Unix seconds.
func (t Time) Unix() int64 {
	return t.t.Unix()
}

// ISO returns the ISO-8601 UTC form, e.g. 2023-02-20T11:20:34.192Z.
func (t Time) ISO() string {
	return t.t.UTC().Format(isoUTCLayout)
}

// ISOLocal returns the ISO-8601 form in the instant's own location, with
// its offset, e.g. 2023-02-20T19:20:34.192+08:00.
func (t Time) ISOLocal() string {
	return t.t.Format(isoLocalLayout)
}

// Record holds the calendar components of an instant.
type Record struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Day         int `json:"day"`
	Hour        int `json:"hour"`
	Minute      int `json:"minute"`
	Second      int `json:"second"`
	Millisecond int `json:"millisecond"`
}

// Record returns the calendar components in the instant's location.
// Months are 1-based.
func (t Time) Record() Record {
	year, month, day := t.t.Date()
	hour, minute, sec := t.t.Clock()
	return Record{
		Year:        year,
		Month:       int(month),
		Day:         day,
		Hour:        hour,
		Minute:      minute,
		Second:      sec,
		Millisecond: t.t.Nanosecond() / int(time.Millisecond),
	}
}

// Components returns the calendar components as
// [year, month, day, hour, minute, second, millisecond].
func (t Time) Components() [7]int {
	r := t.Record()
	return [7]int{r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second, r.Millisecond}
}

// Relative describes the instant relative to the reference, e.g.
// "3 hours ago" or "2 days from now".
func (t Time) Relative() string {
	return humanize.RelTime(t.t, t.ref, "ago", "from now")
}

// ISOWeek returns the ISO 8601 week number.
func (t Time) ISOWeek() int {
	_, week := t.t.ISOWeek()
	return week
}

// DayOfYear returns the day of the year, 1 through 366.
func (t Time) DayOfYear() int {
	return t.t.YearDay()
}

// View is a serializable snapshot of every derived form of a Time.
type View struct {
	UnixMilli  int64  `json:"unixMilli"`
	Unix       int64  `json:"unix"`
	ISO        string `json:"iso"`
	ISOLocal   string `json:"isoLocal"`
	Components [7]int `json:"components"`
	Record     Record `json:"record"`
	Relative   string `json:"relative"`
	ISOWeek    int    `json:"isoWeek"`
	DayOfYear  int    `json:"dayOfYear"`
}

// View returns the snapshot of t.
func (t Time) View() View {
	return View{
		UnixMilli:  t.UnixMilli(),
		Unix:       t.Unix(),
		ISO:        t.ISO(),
		ISOLocal:   t.ISOLocal(),
		Components: t.Components(),
		Record:     t.Record(),
		Relative:   t.Relative(),
		ISOWeek:    t.ISOWeek(),
		DayOfYear:  t.DayOfYear(),
	}
}
