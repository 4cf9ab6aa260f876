// Package resolve classifies free-form time input as a Unix timestamp, a
// date string or a semantic expression, and resolves it to an instant.
package resolve

import (
	"strings"
	"time"

	"github.com/jparise/semtime/internal/semantic"
	"github.com/jparise/semtime/internal/timeparse"
)

// Kind is the classification of an input.
type Kind int

const (
	KindInvalid Kind = iota
	KindTimestamp
	KindDate
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindDate:
		return "date"
	case KindSemantic:
		return "semantic"
	default:
		return "invalid"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is the outcome of resolving one input. Failures are reported in
// Err rather than returned.
type Result struct {
	Input      string
	Kind       Kind
	Time       *Time
	Expression *semantic.Expression // set for KindSemantic
	Err        error
}

// Valid reports whether the input resolved to an instant.
func (r Result) Valid() bool {
	return r.Time != nil
}

// ResultView is the serializable form of a Result.
type ResultView struct {
	Input      string `json:"input"`
	Kind       Kind   `json:"kind"`
	Expression string `json:"expression,omitempty"`
	Time       *View  `json:"time,omitempty"`
	Error      string `json:"error,omitempty"`
}

// View returns the serializable form of r.
func (r Result) View() ResultView {
	v := ResultView{
		Input: r.Input,
		Kind:  r.Kind,
	}
	if r.Expression != nil {
		v.Expression = r.Expression.String()
	}
	if r.Time != nil {
		tv := r.Time.View()
		v.Time = &tv
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}

// Resolver resolves time input. The zero value resolves in the local zone
// against the wall clock and reads digit strings as Unix seconds. A Resolver
// holds no mutable state and is safe for concurrent use.
type Resolver struct {
	// Location is used for date strings without a zone, for keyword anchors
	// and for the calendar views. Nil means time.Local.
	Location *time.Location

	// Now returns the reference instant. Nil means time.Now.
	Now func() time.Time

	// MillisecondTimestamp reads digit strings as Unix milliseconds instead
	// of seconds. See timeparse.LooksLikeMillis for a heuristic.
	MillisecondTimestamp bool
}

func (r Resolver) location() *time.Location {
	if r.Location != nil {
		return r.Location
	}
	return time.Local
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// attempt is one step of the non-timestamp resolution chain.
type attempt struct {
	kind Kind
	run  func(s string, ref time.Time) (time.Time, *semantic.Expression, error)
}

// attempts are tried in order; the first success wins.
var attempts = []attempt{
	{KindDate, func(s string, ref time.Time) (time.Time, *semantic.Expression, error) {
		t, err := timeparse.ParseFlexible(s, ref.Location())
		return t, nil, err
	}},
	{KindDate, func(s string, ref time.Time) (time.Time, *semantic.Expression, error) {
		t, err := timeparse.ParseFallback(s, ref.Location())
		return t, nil, err
	}},
	{KindSemantic, func(s string, ref time.Time) (time.Time, *semantic.Expression, error) {
		x, err := semantic.Parse(s)
		if err != nil {
			return time.Time{}, nil, err
		}
		t, err := semantic.Evaluate(x, ref)
		return t, &x, err
	}},
}

// Resolve classifies input and resolves it to an instant. Digit-only input
// is always a timestamp. Otherwise the input is tried as a date string and
// then as a semantic expression; when everything fails the result is
// KindInvalid and Err holds the semantic parser's message. Blank input is
// KindInvalid with no error.
func (r Resolver) Resolve(input string) Result {
	res := Result{Input: input}

	s := strings.TrimSpace(input)
	if s == "" {
		return res
	}

	// Read the clock once so every view describes the same instant.
	ref := r.now().In(r.location())

	if timeparse.IsDigits(s) {
		res.Kind = KindTimestamp
		t, err := timeparse.ParseTimestamp(s, r.MillisecondTimestamp)
		if err != nil {
			res.Err = err
			return res
		}
		rt := NewTime(t.In(ref.Location()), ref)
		res.Time = &rt
		return res
	}

	var err error
	for _, a := range attempts {
		var t time.Time
		var x *semantic.Expression
		if t, x, err = a.run(s, ref); err == nil {
			rt := NewTime(t.In(ref.Location()), ref)
			res.Kind = a.kind
			res.Time = &rt
			res.Expression = x
			return res
		}
	}

	res.Err = err
	return res
}
