package semantic

import (
	"time"

	"github.com/jparise/semtime/internal/calendar"
	"github.com/jparise/semtime/internal/timeparse"
)

// Evaluate computes the instant described by x. Keyword anchors are resolved
// against ref, in ref's location; literal anchors are parsed in ref's
// location. Adjustments are applied strictly in order.
func Evaluate(x Expression, ref time.Time) (time.Time, error) {
	t, err := x.Anchor.Resolve(ref)
	if err != nil {
		return time.Time{}, err
	}

	for _, op := range x.Ops {
		t = op.Apply(t)
	}

	return t, nil
}

// Eval parses and evaluates expr against ref.
func Eval(expr string, ref time.Time) (time.Time, error) {
	x, err := Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return Evaluate(x, ref)
}

// Resolve returns the anchor's base instant. Day anchors snap to the start
// of the day; now does not snap.
func (a Anchor) Resolve(ref time.Time) (time.Time, error) {
	switch a.Kind {
	case Now:
		return ref, nil
	case Today:
		return calendar.StartOf(ref, calendar.Day), nil
	case Tomorrow:
		return calendar.Add(calendar.StartOf(ref, calendar.Day), calendar.Day, 1), nil
	case Yesterday:
		return calendar.Add(calendar.StartOf(ref, calendar.Day), calendar.Day, -1), nil
	case BeforeYesterday:
		return calendar.Add(calendar.StartOf(ref, calendar.Day), calendar.Day, -2), nil
	case Literal:
		t, err := timeparse.ParseDate(a.Literal, ref.Location())
		if err != nil {
			return time.Time{}, &InvalidAnchorLiteralError{Literal: a.Literal, Err: err}
		}
		return t, nil
	default:
		return time.Time{}, &UnknownAnchorError{Token: a.String()}
	}
}

// Apply returns t with the adjustment applied.
func (op Op) Apply(t time.Time) time.Time {
	switch op.Kind {
	case Assign:
		return calendar.Set(t, op.Unit, op.Value)
	case Delta:
		return calendar.Add(t, op.Unit, op.Value)
	case Boundary:
		return calendar.Snap(t, op.Unit, op.Edge)
	default:
		return t
	}
}
