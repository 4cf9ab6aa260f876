// Package semantic parses and evaluates semantic time expressions such as
// "now +3h", "today >d" or "(2023-02-20 19:20:34.192) -1d".
//
// An expression is an anchor followed by adjustments, separated by commas
// and/or whitespace:
//
//	now | today | tomorrow | yesterday | before-yesterday | (<date>)
//	<n><unit>     set the unit's calendar component to n
//	+<n><unit>    add n units
//	-<n><unit>    subtract n units
//	<<unit>       snap to the start of the unit's period
//	><unit>       snap to the end of the unit's period
//
// Units are y, M, d, h, m, s and ms. Adjustments are applied left to right.
package semantic

import (
	"fmt"
	"strings"

	"github.com/jparise/semtime/internal/calendar"
	"github.com/jparise/semtime/internal/timeparse"
)

// Anchor is the base instant of an expression.
type Anchor struct {
	Kind    AnchorKind
	Literal string // date text when Kind is Literal
}

func (a Anchor) String() string {
	if a.Kind == Literal {
		return "(" + a.Literal + ")"
	}
	return a.Kind.String()
}

// OpKind identifies an adjustment.
type OpKind int

const (
	Assign OpKind = iota
	Delta
	Boundary
)

func (k OpKind) String() string {
	switch k {
	case Assign:
		return "assign"
	case Delta:
		return "delta"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Op is a single adjustment applied after the anchor.
type Op struct {
	Kind  OpKind
	Unit  calendar.Unit
	Value int           // Assign: the component value; Delta: the signed quantity
	Edge  calendar.Edge // Boundary only
}

func (op Op) String() string {
	switch op.Kind {
	case Delta:
		return fmt.Sprintf("%+d%s", op.Value, op.Unit)
	case Boundary:
		if op.Edge == calendar.End {
			return ">" + string(op.Unit)
		}
		return "<" + string(op.Unit)
	default:
		return fmt.Sprintf("%d%s", op.Value, op.Unit)
	}
}

// Describe returns a readable explanation of the adjustment.
func (op Op) Describe() string {
	name := op.Unit.Name()
	switch op.Kind {
	case Delta:
		if op.Value < 0 {
			return fmt.Sprintf("subtract %d %s", -op.Value, name)
		}
		return fmt.Sprintf("add %d %s", op.Value, name)
	case Boundary:
		return fmt.Sprintf("snap to %s of %s", op.Edge, name)
	default:
		return fmt.Sprintf("set %s to %d", name, op.Value)
	}
}

// Expression is a parsed semantic time expression.
type Expression struct {
	Anchor Anchor
	Ops    []Op
}

// String returns the canonical, space-separated form of the expression.
func (x Expression) String() string {
	parts := make([]string, 0, len(x.Ops)+1)
	parts = append(parts, x.Anchor.String())
	for _, op := range x.Ops {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

// Parse parses a semantic time expression.
func Parse(expr string) (Expression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Expression{}, ErrEmptyExpression
	}

	var x Expression
	var tokens []Token

	if strings.HasPrefix(expr, "(") {
		end := strings.IndexByte(expr, ')')
		if end < 0 {
			return Expression{}, &UnknownAnchorError{Token: expr}
		}

		literal := strings.TrimSpace(expr[1:end])
		if literal == "" {
			return Expression{}, &UnknownAnchorError{Token: expr[:end+1]}
		}

		x.Anchor = Anchor{Kind: Literal, Literal: literal}
		tokens = tokenizeAt(expr[end+1:], end+1)
	} else {
		tokens = Tokenize(expr)
		if len(tokens) == 0 {
			return Expression{}, ErrEmptyExpression
		}

		kind, n, ok := matchKeyword(tokens)
		if !ok {
			return Expression{}, &UnknownAnchorError{Token: tokens[0].Text}
		}

		x.Anchor = Anchor{Kind: kind}
		tokens = tokens[n:]
	}

	ops, err := parseOps(tokens)
	if err != nil {
		return Expression{}, err
	}
	x.Ops = ops

	return x, nil
}

func parseOps(tokens []Token) ([]Op, error) {
	var ops []Op

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		text := tok.Text

		// A detached sign applies to the following token: "- 1d".
		if text == "+" || text == "-" {
			if i+1 == len(tokens) {
				return nil, &LexError{Token: text, Pos: tok.Pos, Err: fmt.Errorf("missing quantity after sign")}
			}
			i++
			text += tokens[i].Text
		}

		op, err := parseOp(text)
		if err != nil {
			return nil, &LexError{Token: text, Pos: tok.Pos, Err: err}
		}
		ops = append(ops, op)
	}

	return ops, nil
}

func parseOp(text string) (Op, error) {
	switch text[0] {
	case '<', '>':
		unit, ok := calendar.ParseUnit(text[1:])
		if !ok {
			return Op{}, fmt.Errorf("unknown unit %q", text[1:])
		}
		edge := calendar.Start
		if text[0] == '>' {
			edge = calendar.End
		}
		return Op{Kind: Boundary, Unit: unit, Edge: edge}, nil

	case '+', '-':
		n, unit, err := timeparse.ParseQuantity(text[1:])
		if err != nil {
			return Op{}, err
		}
		if text[0] == '-' {
			n = -n
		}
		return Op{Kind: Delta, Unit: unit, Value: n}, nil

	default:
		n, unit, err := timeparse.ParseQuantity(text)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: Assign, Unit: unit, Value: n}, nil
	}
}
