package semantic

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned when parsing a blank expression.
var ErrEmptyExpression = errors.New("empty expression")

// LexError reports a token that matches none of the adjustment forms.
type LexError struct {
	Token string
	Pos   int // byte offset in the trimmed expression
	Err   error
}

func (e *LexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid token %q at offset %d: %v", e.Token, e.Pos, e.Err)
	}
	return fmt.Sprintf("invalid token %q at offset %d", e.Token, e.Pos)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// UnknownAnchorError reports an expression whose leading term is neither a
// known keyword nor a parenthesized date.
type UnknownAnchorError struct {
	Token string
}

func (e *UnknownAnchorError) Error() string {
	return fmt.Sprintf("unknown anchor %q: expected a keyword such as now or today, or a (date)", e.Token)
}

// InvalidAnchorLiteralError reports a parenthesized anchor whose text is not
// a date.
type InvalidAnchorLiteralError struct {
	Literal string
	Err     error
}

func (e *InvalidAnchorLiteralError) Error() string {
	return fmt.Sprintf("invalid anchor date %q: %v", e.Literal, e.Err)
}

func (e *InvalidAnchorLiteralError) Unwrap() error {
	return e.Err
}
