package parse

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// Error is a syntax error in a source.  Line and Col are 1-based.
type Error struct {
	Label string
	Msg   string
	Off   int
	Line  int
	Col   int
}

func (e *Error) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Label, e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error {
	return ErrParse
}
