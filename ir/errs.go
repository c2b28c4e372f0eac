package ir

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrPath         = errors.New("path error")
)

// TypeMismatchError is returned by the typed accessors of [Node] when the
// node holds a different type than requested.
type TypeMismatchError struct {
	Want Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrTypeMismatch, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func mismatch(want Type, n *Node) error {
	return &TypeMismatchError{Want: want, Got: n.typ}
}
