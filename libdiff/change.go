package libdiff

import (
	"fmt"

	"github.com/signadot/layer-format/go-layer/ir"
)

type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
	Changed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

// Sign is the one character prefix used when listing changes.
func (k Kind) Sign() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	case Changed:
		return "~"
	}
	return " "
}

// Change is a difference at Path.  From is nil for additions and To is nil
// for removals.
type Change struct {
	Path string
	Kind Kind
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("%s %s: %s", c.Kind.Sign(), c.Path, c.To)
	case Removed:
		return fmt.Sprintf("%s %s: %s", c.Kind.Sign(), c.Path, c.From)
	}
	return fmt.Sprintf("%s %s: %s -> %s", c.Kind.Sign(), c.Path, c.From, c.To)
}

// Reverse returns the changes going from To back to From.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := Change{Path: c.Path, Kind: c.Kind, From: c.To, To: c.From}
		switch c.Kind {
		case Added:
			r.Kind = Removed
		case Removed:
			r.Kind = Added
		}
		res[i] = r
	}
	return res
}
