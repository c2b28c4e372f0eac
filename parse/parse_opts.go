package parse

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
	"github.com/signadot/layer-format/go-layer/token"
)

const DefaultMaxDepth = 512

type parseOpts struct {
	positions map[*ir.Node]token.Pos
	entries   *[]Entry
	maxDepth  int
}

type ParseOption func(*parseOpts)

// ParsePositions records the start of every parsed value in m.
func ParsePositions(m map[*ir.Node]token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseEntries appends an [Entry] for every object entry and labeled array
// element to dst, in document order of their ends.
func ParseEntries(dst *[]Entry) ParseOption {
	return func(o *parseOpts) {
		o.entries = dst
	}
}

// ParseMaxDepth limits the nesting of objects and arrays.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		o.maxDepth = n
	}
}

// Entry describes where a key and its value were found.
type Entry struct {
	// Path is the path of the value, see [ir.ParsePath].
	Path string
	Key  ir.Key
	// Effective is the strategy applied to the value, after inheritance.
	Effective strategy.Strategy
	KeyPos    token.Pos
	KeyEnd    token.Pos
	Value     *ir.Node
	ValuePos  token.Pos
	ValueEnd  token.Pos
}

// Contains reports whether the 1-based position line:col lies within the
// entry's key or value.
func (e *Entry) Contains(line, col int) bool {
	return !before(line, col, e.KeyPos) && before(line, col, e.ValueEnd)
}

func before(line, col int, p token.Pos) bool {
	return line < p.Line || (line == p.Line && col < p.Col)
}
