package token

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Pos is a position in a document.  Line and Col are 1-based, Col counts
// runes.
type Pos struct {
	Off  int
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Doc indexes the lines of a document for translating between offsets and
// positions.
type Doc struct {
	d []byte
	n []int
}

func NewDoc(d []byte) *Doc {
	doc := &Doc{d: d}
	for i, c := range d {
		if c == '\n' {
			doc.n = append(doc.n, i)
		}
	}
	return doc
}

// Pos returns the position of byte offset off.
func (doc *Doc) Pos(off int) Pos {
	off = max(0, min(off, len(doc.d)))
	li := sort.SearchInts(doc.n, off)
	start := 0
	if li > 0 {
		start = doc.n[li-1] + 1
	}
	return Pos{
		Off:  off,
		Line: li + 1,
		Col:  utf8.RuneCount(doc.d[start:off]) + 1,
	}
}

// Line returns the text of 1-based line ln without its newline, or nil if
// there is no such line.
func (doc *Doc) Line(ln int) []byte {
	if ln < 1 || ln > len(doc.n)+1 {
		return nil
	}
	start := 0
	if ln > 1 {
		start = doc.n[ln-2] + 1
	}
	end := len(doc.d)
	if ln <= len(doc.n) {
		end = doc.n[ln-1]
	}
	return doc.d[start:end]
}

// Offset returns the byte offset of 1-based line ln and rune column col,
// clamped to the line.
func (doc *Doc) Offset(ln, col int) int {
	if ln < 1 {
		return 0
	}
	if ln > len(doc.n)+1 {
		return len(doc.d)
	}
	start := 0
	if ln > 1 {
		start = doc.n[ln-2] + 1
	}
	line := doc.Line(ln)
	off := 0
	for c := 1; c < col && off < len(line); c++ {
		_, sz := utf8.DecodeRune(line[off:])
		off += sz
	}
	return start + off
}
