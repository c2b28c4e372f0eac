package token

import (
	"unicode/utf8"
)

// EOF is returned by [Scanner.Peek] and [Scanner.Next] at the end of input.
const EOF rune = -1

// Scanner reads runes from a document, keeping track of the current line and
// column.  A Scanner can be rewound to any position it has returned.
type Scanner struct {
	d   []byte
	pos Pos
}

func NewScanner(d []byte) *Scanner {
	return &Scanner{d: d, pos: Pos{Line: 1, Col: 1}}
}

func (s *Scanner) Pos() Pos {
	return s.pos
}

// Reset moves the scanner back to p, which must have been returned by Pos.
func (s *Scanner) Reset(p Pos) {
	s.pos = p
}

func (s *Scanner) EOF() bool {
	return s.pos.Off >= len(s.d)
}

func (s *Scanner) Peek() rune {
	if s.EOF() {
		return EOF
	}
	r, _ := utf8.DecodeRune(s.d[s.pos.Off:])
	return r
}

// BadUTF8 reports whether the next bytes are not valid utf8.
func (s *Scanner) BadUTF8() bool {
	if s.EOF() {
		return false
	}
	r, sz := utf8.DecodeRune(s.d[s.pos.Off:])
	return r == utf8.RuneError && sz == 1
}

// Next consumes and returns the next rune.
func (s *Scanner) Next() rune {
	if s.EOF() {
		return EOF
	}
	r, sz := utf8.DecodeRune(s.d[s.pos.Off:])
	s.pos.Off += sz
	if r == '\n' {
		s.pos.Line++
		s.pos.Col = 1
	} else {
		s.pos.Col++
	}
	return r
}

// Accept consumes r if it is next.
func (s *Scanner) Accept(r rune) bool {
	if s.Peek() != r {
		return false
	}
	s.Next()
	return true
}

// Bytes returns the input between from and the current position.
func (s *Scanner) Bytes(from Pos) []byte {
	return s.d[from.Off:s.pos.Off]
}

func (s *Scanner) commentStart() bool {
	o := s.pos.Off
	return o+1 < len(s.d) && s.d[o] == '*' && s.d[o+1] == '*'
}

// SkipSpace skips white space and comments.
func (s *Scanner) SkipSpace() {
	for !s.EOF() {
		if s.commentStart() {
			s.skipComment()
			continue
		}
		if !IsSpace(s.Peek()) {
			return
		}
		s.Next()
	}
}

func (s *Scanner) skipComment() {
	s.Next()
	s.Next()
	for !s.EOF() {
		switch s.d[s.pos.Off] {
		case '\n':
			s.Next()
			return
		case '}':
			if s.pos.Off+1 == len(s.d) {
				return
			}
		}
		s.Next()
	}
}
