package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
	"github.com/signadot/layer-format/go-layer/token"
)

// Parse parses the document d.  label names the source in errors.
func Parse(label string, d []byte, opts ...ParseOption) (*ir.Object, error) {
	pOpts := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{
		s:     token.NewScanner(d),
		label: label,
		opts:  pOpts,
	}
	obj, err := p.document()
	if err != nil {
		if debug.Parse() {
			debug.Logf("parse %s: %v\n", label, err)
		}
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parse %s: %d top level keys\n", label, obj.Len())
	}
	return obj, nil
}

func ParseString(label, s string, opts ...ParseOption) (*ir.Object, error) {
	return Parse(label, []byte(s), opts...)
}

type parser struct {
	s     *token.Scanner
	label string
	opts  *parseOpts
	depth int
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) error {
	return &Error{
		Label: p.label,
		Msg:   fmt.Sprintf(format, args...),
		Off:   pos.Off,
		Line:  pos.Line,
		Col:   pos.Col,
	}
}

func (p *parser) errHere(format string, args ...any) error {
	return p.errorf(p.s.Pos(), format, args...)
}

func (p *parser) document() (*ir.Object, error) {
	s := p.s
	s.SkipSpace()
	braced := s.Accept('{')
	obj, err := p.object(braced, "", strategy.Replace)
	if err != nil {
		return nil, err
	}
	s.SkipSpace()
	if braced {
		if s.Peek() != '}' {
			return nil, p.errHere("expected '}' at the end of the document")
		}
		s.Next()
	}
	s.SkipSpace()
	if !s.EOF() {
		return nil, p.errHere("unexpected characters after the end of the document")
	}
	return obj, nil
}

// object parses entries up to, but not including, a closing '}' when braced
// or up to the end of input otherwise.
func (p *parser) object(braced bool, path string, inherited strategy.Strategy) (*ir.Object, error) {
	s := p.s
	obj := ir.NewObject()
	for {
		s.SkipSpace()
		switch s.Peek() {
		case '}':
			if braced {
				return obj, nil
			}
			return nil, p.errHere("unexpected character '}'")
		case token.EOF:
			return obj, nil
		}
		kPos := s.Pos()
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		kEnd := s.Pos()
		s.SkipSpace()
		if !s.Accept(':') {
			return nil, p.errHere("expected ':' after key %q", key.String())
		}
		eff := strategy.Effective(key.Strategy, inherited)
		vPath := ir.JoinField(path, key.Name)
		vPos := p.skipToValue()
		v, err := p.value(vPath, eff, false)
		if err != nil {
			return nil, err
		}
		obj.Put(key, v)
		p.entry(vPath, key, eff, kPos, kEnd, v, vPos)
		s.SkipSpace()
		s.Accept(',')
	}
}

func (p *parser) skipToValue() token.Pos {
	p.s.SkipSpace()
	return p.s.Pos()
}

func (p *parser) entry(path string, key ir.Key, eff strategy.Strategy, kPos, kEnd token.Pos, v *ir.Node, vPos token.Pos) {
	if p.opts.entries == nil {
		return
	}
	*p.opts.entries = append(*p.opts.entries, Entry{
		Path:      path,
		Key:       key,
		Effective: eff,
		KeyPos:    kPos,
		KeyEnd:    kEnd,
		Value:     v,
		ValuePos:  vPos,
		ValueEnd:  p.s.Pos(),
	})
}

func (p *parser) key() (ir.Key, error) {
	s := p.s
	var st strategy.Strategy
	switch s.Peek() {
	case '#':
		s.Next()
		st = strategy.Overlay
		if s.Accept('#') {
			st = strategy.OverlayTruncate
		}
	case '=', '<', '>', '!':
		st, _ = strategy.Parse(string(s.Next()))
	}
	start := s.Pos()
	c := s.Peek()
	var name string
	switch {
	case c == '"':
		str, err := p.str()
		if err != nil {
			return ir.Key{}, err
		}
		if strings.TrimSpace(str) == "" {
			return ir.Key{}, p.errorf(start, "key cannot be empty")
		}
		name = str
	case token.IsKeyStart(c):
		for token.IsKeyChar(s.Peek()) {
			s.Next()
		}
		name = string(s.Bytes(start))
	case c == token.EOF:
		return ir.Key{}, p.errHere("unexpected end of input, expected key")
	default:
		return ir.Key{}, p.errHere("expected key, got %q", c)
	}
	return ir.Key{Name: name, Strategy: st}, nil
}

func (p *parser) value(path string, eff strategy.Strategy, inArray bool) (*ir.Node, error) {
	s := p.s
	s.SkipSpace()
	pos := s.Pos()
	var (
		n   *ir.Node
		err error
	)
	switch c := s.Peek(); {
	case c == '"':
		var str string
		str, err = p.str()
		n = ir.FromString(str)
	case c == '{':
		n, err = p.nested(path, eff)
	case c == '[':
		n, err = p.array(path, eff)
	case c == 't':
		err = p.expect("true")
		n = ir.FromBool(true)
	case c == 'f':
		err = p.expect("false")
		n = ir.FromBool(false)
	case c == 'n':
		err = p.expect("null")
		n = ir.Null()
	case c == '-' || token.IsDigit(c):
		n, err = p.number()
	case c == '#':
		if !inArray {
			return nil, p.errHere("overlay placeholder '#' is only allowed in arrays")
		}
		s.Next()
		if c := s.Peek(); c == '"' || token.IsKeyStart(c) {
			return nil, p.errHere("unexpected %q after overlay placeholder '#'", c)
		}
		n = ir.Overlay()
	case c == token.EOF:
		return nil, p.errHere("unexpected end of input, expected a value")
	default:
		return nil, p.errHere("unexpected character %q", c)
	}
	if err != nil {
		return nil, err
	}
	p.trackPos(n, pos)
	return n, nil
}

func (p *parser) trackPos(n *ir.Node, pos token.Pos) {
	if p.opts.positions != nil {
		p.opts.positions[n] = pos
	}
}

func (p *parser) push() error {
	p.depth++
	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return p.errHere("nesting deeper than %d", p.opts.maxDepth)
	}
	return nil
}

func (p *parser) pop() {
	p.depth--
}

func (p *parser) nested(path string, eff strategy.Strategy) (*ir.Node, error) {
	s := p.s
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()
	s.Next()
	obj, err := p.object(true, path, eff)
	if err != nil {
		return nil, err
	}
	if !s.Accept('}') {
		return nil, p.errHere("expected '}' at the end of object")
	}
	return ir.FromObject(obj), nil
}

func (p *parser) array(path string, eff strategy.Strategy) (*ir.Node, error) {
	s := p.s
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()
	s.Next()
	vs := []*ir.Node{}
	for {
		s.SkipSpace()
		switch s.Peek() {
		case ']':
			s.Next()
			return ir.FromList(vs), nil
		case '}':
			return nil, p.errHere("expected closing ']' before '}'")
		case token.EOF:
			return nil, p.errHere("expected ']' before end of input")
		}
		elt, err := p.element(ir.JoinIndex(path, len(vs)), eff)
		if err != nil {
			return nil, err
		}
		vs = append(vs, elt)
		s.SkipSpace()
		s.Accept(',')
	}
}

// element parses an array element, which is either a value or a labeled
// value 'key: value'.
func (p *parser) element(path string, eff strategy.Strategy) (*ir.Node, error) {
	s := p.s
	mark := s.Pos()
	c := s.Peek()
	if c == '"' || token.IsKeyStart(c) {
		key, err := p.key()
		if err == nil {
			kEnd := s.Pos()
			s.SkipSpace()
			if s.Accept(':') {
				vPos := p.skipToValue()
				v, err := p.value(path, eff, true)
				if err != nil {
					return nil, err
				}
				v = v.WithLabel(key)
				p.trackPos(v, vPos)
				p.entry(path, key, eff, mark, kEnd, v, vPos)
				return v, nil
			}
		}
		s.Reset(mark)
	}
	return p.value(path, eff, true)
}

func (p *parser) expect(word string) error {
	s := p.s
	for _, r := range word {
		if s.EOF() || s.Next() != r {
			return p.errHere("expected '%s'", word)
		}
	}
	return nil
}

func (p *parser) digits() {
	for token.IsDigit(p.s.Peek()) {
		p.s.Next()
	}
}

func (p *parser) number() (*ir.Node, error) {
	s := p.s
	start := s.Pos()
	s.Accept('-')
	if !token.IsDigit(s.Peek()) {
		return nil, p.errHere("expected digit")
	}
	p.digits()
	isFloat := false
	if s.Accept('.') {
		isFloat = true
		if !token.IsDigit(s.Peek()) {
			return nil, p.errHere("expected digit after decimal point")
		}
		p.digits()
	}
	if c := s.Peek(); c == 'e' || c == 'E' {
		isFloat = true
		s.Next()
		if c := s.Peek(); c == '+' || c == '-' {
			s.Next()
		}
		if !token.IsDigit(s.Peek()) {
			return nil, p.errHere("expected digit in exponent")
		}
		p.digits()
	}
	text := string(s.Bytes(start))
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf(start, "invalid number %s", text)
		}
		return ir.FromFloat(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf(start, "integer %s does not fit in 64 bits", text)
	}
	return ir.FromInt(i), nil
}

func (p *parser) str() (string, error) {
	s := p.s
	s.Next()
	b := &strings.Builder{}
	for {
		if s.EOF() {
			return "", p.errHere("unterminated string")
		}
		if s.BadUTF8() {
			return "", p.errHere("%v in string", token.ErrBadUTF8)
		}
		switch c := s.Next(); c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.EOF() {
				return "", p.errHere("unexpected end of input inside string")
			}
			switch e := s.Next(); e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(e)
			}
		default:
			b.WriteRune(c)
		}
	}
}
