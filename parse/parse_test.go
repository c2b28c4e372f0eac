package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
	"github.com/signadot/layer-format/go-layer/token"
)

type parseTest struct {
	in   string
	want string
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: ``, want: `{}`},
		{in: `{}`, want: `{}`},
		{in: `  ** only a comment`, want: `{}`},
		{in: `a: 1`, want: `{a: 1}`},
		{in: `{ a: 1 }`, want: `{a: 1}`},
		{in: `a: 1 b: 2`, want: `{a: 1, b: 2}`},
		{in: `a: 1, b: 2,`, want: `{a: 1, b: 2}`},
		{in: `{a: 1, b: 2,}`, want: `{a: 1, b: 2}`},
		{in: `a: 1, b: 2, a: 3`, want: `{a: 3, b: 2}`},
		{in: `>hp: 20`, want: `{>hp: 20}`},
		{in: `=a: "x"`, want: `{=a: "x"}`},
		{in: `<name: "huge "`, want: `{<name: "huge "}`},
		{in: `!gone: null`, want: `{!gone: null}`},
		{in: `#key: [#, 22]`, want: `{#key: [#, 22]}`},
		{in: `##key: [#, #, 0]`, want: `{##key: [#, #, 0]}`},
		{in: `"quoted key": true`, want: `{quoted key: true}`},
		{in: `#"q": 1`, want: `{#q: 1}`},
		{in: `k-1.x_y¤: 0`, want: `{k-1.x_y¤: 0}`},
		{in: `list: [a: 1, "b": 2, 3]`, want: `{list: [a: 1, b: 2, 3]}`},
		{in: `x: [1 2 3]`, want: `{x: [1, 2, 3]}`},
		{in: `x: [1, 2, 3,]`, want: `{x: [1, 2, 3]}`},
		{in: `x: [true false null "s"]`, want: `{x: [true, false, null, "s"]}`},
		{in: `x: [], y: {}`, want: `{x: [], y: {}}`},
		{in: `a: [[1, #], #]`, want: `{a: [[1, #], #]}`},
		{in: `a: -1.5e3, b: 0.25, c: -7`, want: `{a: -1500, b: 0.25, c: -7}`},
		{in: `s: "a\"b\\c\nd\qe"`, want: `{s: "a\"b\\c\ndqe"}`},
		{in: "a: 1 ** comment\nb: 2", want: `{a: 1, b: 2}`},
		{in: `{ a: 1 ** the rest }`, want: `{a: 1}`},
		{in: "{\n  unit: {\n    >hp: 20\n    stats: { deaths: 1, >kills: 3 }\n  }\n}\n", want: `{unit: {>hp: 20, stats: {deaths: 1, >kills: 3}}}`},
	}
	for _, pt := range pts {
		obj, err := ParseString("test", pt.in)
		if err != nil {
			t.Errorf("%q: %v", pt.in, err)
			continue
		}
		if got := obj.String(); got != pt.want {
			t.Errorf("%q: got %s want %s", pt.in, got, pt.want)
		}
	}
}

func TestTagFidelity(t *testing.T) {
	obj, err := ParseString("", `i: 1, f: 1.0, e: 1e2, s: "1", b: false, n: null, l: [], o: {}`)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]ir.Type{
		"i": ir.IntType,
		"f": ir.FloatType,
		"e": ir.FloatType,
		"s": ir.StringType,
		"b": ir.BoolType,
		"n": ir.NullType,
		"l": ir.ListType,
		"o": ir.ObjectType,
	}
	for k, typ := range want {
		v, ok := obj.Get(k)
		if !ok {
			t.Errorf("missing %s", k)
			continue
		}
		if v.Type() != typ {
			t.Errorf("%s: got %s want %s", k, v.Type(), typ)
		}
	}
	e, _ := obj.Get("e")
	if f, _ := e.AsFloat(); f != 100 {
		t.Errorf("1e2 = %v", f)
	}
	big, err := ParseString("", `x: 9223372036854775807`)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := big.Get("x")
	if i, _ := x.AsInt(); i != 1<<63-1 {
		t.Errorf("got %d", i)
	}
}

func TestLabels(t *testing.T) {
	obj, err := ParseString("", `x: [k: 1, 2, "q k": {a: 1}]`)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := obj.Get("x")
	elts := x.Elems()
	if len(elts) != 3 {
		t.Fatalf("got %s", x)
	}
	if k, ok := elts[0].Label(); !ok || k.Name != "k" {
		t.Errorf("label %v %v", k, ok)
	}
	if _, ok := elts[1].Label(); ok {
		t.Error("unexpected label")
	}
	if k, _ := elts[2].Label(); k.Name != "q k" || elts[2].Type() != ir.ObjectType {
		t.Errorf("got %s", elts[2])
	}
}

type errTest struct {
	in        string
	msg       string
	line, col int
}

func TestParseErrors(t *testing.T) {
	ets := []errTest{
		{`a 1`, `expected ':' after key "a"`, 1, 3},
		{`a: 1 }`, `unexpected character '}'`, 1, 6},
		{`{a: 1`, `expected '}' at the end of the document`, 1, 6},
		{`{a: 1} x`, `unexpected characters after the end of the document`, 1, 8},
		{`a: {b: 1`, `expected '}' at the end of object`, 1, 9},
		{`a: [1, 2}`, `expected closing ']' before '}'`, 1, 9},
		{`a: [1, 2`, `expected ']' before end of input`, 1, 9},
		{`a: [#a: 1]`, `unexpected 'a' after overlay placeholder '#'`, 1, 6},
		{`a: [1, #"k": 2]`, `unexpected '"' after overlay placeholder '#'`, 1, 9},
		{`a: "abc`, `unterminated string`, 1, 8},
		{`a: "x\`, `unexpected end of input inside string`, 1, 7},
		{`a: -x`, `expected digit`, 1, 5},
		{`a: 1.`, `expected digit after decimal point`, 1, 6},
		{`a: 1e+`, `expected digit in exponent`, 1, 7},
		{`a: tru`, `expected 'true'`, 1, 7},
		{`a: nope`, `expected 'null'`, 1, 6},
		{`a: #`, `overlay placeholder '#' is only allowed in arrays`, 1, 4},
		{`a: @`, `unexpected character '@'`, 1, 4},
		{`a: 99999999999999999999`, `integer 99999999999999999999 does not fit in 64 bits`, 1, 4},
		{`"": 1`, `key cannot be empty`, 1, 1},
		{`a:`, `unexpected end of input, expected a value`, 1, 3},
		{`a: 1,, b: 2`, `expected key, got ','`, 1, 6},
		{"a: 1\nb: [1,\n  2\n  }", `expected closing ']' before '}'`, 4, 3},
		{"a: 1\n\"b", `unterminated string`, 2, 3},
	}
	for _, et := range ets {
		_, err := ParseString("test", et.in)
		if err == nil {
			t.Errorf("%q: expected error", et.in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: %v is not ErrParse", et.in, err)
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("%q: %T is not *Error", et.in, err)
			continue
		}
		if pe.Msg != et.msg || pe.Line != et.line || pe.Col != et.col {
			t.Errorf("%q: got %d:%d %q want %d:%d %q", et.in, pe.Line, pe.Col, pe.Msg, et.line, et.col, et.msg)
		}
	}
}

func TestErrorString(t *testing.T) {
	_, err := ParseString("mods/a.txt", "a: 1\nb 2")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `mods/a.txt:2:3: expected ':' after key "b"`
	if err.Error() != want {
		t.Errorf("got %q want %q", err.Error(), want)
	}
}

func TestCommentTransparency(t *testing.T) {
	pairs := [][2]string{
		{"a: 1\nb: [1, 2]", "** head\na: 1 ** one\n** between\nb: [ ** open\n1, ** x\n2 ] ** end"},
		{"{a: {b: true}}", "{ ** c\na: ** c\n{b: true ** c\n} ** c\n}"},
		{"{x: 1}", "{x: 1 ** tail}"},
	}
	for _, pr := range pairs {
		plain, err := ParseString("plain", pr[0])
		if err != nil {
			t.Fatal(err)
		}
		commented, err := ParseString("commented", pr[1])
		if err != nil {
			t.Fatalf("%q: %v", pr[1], err)
		}
		if !ir.EqualObjects(plain, commented) {
			t.Errorf("%s != %s", plain, commented)
		}
	}
}

func TestCommaTolerance(t *testing.T) {
	docs := []string{
		`a: 1, b: [1, 2], c: {d: 1, e: 2}`,
		`a: 1 b: [1 2] c: {d: 1 e: 2}`,
		`{a: 1, b: [1, 2,], c: {d: 1, e: 2,},}`,
	}
	var first *ir.Object
	for _, d := range docs {
		obj, err := ParseString("", d)
		if err != nil {
			t.Fatalf("%q: %v", d, err)
		}
		if first == nil {
			first = obj
			continue
		}
		if !ir.EqualObjects(first, obj) {
			t.Errorf("%q: %s != %s", d, obj, first)
		}
	}
}

func TestEntries(t *testing.T) {
	var entries []Entry
	pos := map[*ir.Node]token.Pos{}
	src := "a: 1\nb: {\n  >c: [k: 2]\n}\n"
	_, err := ParseString("", src, ParseEntries(&entries), ParsePositions(pos))
	if err != nil {
		t.Fatal(err)
	}
	byPath := map[string]Entry{}
	for _, e := range entries {
		byPath[e.Path] = e
	}
	if len(byPath) != 4 {
		t.Fatalf("got entries %v", entries)
	}
	a := byPath["a"]
	if a.Effective != strategy.Replace || a.KeyPos.Line != 1 || a.ValuePos.Col != 4 {
		t.Errorf("a: %+v", a)
	}
	c := byPath["b.c"]
	if c.Key.Strategy != strategy.Append || c.Effective != strategy.Append {
		t.Errorf("b.c: %+v", c)
	}
	if c.KeyPos.Line != 3 || c.KeyPos.Col != 3 || c.KeyEnd.Col != 5 {
		t.Errorf("b.c key at %s-%s", c.KeyPos, c.KeyEnd)
	}
	if !c.Contains(3, 4) || c.Contains(2, 4) {
		t.Error("Contains")
	}
	elt := byPath["b.c[0]"]
	if elt.Key.Name != "k" || elt.Effective != strategy.Append {
		t.Errorf("b.c[0]: %+v", elt)
	}
	if p, ok := pos[c.Value]; !ok || p.Line != 3 || p.Col != 7 {
		t.Errorf("position of b.c %v %v", p, ok)
	}
	if b := byPath["b"]; b.Effective != strategy.Replace {
		t.Errorf("b: %+v", b)
	}
}

func TestMaxDepth(t *testing.T) {
	if _, err := ParseString("", `a: [[1]]`, ParseMaxDepth(2)); err != nil {
		t.Fatal(err)
	}
	_, err := ParseString("", `a: [[{b: 1}]]`, ParseMaxDepth(2))
	if err == nil || !strings.Contains(err.Error(), "nesting deeper than 2") {
		t.Errorf("got %v", err)
	}
	deep := strings.Repeat("[", DefaultMaxDepth+1)
	if _, err := ParseString("", "a: "+deep); !errors.Is(err, ErrParse) {
		t.Errorf("got %v", err)
	}
}
