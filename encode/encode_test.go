package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	obj, err := parse.ParseString(t.Name(), s)
	if err != nil {
		t.Fatal(err)
	}
	return ir.FromObject(obj)
}

func TestEncodeJSON(t *testing.T) {
	n := mustParse(t, `z: 1, a: [1.5, "x"], o: {}, e: [], b: {c: null, d: true}`)
	got := MustString(n)
	want := `{
  "z": 1,
  "a": [
    1.5,
    "x"
  ],
  "o": {},
  "e": [],
  "b": {
    "c": null,
    "d": true
  }
}
`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	compact := MustString(n, EncodeIndent(0))
	if compact != `{"z":1,"a":[1.5,"x"],"o":{},"e":[],"b":{"c":null,"d":true}}`+"\n" {
		t.Errorf("compact: %s", compact)
	}
	back, err := ir.FromJSON([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, n) {
		t.Errorf("round trip: %s", back)
	}
}

func TestEncodeYAML(t *testing.T) {
	n := mustParse(t, `name: "city", size: 3, tags: ["a", "b"], nested: {ok: true}`)
	buf := &bytes.Buffer{}
	if err := Encode(n, buf, EncodeFormat(YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"name: city", "size: 3", "ok: true", "- a", "- b"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in\n%s", s, out)
		}
	}
	if i, j := strings.Index(out, "name:"), strings.Index(out, "nested:"); i < 0 || j < i {
		t.Errorf("order lost:\n%s", out)
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	c.Map = map[ColorAttr]func(string, ...any) string{
		FieldColor: func(s string, _ ...any) string { return "<" + s + ">" },
	}
	got := MustString(mustParse(t, `a: 1`), EncodeColors(c), EncodeIndent(0))
	if got != `{<"a">:1}`+"\n" {
		t.Errorf("got %s", got)
	}
	var nilColors *Colors
	if nilColors.Color(ErrorColor, "x") != "x" {
		t.Error("nil colors should not color")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"j", "json", "y", "yaml"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(f.String(), s[:1]) {
			t.Errorf("%s parsed as %s", s, f)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
	if FormatSuffix(YAMLFormat) != ".yaml" {
		t.Error("suffix")
	}
}
