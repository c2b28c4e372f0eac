package mergeop

import (
	"errors"
	"testing"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/parse"
	"github.com/signadot/layer-format/go-layer/strategy"
)

func parseObj(t *testing.T, s string) *ir.Object {
	t.Helper()
	obj, err := parse.ParseString(t.Name(), s)
	if err != nil {
		t.Fatal(err)
	}
	return obj
}

func parseVal(t *testing.T, s string) *ir.Node {
	t.Helper()
	v, _ := parseObj(t, "v: "+s).Get("v")
	return v
}

func getPath(t *testing.T, obj *ir.Object, p string) *ir.Node {
	t.Helper()
	n, err := ir.FromObject(obj).GetPath(p)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

type strategyTest struct {
	sigil string
	// want is the expected value of key, or "" if key is deleted.
	want string
}

func runStrategyTests(t *testing.T, base, patch string, tests []strategyTest) {
	t.Helper()
	for _, tc := range tests {
		b := parseObj(t, "key: "+base)
		p := parseObj(t, tc.sigil+"key: "+patch)
		res := Merge(b, p)
		got, ok := res.Get("key")
		if tc.want == "" {
			if ok {
				t.Errorf("%q: expected key to be deleted, got %s", tc.sigil, got)
			}
			continue
		}
		if !ok {
			t.Errorf("%q: key missing", tc.sigil)
			continue
		}
		want := parseVal(t, tc.want)
		if !ir.Equal(got, want) || got.Type() != want.Type() {
			t.Errorf("%q: got %s (%s) want %s (%s)", tc.sigil, got, got.Type(), want, want.Type())
		}
	}
}

func TestStrings(t *testing.T) {
	runStrategyTests(t, `"value"`, `"new"`, []strategyTest{
		{"", `"new"`},
		{"=", `"new"`},
		{"<", `"newvalue"`},
		{">", `"valuenew"`},
		{"#", `"newue"`},
		{"##", `"new"`},
		{"!", ""},
	})
}

func TestStringOverlayRunes(t *testing.T) {
	runStrategyTests(t, `"ñandú"`, `"ab"`, []strategyTest{
		{"#", `"abndú"`},
	})
	runStrategyTests(t, `"ab"`, `"longer"`, []strategyTest{
		{"#", `"longer"`},
	})
}

func TestStringArrays(t *testing.T) {
	runStrategyTests(t, `["aa", "b", "c", "d", "e"]`, `["A", "b", "CCC", "d"]`, []strategyTest{
		{"", `["A", "b", "CCC", "d"]`},
		{"=", `["A", "b", "CCC", "d"]`},
		{"<", `["A", "b", "CCC", "d", "aa", "b", "c", "d", "e"]`},
		{">", `["aa", "b", "c", "d", "e", "A", "b", "CCC", "d"]`},
		{"#", `["Aa", "b", "CCC", "d", "e"]`},
		{"##", `["Aa", "b", "CCC", "d"]`},
		{"!", ""},
	})
}

func TestInts(t *testing.T) {
	runStrategyTests(t, `1`, `2`, []strategyTest{
		{"", `2`},
		{"=", `2`},
		{"<", `3`},
		{">", `3`},
		{"#", `2`},
		{"##", `2`},
		{"!", ""},
	})
}

func TestIntArrays(t *testing.T) {
	runStrategyTests(t, `[1, 2, 3, 4, 5]`, `[10, 2, 12, 4]`, []strategyTest{
		{"", `[10, 2, 12, 4]`},
		{"=", `[10, 2, 12, 4]`},
		{"<", `[10, 2, 12, 4, 1, 2, 3, 4, 5]`},
		{">", `[1, 2, 3, 4, 5, 10, 2, 12, 4]`},
		{"#", `[10, 2, 12, 4, 5]`},
		{"##", `[10, 2, 12, 4]`},
		{"!", ""},
	})
}

func TestFloats(t *testing.T) {
	runStrategyTests(t, `1.5`, `2.25`, []strategyTest{
		{"", `2.25`},
		{"=", `2.25`},
		{"<", `3.75`},
		{">", `3.75`},
		{"#", `2.25`},
		{"##", `2.25`},
		{"!", ""},
	})
	runStrategyTests(t, `[1.5, 2.5, 3.5]`, `[10.5, 20.5]`, []strategyTest{
		{"#", `[10.5, 20.5, 3.5]`},
		{"##", `[10.5, 20.5]`},
		{">", `[1.5, 2.5, 3.5, 10.5, 20.5]`},
	})
}

func TestBools(t *testing.T) {
	runStrategyTests(t, `false`, `true`, []strategyTest{
		{"", `true`},
		{"=", `true`},
		{"<", `true`},
		{">", `true`},
		{"#", `false`},
		{"##", `false`},
		{"!", ""},
	})
	runStrategyTests(t, `true`, `true`, []strategyTest{
		{"#", `true`},
	})
}

func TestBoolArrays(t *testing.T) {
	runStrategyTests(t, `[false, false, true, true, false]`, `[false, true, false, true]`, []strategyTest{
		{"", `[false, true, false, true]`},
		{"<", `[false, true, false, true, false, false, true, true, false]`},
		{">", `[false, false, true, true, false, false, true, false, true]`},
		{"#", `[false, false, false, true, false]`},
		{"##", `[false, false, false, true]`},
		{"!", ""},
	})
}

func TestDifferingTypes(t *testing.T) {
	runStrategyTests(t, `"1"`, `1`, []strategyTest{
		{">", `1`},
		{"#", `1`},
	})
	runStrategyTests(t, `1`, `1.5`, []strategyTest{
		{">", `1.5`},
	})
	runStrategyTests(t, `{a: 1}`, `[1]`, []strategyTest{
		{"#", `[1]`},
	})
	runStrategyTests(t, `[1, 2]`, `null`, []strategyTest{
		{">", `null`},
	})
}

func TestDeleteAnyType(t *testing.T) {
	for _, base := range []string{`{x: 1}`, `[1]`, `"s"`, `1`, `null`, `true`} {
		res := Merge(parseObj(t, "a: "+base+", b: 1"), parseObj(t, "!a: null"))
		if res.Has("a") {
			t.Errorf("%s: a not deleted", base)
		}
		if !res.Has("b") {
			t.Errorf("%s: b lost", base)
		}
	}
	res := Merge(parseObj(t, "b: 1"), parseObj(t, "!a: 0"))
	if res.Has("a") || res.Len() != 1 {
		t.Errorf("deleting a missing key: %s", res)
	}
}

func TestNumericAccumulation(t *testing.T) {
	base := parseObj(t, `unit: {name: "archer", hp: 100, stats: {deaths: 0, kills: 5}}`)
	patch := parseObj(t, `unit: {>hp: 20, stats: {deaths: 1, >kills: 3}}`)
	res := Merge(base, patch)
	want := parseObj(t, `unit: {name: "archer", hp: 120, stats: {deaths: 1, kills: 8}}`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
}

func TestStringPrependNested(t *testing.T) {
	base := parseObj(t, `unit: {name: "archer", hp: 100}`)
	res := Merge(base, parseObj(t, `unit: {<name: "huge "}`))
	if got := getPath(t, res, "unit.name"); !ir.Equal(got, ir.FromString("huge archer")) {
		t.Errorf("got %s", got)
	}
	if got := getPath(t, res, "unit.hp"); !ir.Equal(got, ir.FromInt(100)) {
		t.Errorf("hp changed: %s", got)
	}
}

func TestArrayOverlay(t *testing.T) {
	tests := []struct {
		base, patch, want string
	}{
		{`key: [1, 2, 3, 4, 5]`, `#key: [#, #, 0]`, `[1, 2, 0, 4, 5]`},
		{`key: [1, 2, 3]`, `#key: [#, 22, #, 44, 5]`, `[1, 22, 3, 44, 5]`},
		{`key: [1, 2, 3, 4, 5]`, `##key: [#, #, 0]`, `[1, 2, 0]`},
		{`key: [1, 2]`, `#key: [#, #, #, #]`, `[1, 2]`},
		{`key: [1, 2]`, `#key: [#, #, #, 4]`, `[1, 2, 4]`},
		{`key: [[1, 2, 3], [4, 5, 6]]`, `#key: [[#, 0], #]`, `[[1, 0, 3], [4, 5, 6]]`},
		{`key: [{a: 1, b: 2}, {a: 3}]`, `#key: [{>a: 10}, #, {c: 1}]`, `[{a: 11, b: 2}, {a: 3}, {c: 1}]`},
		{`key: [1, 2]`, `>key: [#, 3]`, `[1, 2, 3]`},
		{`key: [1, 2]`, `key: [#, 3]`, `[3]`},
	}
	for _, tc := range tests {
		res := Merge(parseObj(t, tc.base), parseObj(t, tc.patch))
		got, _ := res.Get("key")
		if want := parseVal(t, tc.want); !ir.Equal(got, want) {
			t.Errorf("%s over %s: got %s want %s", tc.patch, tc.base, got, want)
		}
		if err := Validate(res); err != nil {
			t.Errorf("%s over %s: %v", tc.patch, tc.base, err)
		}
	}
}

func TestMixedStrategies(t *testing.T) {
	base := parseObj(t, `
settings: {
	name: "City"
	enabled: true
	limits: [10, 20, 30]
	tags: ["a", "b"]
}`)
	patch := parseObj(t, `
#settings: {
	enabled: false
	#limits: [#, 999]
	>tags: ["c"]
}`)
	res := Merge(base, patch)
	want := parseObj(t, `settings: {name: "City", enabled: false, limits: [10, 999, 30], tags: ["a", "b", "c"]}`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
}

func TestInheritance(t *testing.T) {
	base := parseObj(t, `a: {n: 1, s: "x", inner: {m: 2}}`)
	res := Merge(base, parseObj(t, `>a: {n: 1, s: "y", inner: {m: 3, =fresh: 1}}`))
	want := parseObj(t, `a: {n: 2, s: "xy", inner: {m: 5, fresh: 1}}`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
	res = Merge(parseObj(t, `a: 1`), parseObj(t, `a: 2`), WithStrategy(strategy.Append))
	if v, _ := res.Get("a"); !ir.Equal(v, ir.FromInt(3)) {
		t.Errorf("WithStrategy: got %s", v)
	}
}

func TestKeyOrder(t *testing.T) {
	res := Merge(parseObj(t, `a: 1, b: 2, c: 3`), parseObj(t, `d: 4, >b: 1, e: 5`))
	var names []string
	for k := range res.All() {
		names = append(names, k.String())
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("got %v want %v", names, want)
			break
		}
	}
}

func TestIdentity(t *testing.T) {
	x := parseObj(t, `a: 1, b: {c: [1, "x", {d: null}]}, e: 2.5`)
	if res := Merge(ir.NewObject(), x); !ir.EqualObjects(res, x) {
		t.Errorf("empty base: got %s", res)
	}
	if res := Merge(x, ir.NewObject()); !ir.EqualObjects(res, x) {
		t.Errorf("empty patch: got %s", res)
	}
	if res := Merge(nil, x); !ir.EqualObjects(res, x) {
		t.Errorf("nil base: got %s", res)
	}
}

func TestNotAssociative(t *testing.T) {
	a := parseObj(t, `x: 1`)
	b := parseObj(t, `>x: 1`)
	c := parseObj(t, `>x: 1`)
	left := Fold(a, b, c)
	right := Merge(a, Merge(b, c))
	lx, _ := left.Get("x")
	rx, _ := right.Get("x")
	if !ir.Equal(lx, ir.FromInt(3)) || !ir.Equal(rx, ir.FromInt(2)) {
		t.Errorf("left %s right %s", lx, rx)
	}
}

func TestInputsUnchanged(t *testing.T) {
	base := parseObj(t, `a: [1, 2], b: {c: "x"}, d: 1`)
	patch := parseObj(t, `#a: [#, 3], >b: {c: "y"}, !d: null, e: [#, 1]`)
	bs, ps := base.String(), patch.String()
	_ = Fold(base, patch)
	_ = Merge(base, patch)
	if base.String() != bs || patch.String() != ps {
		t.Errorf("inputs changed: %s %s", base, patch)
	}
}

func TestPatchOnlyNormalized(t *testing.T) {
	res := Merge(ir.NewObject(), parseObj(t, `unit: {a: [#, 1, {!x: 1, y: [#]}], !b: 2, >c: 3}`))
	want := parseObj(t, `unit: {a: [1, {y: []}], c: 3}`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
	if err := Validate(res); err != nil {
		t.Error(err)
	}
	base := parseObj(t, `>a: [#, 1]`)
	res = Merge(base, ir.NewObject())
	if err := Validate(res); err != nil {
		t.Errorf("base not normalized: %v", err)
	}
}

func TestBaseStrategiesIgnored(t *testing.T) {
	base := parseObj(t, `!x: 1, a: {!b: 2, c: 3}, >s: [#, "y"]`)
	want := parseObj(t, `x: 1, a: {b: 2, c: 3}, s: ["y"]`)
	for name, res := range map[string]*ir.Object{
		"merge": Merge(base, ir.NewObject()),
		"fold":  Fold(base),
	} {
		if !ir.EqualObjects(res, want) {
			t.Errorf("%s: got %s want %s", name, res, want)
		}
		if err := Validate(res); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	res := Fold(base, parseObj(t, `a: {!c: null}`))
	if !ir.EqualObjects(res, parseObj(t, `x: 1, a: {b: 2}, s: ["y"]`)) {
		t.Errorf("got %s", res)
	}
}

func TestLabels(t *testing.T) {
	res := Merge(parseObj(t, `l: [k: 1, 2]`), parseObj(t, `#l: [#, j: 5]`))
	l, _ := res.Get("l")
	elts := l.Elems()
	if len(elts) != 2 {
		t.Fatalf("got %s", l)
	}
	if k, _ := elts[0].Label(); k.Name != "k" || !ir.Equal(elts[0], ir.FromInt(1)) {
		t.Errorf("first: %s", elts[0])
	}
	if k, _ := elts[1].Label(); k.Name != "j" || !ir.Equal(elts[1], ir.FromInt(5)) {
		t.Errorf("second: %s", elts[1])
	}
}

func TestSequenceTypes(t *testing.T) {
	base := ir.NewObject()
	base.Set("a", ir.FromSlice([]*ir.Node{ir.FromInt(1)}))
	patch := ir.NewObject()
	patch.Put(ir.Key{Name: "a", Strategy: strategy.Append}, ir.FromSlice([]*ir.Node{ir.FromInt(2)}))
	res := Merge(base, patch)
	if a, _ := res.Get("a"); a.Type() != ir.ArrayType || a.Len() != 2 {
		t.Errorf("array over array: %s %s", a, a.Type())
	}
	list := parseObj(t, `>a: [2]`)
	res = Merge(base, list)
	if a, _ := res.Get("a"); a.Type() != ir.ListType || a.Len() != 2 {
		t.Errorf("list over array: %s %s", a, a.Type())
	}
}

func TestFold(t *testing.T) {
	res := Fold(nil, parseObj(t, `a: 1`), nil, parseObj(t, `>a: 2, b: "x"`), parseObj(t, `>b: "y"`))
	want := parseObj(t, `a: 3, b: "xy"`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s", res)
	}
	if Fold().Len() != 0 {
		t.Error("empty fold")
	}
	for k := range res.All() {
		if k.Strategy != strategy.Undefined {
			t.Errorf("merged key %s has a strategy", k)
		}
	}
}

func TestShallowMerge(t *testing.T) {
	res := ShallowMerge(
		parseObj(t, `a: {x: 1, y: 2}, b: 1, c: [1]`),
		nil,
		parseObj(t, `>a: {x: 3}, !b: null, c: [#, 2]`),
	)
	want := parseObj(t, `a: {x: 3}, c: [2]`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
}

func TestJSONPatch(t *testing.T) {
	obj := parseObj(t, `unit: {hp: 100, tags: ["a"]}, gone: 1`)
	ops := []byte(`[
		{"op": "replace", "path": "/unit/hp", "value": 7},
		{"op": "add", "path": "/unit/tags/-", "value": "z"},
		{"op": "remove", "path": "/gone"}
	]`)
	res, err := JSONPatch(obj, ops)
	if err != nil {
		t.Fatal(err)
	}
	want := parseObj(t, `unit: {hp: 7, tags: ["a", "z"]}`)
	if !ir.EqualObjects(res, want) {
		t.Errorf("got %s want %s", res, want)
	}
	if _, err := JSONPatch(obj, []byte(`[{"op": "remove", "path": "/nope"}]`)); !errors.Is(err, ErrMerge) {
		t.Errorf("expected ErrMerge, got %v", err)
	}
	if _, err := JSONPatch(obj, []byte(`{`)); !errors.Is(err, ErrMerge) {
		t.Errorf("expected ErrMerge, got %v", err)
	}
	if _, err := JSONPatch(obj, []byte(`[{"op": "replace", "path": "", "value": 1}]`)); !errors.Is(err, ErrMerge) {
		t.Errorf("expected ErrMerge for non object result, got %v", err)
	}
}

func TestJSONPatchDropsLabels(t *testing.T) {
	res, err := JSONPatch(parseObj(t, `l: [k: 1, 2]`), []byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	l := getPath(t, res, "l")
	if l.Type() != ir.ArrayType {
		t.Errorf("got %s, want Array", l.Type())
	}
	for _, e := range l.Elems() {
		if k, ok := e.Label(); ok {
			t.Errorf("label %s kept", k)
		}
	}
}

func TestValidate(t *testing.T) {
	err := Validate(parseObj(t, `a: {b: [1, #]}`))
	var me *MergeError
	if !errors.As(err, &me) || me.Path != "a.b[1]" || !errors.Is(err, ErrPlaceholder) {
		t.Errorf("got %v", err)
	}
	err = Validate(parseObj(t, `a: {>b: 1}`))
	if !errors.As(err, &me) || me.Path != "a.b" || !errors.Is(err, ErrKeyStrategy) {
		t.Errorf("got %v", err)
	}
	if !errors.Is(err, ErrMerge) {
		t.Error("expected ErrMerge")
	}
}
