package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/layer-format/go-layer/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArrayByIndex aligns the elements of from and to by diffing sequences
// of element summaries.  Aligned elements are compared recursively; a removal
// directly followed by an insertion is reported as a change.  Removed
// elements are reported at their index in from, the others at their index in
// to.
func diffArrayByIndex(dst []Change, path string, from, to []*ir.Node) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	var pending []int
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			dst = flush(dst, path, from, pending)
			pending = pending[:0]
			for range n {
				pending = append(pending, fi)
				fi++
			}
		case diffpatch.DiffEqual:
			dst = flush(dst, path, from, pending)
			pending = pending[:0]
			for range n {
				dst = diff(dst, ir.JoinIndex(path, ti), from[fi], to[ti])
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(pending) != 0 {
					dst = append(dst, Change{
						Path: ir.JoinIndex(path, ti),
						Kind: Changed,
						From: from[pending[0]],
						To:   to[ti],
					})
					pending = pending[1:]
				} else {
					dst = append(dst, Change{Path: ir.JoinIndex(path, ti), Kind: Added, To: to[ti]})
				}
				ti++
			}
		}
	}
	return flush(dst, path, from, pending)
}

func flush(dst []Change, path string, from []*ir.Node, removed []int) []Change {
	for _, fi := range removed {
		dst = append(dst, Change{Path: ir.JoinIndex(path, fi), Kind: Removed, From: from[fi]})
	}
	return dst
}

func mapValues(m map[string]rune, nodes []*ir.Node) []rune {
	rs := make([]rune, len(nodes))
	for i, v := range nodes {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(n *ir.Node) string {
	switch n.Type() {
	case ir.ObjectType, ir.NullType, ir.OverlayType:
		return n.Type().String()
	case ir.ArrayType, ir.ListType:
		return "Seq"
	case ir.BoolType:
		b, _ := n.AsBool()
		return "Bool-" + strconv.FormatBool(b)
	case ir.StringType:
		s, _ := n.AsString()
		if strings.Contains(s, "\n") {
			return "String/m"
		}
		return "String-" + s
	case ir.IntType:
		i, _ := n.AsInt()
		return "Int-" + strconv.FormatInt(i, 10)
	case ir.FloatType:
		f, _ := n.AsFloat()
		return "Float-" + strconv.FormatFloat(f, 'g', -1, 64)
	default:
		panic("type")
	}
}
