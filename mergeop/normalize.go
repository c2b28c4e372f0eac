package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

// normalize returns n as it is when merged over nothing: placeholders are
// dropped, deleted keys removed and key strategies cleared.
func normalize(n *ir.Node, st strategy.Strategy, path string) *ir.Node {
	switch n.Type() {
	case ir.ObjectType:
		o, _ := n.AsObject()
		res := ir.FromObject(mergeObjects(ir.NewObject(), o, st, path))
		return relabel(res, n, n)
	case ir.ArrayType, ir.ListType:
		elts := n.Elems()
		vs := make([]*ir.Node, 0, len(elts))
		for i, e := range elts {
			if e.IsOverlayPlaceholder() {
				continue
			}
			vs = append(vs, normalize(e, st, ir.JoinIndex(path, i)))
		}
		return relabel(sequence(vs, n.Type() == ir.ArrayType), n, n)
	}
	return n
}

// stripObject returns o as a base: key strategies are cleared and
// placeholders dropped.  Delete keys are kept, as strategies are only acted
// on in patches.
func stripObject(o *ir.Object) *ir.Object {
	res := ir.NewObject()
	for k, v := range o.All() {
		if v.IsOverlayPlaceholder() {
			continue
		}
		res.Set(k.Name, strip(v))
	}
	return res
}

func strip(n *ir.Node) *ir.Node {
	switch n.Type() {
	case ir.ObjectType:
		o, _ := n.AsObject()
		return relabel(ir.FromObject(stripObject(o)), n, n)
	case ir.ArrayType, ir.ListType:
		elts := n.Elems()
		vs := make([]*ir.Node, 0, len(elts))
		for _, e := range elts {
			if e.IsOverlayPlaceholder() {
				continue
			}
			vs = append(vs, strip(e))
		}
		return relabel(sequence(vs, n.Type() == ir.ArrayType), n, n)
	}
	return n
}

func sequence(vs []*ir.Node, array bool) *ir.Node {
	if array {
		return ir.FromSlice(vs)
	}
	return ir.FromList(vs)
}
