package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

func mergeArray(b, p *ir.Node, st strategy.Strategy, path string) *ir.Node {
	be := b.Elems()
	array := b.Type() == ir.ArrayType && p.Type() == ir.ArrayType
	switch st {
	case strategy.Prepend:
		pe := normalize(p, st, path).Elems()
		vs := make([]*ir.Node, 0, len(pe)+len(be))
		vs = append(vs, pe...)
		vs = append(vs, be...)
		return sequence(vs, array)
	case strategy.Append:
		pe := normalize(p, st, path).Elems()
		vs := make([]*ir.Node, 0, len(pe)+len(be))
		vs = append(vs, be...)
		vs = append(vs, pe...)
		return sequence(vs, array)
	case strategy.Overlay:
		pe := p.Elems()
		return sequence(overlay(be, pe, max(len(be), len(pe)), path), array)
	case strategy.OverlayTruncate:
		pe := p.Elems()
		return sequence(overlay(be, pe, len(pe), path), array)
	}
	return normalize(p, st, path)
}

// overlay reconciles the first n elements of be and pe by position.
func overlay(be, pe []*ir.Node, n int, path string) []*ir.Node {
	vs := make([]*ir.Node, 0, n)
	for i := range n {
		ePath := ir.JoinIndex(path, i)
		switch {
		case i >= len(pe):
			vs = append(vs, be[i])
		case i >= len(be):
			if pe[i].IsOverlayPlaceholder() {
				continue
			}
			vs = append(vs, normalize(pe[i], strategy.Overlay, ePath))
		default:
			vs = append(vs, mergeValue(be[i], pe[i], strategy.Overlay, ePath))
		}
	}
	return vs
}
