package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

func accumulates(st strategy.Strategy) bool {
	return st == strategy.Prepend || st == strategy.Append
}

// mergeInt sums on prepend and append.  The sum wraps on overflow.
func mergeInt(b, p *ir.Node, st strategy.Strategy) *ir.Node {
	if !accumulates(st) {
		return p
	}
	bi, _ := b.AsInt()
	pi, _ := p.AsInt()
	return ir.FromInt(bi + pi)
}

func mergeFloat(b, p *ir.Node, st strategy.Strategy) *ir.Node {
	if !accumulates(st) {
		return p
	}
	bf, _ := b.AsFloat()
	pf, _ := p.AsFloat()
	return ir.FromFloat(bf + pf)
}
