package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

func mergeBool(b, p *ir.Node, st strategy.Strategy) *ir.Node {
	if st != strategy.Overlay && st != strategy.OverlayTruncate {
		return p
	}
	bb, _ := b.AsBool()
	pb, _ := p.AsBool()
	return ir.FromBool(bb && pb)
}
