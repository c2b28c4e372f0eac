package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

func mergeString(b, p *ir.Node, st strategy.Strategy) *ir.Node {
	bs, _ := b.AsString()
	ps, _ := p.AsString()
	switch st {
	case strategy.Prepend:
		return ir.FromString(ps + bs)
	case strategy.Append:
		return ir.FromString(bs + ps)
	case strategy.Overlay:
		return ir.FromString(overlayString(bs, ps))
	}
	return p
}

// overlayString writes p over the start of b, counting in runes.
func overlayString(b, p string) string {
	br := []rune(b)
	n := len([]rune(p))
	if n >= len(br) {
		return p
	}
	return p + string(br[n:])
}
