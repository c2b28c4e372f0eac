package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

// ShallowMerge merges objs from left to right at the top level only: a
// later value replaces an earlier one whatever its strategy, except that
// keys with the delete sigil are removed.
func ShallowMerge(objs ...*ir.Object) *ir.Object {
	res := ir.NewObject()
	for _, obj := range objs {
		for k, v := range obj.All() {
			if k.Strategy == strategy.Delete {
				res.Delete(k.Name)
				continue
			}
			if v.IsOverlayPlaceholder() {
				continue
			}
			res.Set(k.Name, normalize(v, strategy.Replace, ir.PathField(k.Name)))
		}
	}
	return res
}
