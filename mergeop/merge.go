package mergeop

import (
	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

type mergeOpts struct {
	strategy strategy.Strategy
}

type MergeOption func(*mergeOpts)

// WithStrategy sets the strategy inherited by the top level keys of the
// patch, replace by default.
func WithStrategy(s strategy.Strategy) MergeOption {
	return func(o *mergeOpts) { o.strategy = s }
}

// Merge returns the result of laying patch over base.  A nil base is empty.
// Strategies in base are ignored.
func Merge(base, patch *ir.Object, opts ...MergeOption) *ir.Object {
	mOpts := &mergeOpts{strategy: strategy.Replace}
	for _, f := range opts {
		f(mOpts)
	}
	return mergeObjects(stripObject(base), patch, mOpts.strategy, "")
}

// Fold merges objs from left to right, each one a patch over the result of
// merging those before it.  The first non-nil entry is the base; nil entries
// are skipped.
func Fold(objs ...*ir.Object) *ir.Object {
	var res *ir.Object
	for _, obj := range objs {
		switch {
		case obj == nil:
		case res == nil:
			res = stripObject(obj)
		default:
			res = mergeObjects(res, obj, strategy.Replace, "")
		}
	}
	if res == nil {
		return ir.NewObject()
	}
	return res
}

// mergeObjects merges patch over base, which must already be normalized.
func mergeObjects(base, patch *ir.Object, inherited strategy.Strategy, path string) *ir.Object {
	res := base.Clone()
	for k, pv := range patch.All() {
		kPath := ir.JoinField(path, k.Name)
		eff := strategy.Effective(k.Strategy, inherited)
		if eff == strategy.Delete {
			if debug.Merge() {
				debug.Logf("merge %s: delete\n", kPath)
			}
			res.Delete(k.Name)
			continue
		}
		bv, ok := base.Get(k.Name)
		if !ok {
			if pv.IsOverlayPlaceholder() {
				continue
			}
			res.Set(k.Name, normalize(pv, eff, kPath))
			continue
		}
		res.Set(k.Name, mergeValue(bv, pv, eff, kPath))
	}
	return res
}

func mergeValue(b, p *ir.Node, st strategy.Strategy, path string) *ir.Node {
	if debug.Merge() {
		debug.Logf("merge %s: %s %s over %s\n", path, st, p.Type(), b.Type())
	}
	if p.IsOverlayPlaceholder() {
		return relabel(b, p, b)
	}
	if !ir.SameKind(b.Type(), p.Type()) {
		return normalize(p, st, path)
	}
	var res *ir.Node
	switch p.Type() {
	case ir.NullType:
		res = p
	case ir.StringType:
		res = mergeString(b, p, st)
	case ir.IntType:
		res = mergeInt(b, p, st)
	case ir.FloatType:
		res = mergeFloat(b, p, st)
	case ir.BoolType:
		res = mergeBool(b, p, st)
	case ir.ArrayType, ir.ListType:
		res = mergeArray(b, p, st, path)
	case ir.ObjectType:
		bo, _ := b.AsObject()
		po, _ := p.AsObject()
		res = ir.FromObject(mergeObjects(bo, po, st, path))
	default:
		panic("type")
	}
	return relabel(res, p, b)
}

// relabel gives res the label of the patch node p, or failing that of the
// base node b.
func relabel(res, p, b *ir.Node) *ir.Node {
	k, ok := p.Label()
	if !ok {
		k, ok = b.Label()
	}
	if !ok {
		return res.WithoutLabel()
	}
	if rk, rok := res.Label(); rok && rk == k {
		return res
	}
	return res.WithLabel(k)
}
