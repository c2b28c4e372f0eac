package mergeop

import (
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/strategy"
)

// Validate checks that obj has the form of a merged document: no overlay
// placeholders and no key strategies.  It reports the first problem found
// as a [*MergeError].
func Validate(obj *ir.Object) error {
	return validateObject(obj, "")
}

func validateObject(obj *ir.Object, path string) error {
	for k, v := range obj.All() {
		kPath := ir.JoinField(path, k.Name)
		if k.Strategy != strategy.Undefined {
			return &MergeError{Path: kPath, Err: ErrKeyStrategy}
		}
		if err := validate(v, kPath); err != nil {
			return err
		}
	}
	return nil
}

func validate(n *ir.Node, path string) error {
	switch n.Type() {
	case ir.OverlayType:
		return &MergeError{Path: path, Err: ErrPlaceholder}
	case ir.ObjectType:
		o, _ := n.AsObject()
		return validateObject(o, path)
	case ir.ArrayType, ir.ListType:
		for i, e := range n.Elems() {
			if err := validate(e, ir.JoinIndex(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
