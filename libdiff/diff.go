package libdiff

import (
	"github.com/signadot/layer-format/go-layer/ir"
)

// Diff returns the changes turning from into to, in document order.
func Diff(from, to *ir.Node) []Change {
	return diff(nil, "", from, to)
}

func DiffObjects(from, to *ir.Object) []Change {
	return diffObjects(nil, "", from, to)
}

func diff(dst []Change, path string, from, to *ir.Node) []Change {
	switch {
	case from.Type() == ir.ObjectType && to.Type() == ir.ObjectType:
		fo, _ := from.AsObject()
		tobj, _ := to.AsObject()
		return diffObjects(dst, path, fo, tobj)
	case from.Type().IsSequence() && to.Type().IsSequence():
		return diffArrayByIndex(dst, path, from.Elems(), to.Elems())
	}
	if ir.Equal(from, to) {
		return dst
	}
	return append(dst, Change{Path: path, Kind: Changed, From: from, To: to})
}

func diffObjects(dst []Change, path string, from, to *ir.Object) []Change {
	for k, fv := range from.All() {
		kPath := ir.JoinField(path, k.Name)
		tv, ok := to.Get(k.Name)
		if !ok {
			dst = append(dst, Change{Path: kPath, Kind: Removed, From: fv})
			continue
		}
		dst = diff(dst, kPath, fv, tv)
	}
	for k, tv := range to.All() {
		if from.Has(k.Name) {
			continue
		}
		dst = append(dst, Change{Path: ir.JoinField(path, k.Name), Kind: Added, To: tv})
	}
	return dst
}
