package mergeop

import (
	"fmt"

	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// JSONPatch applies the RFC 6902 operations in ops to a merged document.
//
// The document goes through JSON, so array element labels are lost and
// every list comes back as an array.
func JSONPatch(obj *ir.Object, ops []byte) (*ir.Object, error) {
	patch, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding json patch: %w", ErrMerge, err)
	}
	if debug.Merge() {
		debug.Logf("json patch: %d operations\n", len(patch))
	}
	d, err := obj.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMerge, err)
	}
	out, err := patch.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: applying json patch: %w", ErrMerge, err)
	}
	n, err := ir.FromJSON(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMerge, err)
	}
	res, err := n.AsObject()
	if err != nil {
		return nil, &MergeError{Err: fmt.Errorf("%w: json patch result: %w", ErrMerge, err)}
	}
	return res, nil
}
