// Package mergeop merges layer documents.
//
// [Merge] lays a patch document over a base document.  Each patch key is
// merged with the base value of the same name according to the key's
// effective strategy: its own sigil, or if it has none the strategy of the
// enclosing entry.  The top level defaults to replace.
//
//	type pair       replace  prepend      append       overlay          overlay-truncate
//	string/string   patch    patch+base   base+patch   patch+base[n:]   patch
//	int/int         patch    sum          sum          patch            patch
//	float/float     patch    sum          sum          patch            patch
//	bool/bool       patch    patch        patch        and              and
//	array/array     patch    patch++base  base++patch  by position      by position, cut
//	object/object   merged key by key, passing the effective strategy down
//
// where n is the length of the patch string.  Values of differing types are
// replaced by the patch, keys with the delete sigil are removed, and base
// keys which the patch does not mention are kept.
//
// In an overlay, array elements are merged pairwise.  A '#' placeholder in
// the patch keeps the base element, and elements are merged with overlay.
//
// Merge does not modify its inputs.  Merged documents hold no placeholders
// and no key strategies.
package mergeop
