// Package layer folds an ordered stack of sources into one document.
//
// The first source is the base definition and every later source is a patch
// over the result of the sources before it.  All sources are parsed before
// anything is merged so that every syntax error in the stack is reported at
// once.
package layer

import (
	"context"
	"runtime"

	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/mergeop"
	"github.com/signadot/layer-format/go-layer/parse"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Source is the text of one layer and the label it is reported under.
type Source struct {
	Label string
	Text  []byte
}

type loadOpts struct {
	shallow     bool
	strict      bool
	maxDepth    int
	concurrency int
}

type LoadOption func(*loadOpts)

// Shallow merges the top level only, see [mergeop.ShallowMerge].
func Shallow() LoadOption {
	return func(o *loadOpts) { o.shallow = true }
}

// Strict checks the merged document with [mergeop.Validate].
func Strict() LoadOption {
	return func(o *loadOpts) { o.strict = true }
}

// MaxDepth limits the nesting of each source.
func MaxDepth(n int) LoadOption {
	return func(o *loadOpts) { o.maxDepth = n }
}

// Concurrency limits the number of sources parsed at once.
func Concurrency(n int) LoadOption {
	return func(o *loadOpts) { o.concurrency = n }
}

func newLoadOpts(opts []LoadOption) *loadOpts {
	lOpts := &loadOpts{
		maxDepth:    parse.DefaultMaxDepth,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, f := range opts {
		f(lOpts)
	}
	return lOpts
}

// ParseAll parses srcs concurrently, returning the documents in the order
// of srcs.  If any source fails, the error combines the errors of all
// failing sources, see [multierr.Errors].
func ParseAll(ctx context.Context, srcs []Source, opts ...LoadOption) ([]*ir.Object, error) {
	lOpts := newLoadOpts(opts)
	objs := make([]*ir.Object, len(srcs))
	errs := make([]error, len(srcs))
	g := &errgroup.Group{}
	if lOpts.concurrency > 0 {
		g.SetLimit(lOpts.concurrency)
	}
	for i := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			src := &srcs[i]
			objs[i], errs[i] = parse.Parse(src.Label, src.Text, parse.ParseMaxDepth(lOpts.maxDepth))
			return nil
		})
	}
	_ = g.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return objs, nil
}

// Load parses srcs and folds them into one document.
func Load(ctx context.Context, srcs []Source, opts ...LoadOption) (*ir.Object, error) {
	lOpts := newLoadOpts(opts)
	objs, err := ParseAll(ctx, srcs, opts...)
	if err != nil {
		return nil, err
	}
	if debug.Load() {
		for i := range srcs {
			debug.Logf("load %s: %d keys\n", srcs[i].Label, objs[i].Len())
		}
	}
	var res *ir.Object
	if lOpts.shallow {
		res = mergeop.ShallowMerge(objs...)
	} else {
		res = mergeop.Fold(objs...)
	}
	if lOpts.strict {
		if err := mergeop.Validate(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}
