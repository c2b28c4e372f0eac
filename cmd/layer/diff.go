package main

import (
	"context"
	"fmt"
	"io"

	"github.com/signadot/layer-format/go-layer/encode"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/layer"
	"github.com/signadot/layer-format/go-layer/libdiff"
	"github.com/signadot/layer-format/go-layer/mergeop"

	"github.com/scott-cotton/cli"
)

// diff shows how the merge of all files differs from the first.  It exits
// with 1 when there are differences.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: diff requires a base and at least one file", cli.ErrUsage)
	}
	srcs, err := cfg.readSources(cc, args)
	if err != nil {
		return err
	}
	objs, err := layer.ParseAll(context.Background(), srcs, cfg.MainConfig.loadOpts()...)
	if err != nil {
		return err
	}
	base := mergeop.Fold(objs[0])
	changes := libdiff.DiffObjects(base, mergeop.Fold(objs...))
	if len(changes) == 0 {
		return nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	writeChanges(cc.Out, cfg.colors(cc.Out), changes)
	return cli.ExitCodeErr(1)
}

func writeChanges(w io.Writer, colors *encode.Colors, changes []libdiff.Change) {
	for _, c := range changes {
		var attr encode.ColorAttr
		switch c.Kind {
		case libdiff.Added:
			attr = encode.AddedColor
		case libdiff.Removed:
			attr = encode.RemovedColor
		default:
			attr = encode.FieldColor
		}
		if c.Kind != libdiff.Changed {
			fmt.Fprintln(w, colors.Color(attr, c.String()))
			continue
		}
		from, fok := stringOf(c.From)
		to, tok := stringOf(c.To)
		if !fok || !tok {
			fmt.Fprintln(w, colors.Color(attr, c.String()))
			continue
		}
		inline := libdiff.RenderString(libdiff.DiffString(from, to),
			func(s string) string { return colors.Color(encode.RemovedColor, "[-"+s+"-]") },
			func(s string) string { return colors.Color(encode.AddedColor, "{+"+s+"+}") })
		fmt.Fprintf(w, "%s %s: \"%s\"\n", c.Kind.Sign(), colors.Color(attr, c.Path), inline)
	}
}

func stringOf(n *ir.Node) (string, bool) {
	s, err := n.AsString()
	return s, err == nil
}
