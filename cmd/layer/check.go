package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/layer-format/go-layer/encode"
	"github.com/signadot/layer-format/go-layer/layer"
	"github.com/signadot/layer-format/go-layer/mergeop"
	"github.com/signadot/layer-format/go-layer/parse"

	"github.com/scott-cotton/cli"
	"go.uber.org/multierr"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one file", cli.ErrUsage)
	}
	srcs, err := cfg.readSources(cc, args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	opts := cfg.MainConfig.loadOpts()
	if cfg.Strict {
		_, err = layer.Load(ctx, srcs, append(opts, layer.Strict())...)
	} else {
		_, err = layer.ParseAll(ctx, srcs, opts...)
	}
	if err != nil {
		n := reportErrors(cfg.MainConfig, err)
		theLog.Debug("check failed", "errors", n)
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "%d sources ok\n", len(srcs))
	return nil
}

// reportErrors writes each error combined in err to stderr, one per line,
// and returns how many there were.
func reportErrors(cfg *MainConfig, err error) int {
	errs := multierr.Errors(err)
	writeErrors(os.Stderr, cfg.colors(os.Stderr), errs)
	return len(errs)
}

func writeErrors(w io.Writer, colors *encode.Colors, errs []error) {
	for _, e := range errs {
		var (
			pe  *parse.Error
			me  *mergeop.MergeError
			loc string
			msg string
		)
		switch {
		case errors.As(e, &pe):
			loc = fmt.Sprintf("%d:%d", pe.Line, pe.Col)
			if pe.Label != "" {
				loc = pe.Label + ":" + loc
			}
			msg = pe.Msg
		case errors.As(e, &me) && me.Path != "":
			loc = me.Path
			msg = me.Err.Error()
		default:
			fmt.Fprintln(w, colors.Color(encode.ErrorColor, e.Error()))
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", colors.Color(encode.LocationColor, loc), colors.Color(encode.ErrorColor, msg))
	}
}
