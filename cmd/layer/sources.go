package main

import (
	"context"
	"fmt"
	"io"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/layer"

	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"
)

const stdinLabel = "<stdin>"

// readSources reads the files named in args, "-" being standard input.
func (cfg *MainConfig) readSources(cc *cli.Context, args []string) ([]layer.Source, error) {
	srcs := make([]layer.Source, 0, len(args))
	for _, arg := range args {
		src, err := cfg.readSource(cc, arg)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func (cfg *MainConfig) readSource(cc *cli.Context, arg string) (layer.Source, error) {
	if arg == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return layer.Source{}, fmt.Errorf("error reading stdin: %w", err)
		}
		return layer.Source{Label: stdinLabel, Text: d}, nil
	}
	d, err := afero.ReadFile(cfg.fs, arg)
	if err != nil {
		return layer.Source{}, fmt.Errorf("error reading %s: %w", arg, err)
	}
	return layer.Source{Label: arg, Text: d}, nil
}

func (cfg *MainConfig) load(ctx context.Context, cc *cli.Context, args []string, opts ...layer.LoadOption) (*ir.Object, error) {
	srcs, err := cfg.readSources(cc, args)
	if err != nil {
		return nil, err
	}
	return layer.Load(ctx, srcs, opts...)
}
