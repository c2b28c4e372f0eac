package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/layer-format/go-layer/encode"
	"github.com/signadot/layer-format/go-layer/layer"
	"github.com/signadot/layer-format/go-layer/parse"

	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='output with color'"`
	J     bool `cli:"name=j aliases=json desc='output json'"`
	Y     bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Depth int  `cli:"name=depth desc='maximum nesting depth of a source'"`

	OutFormat *encode.Format

	Out      string
	CloseOut func() error

	fs afero.Fs

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) loadOpts() []layer.LoadOption {
	if cfg.Depth <= 0 {
		return nil
	}
	return []layer.LoadOption{layer.MaxDepth(cfg.Depth)}
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.Depth <= 0 {
		return nil
	}
	return []parse.ParseOption{parse.ParseMaxDepth(cfg.Depth)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmt encode.Format
	switch {
	case cfg.Y:
		fmt = encode.YAMLFormat
	case cfg.J:
		fmt = encode.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
	}
	if colors := cfg.colors(w); colors != nil {
		res = append(res, encode.EncodeColors(colors))
	}
	return res
}

// colors returns nil unless -color is given or w is a terminal and -color
// was not explicitly turned off.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type MergeConfig struct {
	*MainConfig

	Manifest  string `cli:"name=m aliases=manifest desc='stack manifest or directory containing stack.yaml'"`
	JSONPatch string `cli:"name=jsonpatch desc='json patch file applied to the result'"`
	Watch     bool   `cli:"name=watch desc='merge again whenever a source changes'"`
	Shallow   bool   `cli:"name=shallow desc='merge top level keys only'"`
	Strict    bool   `cli:"name=strict desc='fail if the result keeps placeholders or key strategies'"`

	Merge *cli.Command
}

func (cfg *MergeConfig) loadOpts() []layer.LoadOption {
	opts := cfg.MainConfig.loadOpts()
	if cfg.Shallow {
		opts = append(opts, layer.Shallow())
	}
	if cfg.Strict {
		opts = append(opts, layer.Strict())
	}
	return opts
}

type CheckConfig struct {
	*MainConfig

	Strict bool `cli:"name=strict desc='also merge and validate the result'"`

	Check *cli.Command
}

type GetConfig struct {
	*MainConfig

	Path bool `cli:"name=p aliases=path desc='consider the query a path rather than an expression'"`

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}
