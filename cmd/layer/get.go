package main

import (
	"context"
	"fmt"

	"github.com/signadot/layer-format/go-layer/encode"
	"github.com/signadot/layer-format/go-layer/eval"
	"github.com/signadot/layer-format/go-layer/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get requires a query and at least one file", cli.ErrUsage)
	}
	query, files := args[0], args[1:]
	if query == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	obj, err := cfg.load(context.Background(), cc, files, cfg.MainConfig.loadOpts()...)
	if err != nil {
		return err
	}
	res, err := getQuery(ir.FromObject(obj), query, cfg.Path)
	if err != nil {
		return err
	}
	return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
}

func getQuery(doc *ir.Node, query string, isPath bool) (*ir.Node, error) {
	if !isPath {
		return eval.Query(doc, query, nil)
	}
	res, err := doc.GetPath(query)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("nothing at %s", query)
	}
	return res, nil
}
