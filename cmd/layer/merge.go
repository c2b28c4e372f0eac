package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/signadot/layer-format/go-layer/dirbuild"
	"github.com/signadot/layer-format/go-layer/encode"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/mergeop"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"
)

const watchSettle = 100 * time.Millisecond

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	switch {
	case cfg.Manifest == "" && len(args) == 0:
		return fmt.Errorf("%w: merge requires files or -m manifest", cli.ErrUsage)
	case cfg.Manifest != "" && len(args) != 0:
		return fmt.Errorf("%w: merge takes either files or -m manifest, not both", cli.ErrUsage)
	case cfg.Watch && slices.Contains(args, "-"):
		return fmt.Errorf("%w: cannot watch stdin", cli.ErrUsage)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if !cfg.Watch {
		return mergeOnce(ctx, cfg, cc, args)
	}
	return mergeWatch(ctx, cfg, cc, args)
}

func mergeOnce(ctx context.Context, cfg *MergeConfig, cc *cli.Context, args []string) error {
	res, err := mergeLoad(ctx, cfg, cc, args)
	if err != nil {
		return err
	}
	return encode.EncodeObject(res, cc.Out, cfg.encOpts(cc.Out)...)
}

func mergeLoad(ctx context.Context, cfg *MergeConfig, cc *cli.Context, args []string) (*ir.Object, error) {
	var (
		res *ir.Object
		err error
	)
	if cfg.Manifest != "" {
		stack, err := dirbuild.OpenStack(cfg.fs, cfg.Manifest)
		if err != nil {
			return nil, err
		}
		res, err = stack.Load(ctx, cfg.fs, cfg.loadOpts()...)
		if err != nil {
			return nil, err
		}
	} else {
		res, err = cfg.load(ctx, cc, args, cfg.loadOpts()...)
		if err != nil {
			return nil, err
		}
	}
	if cfg.JSONPatch == "" {
		return res, nil
	}
	ops, err := afero.ReadFile(cfg.fs, cfg.JSONPatch)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", cfg.JSONPatch, err)
	}
	return mergeop.JSONPatch(res, ops)
}

// watchedFiles returns the files whose change triggers a new merge.
func watchedFiles(cfg *MergeConfig, args []string) ([]string, error) {
	files := slices.Clone(args)
	if cfg.Manifest != "" {
		stack, err := dirbuild.OpenStack(cfg.fs, cfg.Manifest)
		if err != nil {
			return nil, err
		}
		files, err = stack.Files(cfg.fs)
		if err != nil {
			return nil, err
		}
		manifest := cfg.Manifest
		if fi, err := cfg.fs.Stat(manifest); err == nil && fi.IsDir() {
			manifest = filepath.Join(manifest, dirbuild.DefaultManifest)
		}
		files = append(files, manifest)
		if stack.JSONPatch != "" {
			files = append(files, filepath.Join(stack.Root, stack.JSONPatch))
		}
	}
	if cfg.JSONPatch != "" {
		files = append(files, cfg.JSONPatch)
	}
	for i, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		files[i] = abs
	}
	return files, nil
}

// mergeWatch merges, then merges again each time a source is written until
// ctx is done.  Errors are reported without stopping.  The set of files is
// fixed at start, so files added later to a stack are not seen.
func mergeWatch(ctx context.Context, cfg *MergeConfig, cc *cli.Context, args []string) error {
	files, err := watchedFiles(cfg, args)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		watched[f] = true
		dirs[filepath.Dir(f)] = true
	}
	// editors often replace files, so watch the directories.
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	run := func() {
		if err := mergeOnce(ctx, cfg, cc, args); err != nil {
			reportErrors(cfg.MainConfig, err)
		}
	}
	run()
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			theLog.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			settle = time.After(watchSettle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			theLog.Error("watch failed", "error", err)
		case <-settle:
			settle = nil
			fmt.Fprintln(cc.Out, "---")
			run()
		}
	}
}
