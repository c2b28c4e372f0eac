// Package dirbuild reads stack manifests: YAML files listing the sources of a
// layer stack, base first.
//
//	sources:
//	- base/*.txt
//	- mods/**/*.txt
//	strict: true
//	jsonpatch: fixups.json
//
// Patterns are doublestar globs relative to the directory of the manifest.
// The matches of one pattern are taken in lexical order, and a file matched
// by several patterns is only taken the first time.
package dirbuild

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/layer"
	"github.com/signadot/layer-format/go-layer/mergeop"
	"github.com/spf13/afero"
)

const DefaultManifest = "stack.yaml"

type Stack struct {
	Root      string   `yaml:"-"`
	Patterns  []string `yaml:"sources"`
	Shallow   bool     `yaml:"shallow,omitempty"`
	Strict    bool     `yaml:"strict,omitempty"`
	JSONPatch string   `yaml:"jsonpatch,omitempty"`
}

// OpenStack reads the manifest at p, or p/stack.yaml if p is a directory.
func OpenStack(fsys afero.Fs, p string) (*Stack, error) {
	if fi, err := fsys.Stat(p); err == nil && fi.IsDir() {
		p = filepath.Join(p, DefaultManifest)
	}
	d, err := afero.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("could not read stack manifest: %w", err)
	}
	stack := &Stack{}
	if err := yaml.Unmarshal(d, stack); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", p, err)
	}
	if len(stack.Patterns) == 0 {
		return nil, fmt.Errorf("%s: no sources", p)
	}
	for _, pat := range stack.Patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%s: bad source pattern %q", p, pat)
		}
	}
	stack.Root = filepath.Dir(p)
	if debug.Load() {
		debug.Logf("opened stack %s with %d patterns\n", p, len(stack.Patterns))
	}
	return stack, nil
}

// Files expands the source patterns.  A pattern which matches nothing is an
// error.
func (s *Stack) Files(fsys afero.Fs) ([]string, error) {
	all, err := s.listFiles(fsys)
	if err != nil {
		return nil, fmt.Errorf("could not list stack sources: %w", err)
	}
	res := []string{}
	seen := map[string]bool{}
	for _, pat := range s.Patterns {
		var matches []string
		for _, rel := range all {
			ok, err := doublestar.Match(pat, rel)
			if err != nil {
				return nil, fmt.Errorf("bad source pattern %q: %w", pat, err)
			}
			if ok {
				matches = append(matches, rel)
			}
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("source pattern %q matches no files in %s", pat, s.Root)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			res = append(res, filepath.Join(s.Root, filepath.FromSlash(m)))
		}
	}
	return res, nil
}

// listFiles returns the slash separated paths of all regular files under the
// stack root.
func (s *Stack) listFiles(fsys afero.Fs) ([]string, error) {
	var res []string
	err := afero.Walk(fsys, s.Root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}
		res = append(res, path.Clean(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ReadSources reads the files of the stack in order.
func (s *Stack) ReadSources(fsys afero.Fs) ([]layer.Source, error) {
	files, err := s.Files(fsys)
	if err != nil {
		return nil, err
	}
	srcs := make([]layer.Source, 0, len(files))
	for _, f := range files {
		d, err := afero.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		if debug.Load() {
			debug.Logf("stack source %s (%d bytes)\n", f, len(d))
		}
		srcs = append(srcs, layer.Source{Label: f, Text: d})
	}
	return srcs, nil
}

func (s *Stack) LoadOptions() []layer.LoadOption {
	var opts []layer.LoadOption
	if s.Shallow {
		opts = append(opts, layer.Shallow())
	}
	if s.Strict {
		opts = append(opts, layer.Strict())
	}
	return opts
}

// Load reads and folds the sources of the stack, then applies its json
// patch if any.
func (s *Stack) Load(ctx context.Context, fsys afero.Fs, opts ...layer.LoadOption) (*ir.Object, error) {
	srcs, err := s.ReadSources(fsys)
	if err != nil {
		return nil, err
	}
	res, err := layer.Load(ctx, srcs, append(s.LoadOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	if s.JSONPatch == "" {
		return res, nil
	}
	ops, err := afero.ReadFile(fsys, filepath.Join(s.Root, s.JSONPatch))
	if err != nil {
		return nil, fmt.Errorf("could not read json patch: %w", err)
	}
	return mergeop.JSONPatch(res, ops)
}
