// Package eval evaluates expr-lang expressions against merged documents.
//
// The top level keys of an object document are bound as variables, and the
// whole document is bound to doc, so keys which are not identifiers can be
// reached with doc["max-hp"].  The functions getpath, listpath and getenv are
// available to every expression.
package eval

import (
	"errors"
	"fmt"
	"maps"

	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrEval = errors.New("evaluation error")

// Env holds extra variables for evaluation.  They shadow document keys.
type Env map[string]any

// Query evaluates src with the document n as environment and returns the
// result as a node.
func Query(n *ir.Node, src string, env Env) (*ir.Node, error) {
	val, err := run(n, src, env)
	if err != nil {
		return nil, err
	}
	res, err := ir.FromAny(val)
	if err != nil {
		return nil, fmt.Errorf("%w: result of %q: %w", ErrEval, src, err)
	}
	return res, nil
}

// Holds evaluates src against n and reports the truth of the result.
func Holds(n *ir.Node, src string, env Env) (bool, error) {
	res, err := Query(n, src, env)
	if err != nil {
		return false, err
	}
	return ir.Truth(res), nil
}

func run(n *ir.Node, src string, env Env) (any, error) {
	if debug.Eval() {
		debug.Logf("eval %q\n", src)
	}
	program, err := expr.Compile(src, exprOpts(n)...)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrEval, src, err)
	}
	val, err := vm.Run(program, bind(n, env))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluating %q: %w", ErrEval, src, err)
	}
	return val, nil
}

func bind(n *ir.Node, env Env) map[string]any {
	vars := map[string]any{}
	doc := ir.ToAny(n)
	if m, ok := doc.(map[string]any); ok {
		maps.Copy(vars, m)
	}
	vars["doc"] = doc
	maps.Copy(vars, env)
	return vars
}
