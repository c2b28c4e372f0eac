// Package debug holds switches for debug tracing, read from the environment
// at startup.
//
//	LAYER_DEBUG_PARSE  parser summaries
//	LAYER_DEBUG_MERGE  every merge decision
//	LAYER_DEBUG_LOAD   source loading and stack manifests
//	LAYER_DEBUG_EVAL   query evaluation
//	LAYER_DEBUG_LSP    language server requests
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Merge bool
	Load  bool
	Eval  bool
	LSP   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("LAYER_DEBUG_PARSE")
	d.Merge = boolEnv("LAYER_DEBUG_MERGE")
	d.Load = boolEnv("LAYER_DEBUG_LOAD")
	d.Eval = boolEnv("LAYER_DEBUG_EVAL")
	d.LSP = boolEnv("LAYER_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Merge() bool {
	return d.Merge
}
func Load() bool {
	return d.Load
}
func Eval() bool {
	return d.Eval
}
func LSP() bool {
	return d.LSP
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
