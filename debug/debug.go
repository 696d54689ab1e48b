package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Synth   bool
	Fields  bool
	Codegen bool
}

var d *debug

func init() {
	d = &debug{}
	d.Synth = boolEnv("DERIVE_DEBUG_SYNTH")
	d.Fields = boolEnv("DERIVE_DEBUG_FIELDS")
	d.Codegen = boolEnv("DERIVE_DEBUG_CODEGEN")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Synth reports whether synthesis of per-type functions is traced.
func Synth() bool {
	return d.Synth
}

// Fields reports whether member field resolution is traced.
func Fields() bool {
	return d.Fields
}

func Codegen() bool {
	return d.Codegen
}
