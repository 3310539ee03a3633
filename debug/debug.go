// Package debug holds environment controlled tracing switches.
//
// Each switch is read once at start up from an UPD_DEBUG_* variable and
// accepts anything [strconv.ParseBool] does.
package debug

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/ir"
)

type debug struct {
	Prepare bool
	Apply   bool
	Log     bool
	Bulk    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Prepare = boolEnv("UPD_DEBUG_PREPARE")
	d.Apply = boolEnv("UPD_DEBUG_APPLY")
	d.Log = boolEnv("UPD_DEBUG_LOG")
	d.Bulk = boolEnv("UPD_DEBUG_BULK")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Prepare() bool {
	return d.Prepare
}
func Apply() bool {
	return d.Apply
}
func Log() bool {
	return d.Log
}
func Bulk() bool {
	return d.Bulk
}

// Logf writes a trace line to stderr. Element arguments are rendered as
// single line JSON.
func Logf(format string, args ...any) {
	for i, a := range args {
		if e, ok := a.(ir.Element); ok && e.Ok() {
			args[i] = strings.TrimSuffix(encode.MustString(e, encode.EncodeWire(true), encode.EncodeTyped(true)), "\n")
		}
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
