//go:build debugger

// Package debugonly stops a debug build at interesting points. Release builds
// compile to no-ops, so runtime.Breakpoint never reaches production code.
package debugonly

import (
	"runtime"
)

// BreakHere traps into an attached debugger.
func BreakHere() {
	runtime.Breakpoint()
}

// Enabled reports whether the binary was built with -tags debugger.
func Enabled() bool {
	return true
}
