//go:build debug

package check

import "fmt"

// Assert panics when cond is false. Build with -tags debug to enable.
func Assert(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}

// Assertf is Assert with a formatted message.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}

// Unreachablef marks a branch that valid input can never take, such as the
// default case of a switch over a closed enum.
func Unreachablef(format string, args ...any) {
	panic("unreachable: " + fmt.Sprintf(format, args...))
}
