//go:build !debug

package check

// Release builds keep callers' fallbacks instead of panicking.

func Assert(_ bool, _ string) {}

func Assertf(_ bool, _ string, _ ...any) {}

func Unreachablef(_ string, _ ...any) {}
