package cmdutil

import (
	"errors"
	"fmt"

	"cephsafedisk/internal/diag"
)

// Process exit statuses.
const (
	ExitSafe    = 0
	ExitNotSafe = 1
	ExitError   = 2
)

// CodeError carries a process exit code out of a cobra RunE. Err is nil for
// plain verdicts, which have already been printed.
type CodeError struct {
	Code int
	Err  error
}

func (e *CodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *CodeError) Unwrap() error { return e.Err }

// Verdict returns nil for ExitSafe and a silent CodeError otherwise.
func Verdict(code int) error {
	if code == ExitSafe {
		return nil
	}
	return &CodeError{Code: code}
}

// StatusExitCode maps a reduced cluster status to an exit code. A pending
// cluster can't be called safe or unsafe yet, so it exits with ExitError.
func StatusExitCode(s diag.Status) int {
	switch s {
	case diag.Safe:
		return ExitSafe
	case diag.NonSafe:
		return ExitNotSafe
	default:
		return ExitError
	}
}

// QuickExitCode maps a quick check answer to an exit code.
func QuickExitCode(safe bool) int {
	if safe {
		return ExitSafe
	}
	return ExitNotSafe
}

// ExitCode returns the process exit code for an error returned by Execute,
// and whether the error still needs to be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return ExitSafe, false
	}
	var exitErr *CodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Err != nil
	}
	return ExitError, true
}
