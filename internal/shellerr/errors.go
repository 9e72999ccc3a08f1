// Package shellerr defines the small set of typed errors the shell
// distinguishes when deciding how to report a failure, grounded on the
// kflags.NewUsageErrorf pattern used throughout the teacher repository
// (see astore/client/commands/guess.go) for usage errors raised by a
// command's own Run method.
package shellerr

import "fmt"

// UsageError indicates the user invoked a builtin with the wrong shape of
// arguments. The builtin that raises it prints its message to stderr as-is,
// without a stack-trace-style wrapper, the same way a cobra command's RunE
// error is surfaced.
type UsageError struct {
	msg string
}

func NewUsageErrorf(format string, args ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string { return e.msg }

// ExitCode lets the executor map a UsageError straight to the POSIX
// convention for a builtin misuse.
func (e *UsageError) ExitCode() int { return 2 }

// NoSuchCommand indicates PATH search (or a direct path lookup) found no
// executable for a command name.
type NoSuchCommand struct {
	Name string
}

func (e *NoSuchCommand) Error() string { return fmt.Sprintf("%s: command not found", e.Name) }

func (e *NoSuchCommand) ExitCode() int { return 127 }

// PermissionDenied indicates a resolved executable path could not be run.
type PermissionDenied struct {
	Name string
}

func (e *PermissionDenied) Error() string { return fmt.Sprintf("%s: permission denied", e.Name) }

func (e *PermissionDenied) ExitCode() int { return 126 }

// ExitCoder is implemented by every error above; the executor uses it to
// compute the exit status to store for $? when a pipeline fails to start.
type ExitCoder interface {
	ExitCode() int
}
