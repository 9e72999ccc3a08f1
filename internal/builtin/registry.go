// Package builtin implements the shell commands that must run inside the
// shell process (or, per original_source/src/builtin/builtin.c's
// builtin_init table, inside a forked stand-in for it when used as one
// stage of a multi-command pipeline): cd, exit, pwd, jobs, fg, bg, history,
// type, echo, true, false, export, and unset.
package builtin

import (
	"io"

	"github.com/thomas-gons/novash/internal/history"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/reaper"
	"github.com/thomas-gons/novash/internal/shellstate"
)

// Result is what running a builtin produced.
type Result struct {
	ExitCode int
	// ShouldExit is set by the `exit` builtin. It is only meaningful to a
	// caller running the builtin in the shell's own process; a builtin run
	// in a forked stand-in process (see internal/executor's reexec path)
	// has no way to signal the real shell to terminate, which matches
	// ordinary shells: `exit` inside a pipeline stage only ends that
	// stage's subshell.
	ShouldExit bool
}

// Func is one builtin's implementation.
type Func func(args []string, env *Env) Result

// Env is everything a builtin needs: shell state, the job table (nil in a
// forked stand-in, where job control is meaningless), the history store,
// and its stdio streams.
type Env struct {
	State   *shellstate.State
	Jobs    *job.List
	History *history.Store
	Reaper  *reaper.Reaper

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var registry = map[string]Func{
	"cd":      cd,
	"exit":    exit,
	"pwd":     pwd,
	"echo":    echo,
	"true":    builtinTrue,
	"false":   builtinFalse,
	"type":    typeCmd,
	"export":  export,
	"unset":   unset,
	"jobs":    jobs,
	"fg":      fg,
	"bg":      bg,
	"history": historyCmd,
}

// Lookup returns the named builtin and whether it exists, mirroring
// builtin_is_builtin.
func Lookup(name string) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Dispatch runs the named builtin with args, returning its Result.
func Dispatch(name string, args []string, env *Env) Result {
	f, ok := registry[name]
	if !ok {
		return Result{ExitCode: 127}
	}
	return f(args, env)
}
