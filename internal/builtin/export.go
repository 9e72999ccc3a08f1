package builtin

import (
	"fmt"
	"strings"

	"github.com/thomas-gons/novash/internal/shellerr"
)

// export and unset are supplemented per SPEC_FULL.md Part D.4: a real shell
// needs a way to grow the environment table the parameter-expansion pass
// and child processes read, which original_source only ever seeds once at
// startup.
func export(args []string, env *Env) Result {
	if len(args) == 0 {
		for _, kv := range env.State.Environ() {
			fmt.Fprintf(env.Stdout, "export %s\n", kv)
		}
		return Result{ExitCode: 0}
	}
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			fmt.Fprintln(env.Stderr, shellerr.NewUsageErrorf("export: usage: export NAME=value").Error())
			return Result{ExitCode: 2}
		}
		env.State.Setenv(name, value)
	}
	return Result{ExitCode: 0}
}

func unset(args []string, env *Env) Result {
	for _, name := range args {
		env.State.Unsetenv(name)
	}
	return Result{ExitCode: 0}
}
