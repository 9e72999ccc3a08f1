package builtin

import (
	"fmt"
	"os"
	"strings"
)

// cd mirrors builtin_cd: no argument changes to $HOME; any other argument
// changes to that path. A "~" or "~/..." argument never reaches cd as
// written: the expander has already replaced the tilde with the user's home
// directory (via go-homedir, not the shell's own $HOME). Per SPEC_FULL.md
// Part E.2, an unset $HOME for the no-argument form is an error, not a
// silent no-op.
func cd(args []string, env *Env) Result {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	if target == "" {
		home, ok := env.State.Getenv("HOME")
		if !ok || home == "" {
			fmt.Fprintln(env.Stderr, "cd: HOME not set")
			return Result{ExitCode: 1}
		}
		target = home
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %s: %s\n", strings.TrimPrefix(err.Error(), "chdir "), target)
		return Result{ExitCode: 1}
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(env.Stderr, "cd: could not determine new working directory: %s\n", err)
		return Result{ExitCode: 1}
	}
	env.State.SetCwd(cwd)
	return Result{ExitCode: 0}
}
