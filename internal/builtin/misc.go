package builtin

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// exit mirrors builtin_exit: it requests shell termination. A numeric
// argument sets the exit code the REPL driver returns to the OS.
func exit(args []string, env *Env) Result {
	code := env.State.LastExitStatus()
	if len(args) > 0 {
		var parsed int
		if _, err := fmt.Sscanf(args[0], "%d", &parsed); err == nil {
			code = parsed
		}
	}
	return Result{ExitCode: code, ShouldExit: true}
}

// pwd mirrors builtin_pwd: print the shell's tracked working directory.
func pwd(args []string, env *Env) Result {
	fmt.Fprintln(env.Stdout, env.State.Cwd())
	return Result{ExitCode: 0}
}

// echo mirrors builtin_echo's exact output shape: each argument followed by
// a space, even the last one, then a trailing newline.
func echo(args []string, env *Env) Result {
	for _, a := range args {
		fmt.Fprintf(env.Stdout, "%s ", a)
	}
	fmt.Fprintln(env.Stdout)
	return Result{ExitCode: 0}
}

func builtinTrue(args []string, env *Env) Result  { return Result{ExitCode: 0} }
func builtinFalse(args []string, env *Env) Result { return Result{ExitCode: 1} }

// typeCmd mirrors builtin_fn_type: report whether name is a shell builtin
// or resolves against $PATH, per SPEC_FULL.md Part D.1.
func typeCmd(args []string, env *Env) Result {
	if len(args) == 0 {
		return Result{ExitCode: 0}
	}
	name := args[0]
	if _, ok := Lookup(name); ok {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return Result{ExitCode: 0}
	}
	if strings.Contains(name, "/") {
		if _, err := os.Stat(name); err == nil {
			fmt.Fprintf(env.Stdout, "%s is %s\n", name, name)
			return Result{ExitCode: 0}
		}
	} else if path, err := exec.LookPath(name); err == nil {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
		return Result{ExitCode: 0}
	}
	fmt.Fprintf(env.Stderr, "%s: not found\n", name)
	return Result{ExitCode: 1}
}
