package builtin

import (
	"fmt"
	"os"
	"syscall"

	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/shellstate"
)

// fg and bg are implemented in full per spec.md §4.5; original_source's
// builtin_fg/builtin_bg are unimplemented stubs ("// TODO: implement fg
// builtin"), which this package replaces with a working implementation;
// the no-argument target follows SPEC_FULL.md Part E.5's Open Question
// decision.

// fg resumes a stopped or already-running job in the foreground: it sends
// SIGCONT to the job's process group, hands the controlling terminal to
// that group, blocks until the job stops again or finishes, then reclaims
// the terminal for the shell.
func fg(args []string, env *Env) Result {
	j, err := resolveJobArg(args, env.Jobs)
	if err != nil {
		fmt.Fprintf(env.Stderr, "fg: %s\n", err)
		return Result{ExitCode: 1}
	}

	fmt.Fprintln(env.Stdout, j.Raw)
	resume(j)

	if env.State.JobControl {
		_ = shellstate.TcSetpgrp(int(os.Stdin.Fd()), j.PGID)
		defer shellstate.TcSetpgrp(int(os.Stdin.Fd()), env.State.PGID())
	}

	final := env.Reaper.WaitJob(j)
	if final == job.Stopped {
		return Result{ExitCode: 128 + int(syscall.SIGTSTP)}
	}
	env.Jobs.Remove(j.ID)
	return Result{ExitCode: j.ExitCode()}
}

// bg resumes a stopped job in the background: SIGCONT without taking the
// terminal or waiting.
func bg(args []string, env *Env) Result {
	j, err := resolveJobArg(args, env.Jobs)
	if err != nil {
		fmt.Fprintf(env.Stderr, "bg: %s\n", err)
		return Result{ExitCode: 1}
	}

	resume(j)
	j.Background = true
	fmt.Fprintf(env.Stdout, "[%d] %d\n", j.ID, j.PGID)
	return Result{ExitCode: 0}
}

func resume(j *job.Job) {
	syscall.Kill(-j.PGID, syscall.SIGCONT)
	for _, p := range j.Processes {
		if p.State == job.Stopped {
			p.State = job.Running
		}
	}
}
