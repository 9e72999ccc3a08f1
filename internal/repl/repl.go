// Package repl drives the interactive read-parse-execute loop, mirroring
// shell.c's shell_init/shell_run/shell_cleanup: ignore job-control stop
// signals, take the controlling terminal if stdin is a TTY, then loop
// reading a line, parsing it into an internal/ast.Tree, handing it to
// internal/executor, and recording it to history — until `exit` runs or
// EOF arrives (twice when jobs are still running: the original's
// one-strike "you have running jobs" warning).
package repl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/executor"
	"github.com/thomas-gons/novash/internal/history"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/lineeditor"
	"github.com/thomas-gons/novash/internal/parser"
	"github.com/thomas-gons/novash/internal/shellstate"
)

const prompt = "$ "

// REPL owns the pieces shell_run threads together: the editor, the parser
// entry point, the executor, and the job/history stores it reports against.
type REPL struct {
	State *shellstate.State
	Jobs  *job.List
	Hist  *history.Store
	Exec  *executor.Executor
	Log   diag.Logger

	editor *lineeditor.Editor
	out    io.Writer
	sigint chan os.Signal
}

// New wires a REPL reading from r and writing prompts/output to w.
func New(state *shellstate.State, jobs *job.List, hist *history.Store, ex *executor.Executor, r io.Reader, w io.Writer, log diag.Logger) *REPL {
	if log == nil {
		log = diag.Nil
	}
	return &REPL{
		State:  state,
		Jobs:   jobs,
		Hist:   hist,
		Exec:   ex,
		Log:    log,
		editor: lineeditor.New(r, w),
		out:    w,
		sigint: make(chan os.Signal, 1),
	}
}

// Init mirrors shell_init: ignore the job-control stop signals (children
// still receive them; only the shell process itself is exempt), then take
// the controlling terminal if stdin is a TTY.
func (r *REPL) Init() error {
	shellstate.IgnoreJobControlSignals()
	signal.Notify(r.sigint, syscall.SIGINT)

	if err := r.State.TakeControllingTerminal(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	if !r.State.JobControl {
		fmt.Fprintln(os.Stderr, "warning: stdin is not a TTY, job control disabled")
	}
	r.State.SetInteractive(r.State.JobControl)
	return nil
}

// Cleanup mirrors shell_cleanup: flush history to disk.
func (r *REPL) Cleanup() {
	signal.Stop(r.sigint)
	if r.Hist != nil {
		if err := r.Hist.Trim(); err != nil {
			r.Log.Warnf("repl: history trim failed: %s", err)
		}
		r.Hist.Close()
	}
}

// Run is shell_run's do-while loop: read a line, parse it, execute it,
// record it, repeat until `exit` runs or EOF arrives with no running jobs
// (or a second consecutive EOF arrives after the running-jobs warning).
func (r *REPL) Run() int {
	warnedExit := false

	for {
		select {
		case <-r.sigint:
			fmt.Fprintln(r.out)
		default:
		}

		r.reportFinishedBackgroundJobs()

		line, err := r.editor.ReadLine(prompt, r.sigint)
		if err == lineeditor.ErrInterrupted {
			fmt.Fprintln(r.out)
			continue
		}
		if err == io.EOF {
			if r.Jobs.Active() > 0 && !warnedExit {
				fmt.Fprintln(r.out, "you have running jobs")
				warnedExit = true
				continue
			}
			fmt.Fprintln(r.out, "exit")
			return r.State.LastExitStatus()
		}
		if err != nil {
			r.Log.Errorf("repl: read error: %s", err)
			return 1
		}

		warnedExit = false
		if line == "" {
			continue
		}

		tree, perr := parser.Parse(line)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "novash: %s\n", perr)
			r.State.SetLastExitStatus(2)
			continue
		}

		if r.Hist != nil {
			if err := r.Hist.Add(time.Now().Unix(), line); err != nil {
				r.Log.Warnf("repl: history write failed: %s", err)
			}
		}

		r.Exec.Run(tree)
		if done, code := r.Exec.ExitRequested(); done {
			return code
		}
	}
}

// reportFinishedBackgroundJobs drains jobs the reaper has already marked
// Done or Killed since the last prompt and prints their status line,
// mirroring shell_run's per-iteration check of sigchld_received. Foreground
// jobs never reach here: waitForeground reports and removes them
// synchronously the moment its own wait returns.
func (r *REPL) reportFinishedBackgroundJobs() {
	current, previous := r.Jobs.Markers()
	for _, j := range r.Jobs.DrainFinishedBackground() {
		diag.PrintJobStatus(j.Line(current, previous), j.State() == job.Killed, false)
	}
}
