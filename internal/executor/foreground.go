package executor

import (
	"os"
	"syscall"

	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/shellstate"
)

// waitForeground hands the controlling terminal to j's process group (if
// job control is active), blocks until it stops or finishes via the
// reaper, reclaims the terminal and restores the shell's saved termios,
// and reports the result, mirroring handle_foreground_execution.
func (ex *Executor) waitForeground(j *job.Job) (int, error) {
	var saved *shellstate.TerminalState
	if ex.State.JobControl {
		saved, _ = shellstate.SaveTerminal(int(os.Stdin.Fd()))
		if err := shellstate.TcSetpgrp(int(os.Stdin.Fd()), j.PGID); err != nil {
			ex.Log.Warnf("executor: tcsetpgrp to job %d failed: %s", j.ID, err)
		}
	}

	final := ex.Reaper.WaitJob(j)

	if ex.State.JobControl {
		if err := shellstate.TcSetpgrp(int(os.Stdin.Fd()), ex.State.PGID()); err != nil {
			ex.Log.Warnf("executor: tcsetpgrp back to shell failed: %s", err)
		}
		if saved != nil {
			if err := saved.Restore(); err != nil {
				ex.Log.Warnf("executor: restoring terminal modes failed: %s", err)
			}
		}
	}

	current, previous := ex.Jobs.Markers()
	switch final {
	case job.Stopped:
		diag.PrintJobStatus(j.Line(current, previous), false, true)
		return 128 + int(syscall.SIGTSTP), nil
	case job.Killed:
		diag.PrintJobStatus(j.Line(current, previous), true, false)
		ex.Jobs.Remove(j.ID)
		return j.ExitCode(), nil
	default:
		ex.Jobs.Remove(j.ID)
		return j.ExitCode(), nil
	}
}
