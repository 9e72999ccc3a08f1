package job

import "fmt"

// Job is one pipeline launched by the executor: a process group plus the
// bookkeeping the job-control builtins (jobs/fg/bg) and the prompt-adjacent
// "[1]+ Done" notifications need, mirroring
// original_source/src/executor/jobs.c's job_t.
type Job struct {
	// ID is a small stable integer, reused after the job it named is
	// removed (see List.Add), matching the spec's lowest-unused-id
	// allocation rule.
	ID         int
	PGID       int
	Processes  []*Process
	Background bool
	Raw        string // verbatim pipeline source text, for `jobs`/history
	// Notified marks that this job's terminal state change has already
	// been picked up for reporting; List.DrainFinishedBackground sets it
	// before the REPL driver prints the corresponding status line, so a
	// job is only ever reported once.
	Notified bool
}

// State derives the Job's overall state from its Processes: Stopped if any
// process is Stopped, Running if any is Running, otherwise Done unless any
// process ended via signal, in which case Killed.
func (j *Job) State() State {
	anyRunning := false
	anyKilled := false
	for _, p := range j.Processes {
		switch p.State {
		case Stopped:
			return Stopped
		case Running:
			anyRunning = true
		case Killed:
			anyKilled = true
		}
	}
	if anyRunning {
		return Running
	}
	if anyKilled {
		return Killed
	}
	return Done
}

// ExitCode is the exit status of the job's last process, per POSIX pipeline
// semantics and this spec's own resolution (see SPEC_FULL.md Part E.3).
func (j *Job) ExitCode() int {
	if len(j.Processes) == 0 {
		return 0
	}
	return j.Processes[len(j.Processes)-1].ExitCode
}

// marker is the "current job" ('+'), "previous job" ('-'), or neither (' ')
// indicator used in the `jobs` listing format.
func marker(j *Job, current, previous int) byte {
	switch j.ID {
	case current:
		return '+'
	case previous:
		return '-'
	default:
		return ' '
	}
}

// Line renders j the way original_source's jobs_job_str does:
// "[%d] %c %7s %s\n".
func (j *Job) Line(current, previous int) string {
	return fmt.Sprintf("[%d] %c %7s %s\n", j.ID, marker(j, current, previous), j.State().String(), j.Raw)
}
