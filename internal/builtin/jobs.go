package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomas-gons/novash/internal/job"
)

// jobs mirrors builtin_jobs: print every tracked job's status line. Jobs
// that have finished (Done or Killed) are dropped from the table after
// being reported once, the same one-shot-notification role
// job.Job.Notified plays for the REPL driver's unprompted status lines.
func jobs(args []string, env *Env) Result {
	current, previous := env.Jobs.Markers()
	var finished []int
	for _, j := range env.Jobs.All() {
		fmt.Fprint(env.Stdout, j.Line(current, previous))
		if st := j.State(); st == job.Done || st == job.Killed {
			finished = append(finished, j.ID)
		}
	}
	for _, id := range finished {
		env.Jobs.Remove(id)
	}
	return Result{ExitCode: 0}
}

// resolveJobArg parses a `%n` or bare `n` job-id argument, or with no
// argument at all targets the job-list tail regardless of its run state,
// per SPEC_FULL.md Part E.5.
func resolveJobArg(args []string, jobs *job.List) (*job.Job, error) {
	if len(args) == 0 {
		if j := jobs.Current(); j != nil {
			return j, nil
		}
		return nil, fmt.Errorf("no current job")
	}
	spec := strings.TrimPrefix(args[0], "%")
	id, err := strconv.Atoi(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: no such job", args[0])
	}
	j := jobs.Get(id)
	if j == nil {
		return nil, fmt.Errorf("%%%d: no such job", id)
	}
	return j, nil
}
