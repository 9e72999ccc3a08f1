package reaper

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/thomas-gons/novash/internal/job"
)

func TestReaperReapsExitedChild(t *testing.T) {
	defer goleak.VerifyNone(t)

	jobs := job.NewList()
	cmd := exec.Command("true")
	assert.NoError(t, cmd.Start())

	j := &job.Job{PGID: cmd.Process.Pid, Processes: []*job.Process{{PID: cmd.Process.Pid, State: job.Running}}}
	jobs.Add(j)

	r := New(jobs, nil)
	r.Start()
	defer r.Stop()

	deadline := time.After(2 * time.Second)
	for j.State() == job.Running {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for reaper to observe child exit")
		case <-time.After(10 * time.Millisecond):
		}
	}
	assert.Equal(t, job.Done, j.State())
	assert.Equal(t, 0, j.Processes[0].ExitCode)
}
