package repl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/executor"
	"github.com/thomas-gons/novash/internal/history"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/reaper"
	"github.com/thomas-gons/novash/internal/shellstate"
)

func newTestREPL(t *testing.T, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	state, err := shellstate.New()
	require.NoError(t, err)
	state.JobControl = false

	jobs := job.NewList()
	r := reaper.New(jobs, diag.Nil)
	r.Start()
	t.Cleanup(r.Stop)

	hist, err := history.Open(filepath.Join(t.TempDir(), "hist"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })

	ex := executor.New(state, jobs, r, hist, diag.Nil)

	var out bytes.Buffer
	rp := New(state, jobs, hist, ex, strings.NewReader(input), &out, diag.Nil)
	return rp, &out
}

func TestRunExitsOnEOFWithNoJobs(t *testing.T) {
	rp, out := newTestREPL(t, "")
	code := rp.Run()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "exit")
}

func TestRunExecutesExitBuiltin(t *testing.T) {
	rp, _ := newTestREPL(t, "exit 4\n")
	code := rp.Run()
	assert.Equal(t, 4, code)
}

func TestRunSkipsBlankLines(t *testing.T) {
	rp, _ := newTestREPL(t, "\n\nexit 0\n")
	code := rp.Run()
	assert.Equal(t, 0, code)
}

func TestRunRecordsHistory(t *testing.T) {
	rp, _ := newTestREPL(t, "/bin/true\nexit 0\n")
	rp.Run()
	entries := rp.Hist.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "/bin/true", entries[0].Command)
}

func TestRunReportsParseErrorsAndContinues(t *testing.T) {
	rp, _ := newTestREPL(t, "| bad\nexit 0\n")
	code := rp.Run()
	assert.Equal(t, 0, code)
}

func TestRunReportsAndRemovesFinishedBackgroundJob(t *testing.T) {
	// The foreground /bin/sleep gives the backgrounded /bin/true, which
	// exits almost immediately, time to be reaped before the next prompt
	// loop iteration drains it, without a real-time sleep in the test
	// itself racing the assertion below.
	rp, _ := newTestREPL(t, "/bin/true &\n/bin/sleep 0.1\nexit 0\n")
	code := rp.Run()
	assert.Equal(t, 0, code)
	assert.Equal(t, 0, rp.Jobs.Len(), "a finished background job must be drained before the REPL exits")
}
