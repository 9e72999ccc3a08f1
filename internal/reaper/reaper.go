// Package reaper bridges the kernel's child-exit notifications into the
// job table, replacing original_source/src/executor/executor.c's
// signalfd-based SIGCHLD consumption loop with the idiomatic Go
// equivalent: os/signal.Notify delivering SIGCHLD on a channel, drained by
// one long-lived goroutine.
//
// A literal signalfd port was rejected (see DESIGN.md): Go's runtime
// already owns signal delivery, and fighting it with a raw signalfd would
// race the runtime's own SIGCHLD bookkeeping used by os/exec and os.Wait.
// os/signal.Notify is the documented, supported way to observe a signal
// without disturbing that.
package reaper

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/job"
)

// Reaper owns the job table's transition from "a child exited/stopped" to
// "the corresponding job.Process reflects that", and lets callers block
// until a specific job leaves the Running state.
type Reaper struct {
	jobs *job.List
	log  diag.Logger

	mu   sync.Mutex
	cond *sync.Cond

	sigs chan os.Signal
	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns a Reaper watching jobs. Start must be called to begin
// consuming SIGCHLD.
func New(jobs *job.List, log diag.Logger) *Reaper {
	if log == nil {
		log = diag.Nil
	}
	r := &Reaper{jobs: jobs, log: log}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Start installs the SIGCHLD handler and begins the drain goroutine.
func (r *Reaper) Start() {
	r.sigs = make(chan os.Signal, 8)
	r.stop = make(chan struct{})
	signal.Notify(r.sigs, syscall.SIGCHLD)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-r.sigs:
				r.Drain()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop unregisters the SIGCHLD handler and waits for the drain goroutine to
// exit, so tests using go.uber.org/goleak see no leaked goroutine.
func (r *Reaper) Stop() {
	signal.Stop(r.sigs)
	close(r.stop)
	r.wg.Wait()
}

// Drain performs one non-blocking reap pass, mirroring faketree.go's
// WaitChildren inner loop: repeated Wait4(-1, WNOHANG|WUNTRACED|WCONTINUED)
// until no more state changes are pending. It updates every affected
// job.Process/job.Job and wakes any goroutine blocked in WaitJob.
func (r *Reaper) Drain() {
	for {
		var status syscall.WaitStatus
		pid, err := syscall.Wait4(-1, &status, syscall.WNOHANG|syscall.WUNTRACED|syscall.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			return
		}
		r.apply(pid, status)
	}
}

func (r *Reaper) apply(pid int, status syscall.WaitStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, proc := r.jobs.FindByPID(pid)
	if proc == nil {
		r.log.Debugf("reaper: wait4 returned unknown pid %d (status %v)", pid, status)
		return
	}

	switch {
	case status.Stopped():
		proc.State = job.Stopped
	case status.Continued():
		proc.State = job.Running
	case status.Signaled():
		proc.State = job.Killed
		proc.ExitCode = 128 + int(status.Signal())
	case status.Exited():
		proc.State = job.Done
		proc.ExitCode = status.ExitStatus()
	}

	r.cond.Broadcast()
}

// WaitJob blocks until j's overall State is no longer Running, returning
// that terminal (or Stopped) state. It is used by the executor's
// foreground-wait path in place of executor.c's handle_foreground_execution
// poll loop.
func (r *Reaper) WaitJob(j *job.Job) job.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	for j.State() == job.Running {
		r.cond.Wait()
	}
	return j.State()
}
