// Package shellstate holds the shell's process-wide state explicitly in a
// *State value threaded through every component, rather than behind the
// package-level singleton original_source/src/shell/state.c uses
// (shell_state_get()) — the explicit-threading alternative spec.md's Design
// Notes call out.
package shellstate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// HistFilename is the default basename for the history file, appended to
// the shell's starting working directory, mirroring HIST_FILENAME in
// original_source/src/history/history.c.
const HistFilename = ".novash_history"

// State is the shell's global state: the environment table, the working
// directory, the exit status of the last foreground command, and the pid of
// the most recently started background job, per spec.md §3 and §6.
type State struct {
	mu sync.Mutex

	env map[string]string
	cwd string

	lastExitStatus int
	lastBgPID      int

	pid  int
	pgid int

	// JobControl is false when stdin is not a TTY (spec.md §4.5's
	// Non-goal: no job control in scripted/non-interactive mode), or when
	// disabled with --no-job-control.
	JobControl bool
	// interactive is set by the REPL driver when an '-i' style run is in
	// effect; it feeds $- via OptionFlags.
	interactive bool

	HistFile string
}

// New seeds a State from the process environment, mirroring state.c's
// shell_state_init: HOME and PATH come from the environment as-is, SHELL is
// resolved to this executable's own path, and HISTFILE defaults to
// <cwd>/.novash_history if not already set in the environment.
func New() (*State, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("shellstate: could not determine working directory: %w", err)
	}

	s := &State{
		env:  make(map[string]string),
		cwd:  cwd,
		pid:  os.Getpid(),
		pgid: os.Getpgrp(),
	}

	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				s.env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}

	if self, err := os.Executable(); err == nil {
		s.env["SHELL"] = self
	}

	if _, ok := s.env["HISTFILE"]; !ok {
		s.env["HISTFILE"] = filepath.Join(cwd, HistFilename)
	}
	s.HistFile = s.env["HISTFILE"]

	return s, nil
}

// Getenv implements expander.Environment.
func (s *State) Getenv(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.env[name]
	return v, ok
}

// Setenv sets or overwrites an environment variable, backing the `export`
// builtin supplemented in SPEC_FULL.md Part D.4.
func (s *State) Setenv(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env[name] = value
}

// Unsetenv removes an environment variable, backing the `unset` builtin.
func (s *State) Unsetenv(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.env, name)
}

// Environ returns the table as a NAME=value slice suitable for
// os/exec.Cmd.Env.
func (s *State) Environ() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.env))
	for k, v := range s.env {
		out = append(out, k+"="+v)
	}
	return out
}

// Cwd returns the shell's current working directory as tracked in state,
// independent of the OS-level working directory of any child.
func (s *State) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// SetCwd updates the tracked working directory after a successful `cd`.
func (s *State) SetCwd(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cwd = dir
}

// LastExitStatus implements expander.Environment ($?).
func (s *State) LastExitStatus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastExitStatus
}

// SetLastExitStatus records the exit status of the most recently completed
// foreground command or pipeline.
func (s *State) SetLastExitStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastExitStatus = code
}

// PID implements expander.Environment ($$).
func (s *State) PID() int { return s.pid }

// PGID returns the shell's own process group.
func (s *State) PGID() int { return s.pgid }

// LastBackgroundPID implements expander.Environment ($!).
func (s *State) LastBackgroundPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBgPID
}

// SetLastBackgroundPID records the pid of the most recently started
// background job's last process.
func (s *State) SetLastBackgroundPID(pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBgPID = pid
}

// OptionFlags implements expander.Environment ($-).
func (s *State) OptionFlags() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := ""
	if s.interactive {
		flags += "i"
	}
	if s.JobControl {
		flags += "m"
	}
	return flags
}

// SetInteractive records whether the shell is driving an interactive
// session, feeding OptionFlags' "i" bit.
func (s *State) SetInteractive(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactive = v
}
