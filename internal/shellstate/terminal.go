package shellstate

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// IsTerminal reports whether fd refers to a terminal, using golang.org/x/term
// (a direct teacher dependency) rather than github.com/mattn/go-isatty,
// which is only a transitive dependency of the teacher's color/cobra stack
// and would duplicate this one concern (see DESIGN.md).
func IsTerminal(fd int) bool { return term.IsTerminal(fd) }

// TakeControllingTerminal mirrors shell_init's job-control setup in
// original_source/src/shell/shell.c: put the shell in its own process
// group and hand that group ownership of the controlling terminal. It is a
// no-op, returning JobControl=false, when stdin is not a terminal (the
// Non-goal described in spec.md §4.5 for scripted/non-interactive runs).
func (s *State) TakeControllingTerminal() error {
	if !IsTerminal(int(os.Stdin.Fd())) {
		s.JobControl = false
		return nil
	}

	if err := unix.Setpgid(0, 0); err != nil {
		return fmt.Errorf("shellstate: setpgid: %w", err)
	}
	s.pgid = os.Getpgrp()

	if err := TcSetpgrp(int(os.Stdin.Fd()), s.pgid); err != nil {
		return fmt.Errorf("shellstate: tcsetpgrp: %w", err)
	}

	s.JobControl = true
	return nil
}

// TcGetpgrp and TcSetpgrp wrap the TIOCGPGRP/TIOCSPGRP ioctls used to read
// and transfer controlling-terminal ownership between process groups. There
// is no stdlib or golang.org/x/term wrapper for this pair (x/term only
// covers termios raw-mode get/set), so they are implemented directly on top
// of golang.org/x/sys/unix, the same low-level layer x/term itself is built
// on.
func TcGetpgrp(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

func TcSetpgrp(fd, pgid int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}

// TerminalState is a saved termios snapshot, restored after a foreground
// job that may have left the terminal in raw/cooked mode of its own
// choosing relinquishes control back to the shell.
type TerminalState struct {
	fd    int
	saved *term.State
}

// SaveTerminal captures the current termios settings for fd.
func SaveTerminal(fd int) (*TerminalState, error) {
	st, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	return &TerminalState{fd: fd, saved: st}, nil
}

// Restore reapplies the saved termios settings.
func (t *TerminalState) Restore() error {
	return term.Restore(t.fd, t.saved)
}

// IgnoreJobControlSignals ignores SIGTTOU, SIGTTIN, and SIGTSTP in the
// shell process itself, mirroring shell_init's sigaction(SIG_IGN, ...)
// calls: without this, backgrounding the shell's own process group (which
// Setpgid/TcSetpgrp momentarily does while handing off the terminal) would
// stop the shell.
func IgnoreJobControlSignals() {
	signal_ignore(syscall.SIGTTOU)
	signal_ignore(syscall.SIGTTIN)
	signal_ignore(syscall.SIGTSTP)
}
