package executor

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/docker/docker/pkg/reexec"

	"github.com/thomas-gons/novash/internal/builtin"
	"github.com/thomas-gons/novash/internal/shellstate"
)

// reexecName is the self-reexec entry point name registered below, the
// same technique faketree.go uses (via reexec.Self/reexec.Command/
// reexec.Register/reexec.Init, all from the teacher's own direct
// dependency on github.com/docker/docker) to re-invoke its own binary as a
// privilege-dropped child. Novash reuses it for a different purpose: Go
// cannot fork() without exec() safely once the runtime has started
// goroutines, so a builtin that needs its own pid/pgid to take part in a
// multi-stage pipeline has to run as a freshly exec'd copy of the novash
// binary instead of a true in-process fork.
const reexecName = "novash-builtin"

func init() {
	reexec.Register(reexecName, runBuiltinReexeced)
}

// InitReexec must be called at the very top of main, before flag parsing:
// if this process was invoked as the reexec child, it dispatches the
// requested builtin and never returns.
func InitReexec() {
	if reexec.Init() {
		os.Exit(0)
	}
}

func runBuiltinReexeced() {
	if len(os.Args) < 2 {
		os.Exit(125)
	}
	name := os.Args[1]
	args := os.Args[2:]

	st, err := shellstate.New()
	if err != nil {
		os.Exit(125)
	}

	result := builtin.Dispatch(name, args, &builtin.Env{
		State:  st,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	os.Exit(result.ExitCode)
}

// forkBuiltin starts name as a reexec'd child process, in its own process
// group (pgid 0 means "create a new group", matching the first stage of a
// pipeline; a non-zero pgid joins an already-created group).
func forkBuiltin(name string, args []string, env []string, dir string, stdin, stdout, stderr *os.File, pgid int) (*exec.Cmd, error) {
	cmd := reexec.Command(append([]string{reexecName, name}, args...)...)
	cmd.Env = env
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: pgid}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
