package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/thomas-gons/novash/internal/ast"
	"github.com/thomas-gons/novash/internal/builtin"
	"github.com/thomas-gons/novash/internal/expander"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/shellerr"
)

// stage is one fully-expanded pipeline command, ready to be started as a
// process, mirroring compile_command_job/compile_pipeline_job.
type stage struct {
	argv      []string
	redir     map[int]*os.File
	isBuiltin bool
}

// expandFailure wraps a compileStage word-expansion error so execPipeline
// can tell it apart from an unrelated failure (e.g. a bad redirection
// target) and report exit status 1 rather than the cannot-execute 126.
type expandFailure struct{ err error }

func (e *expandFailure) Error() string { return e.err.Error() }
func (e *expandFailure) Unwrap() error { return e.err }

func (ex *Executor) compileStage(cmd *ast.Command) (*stage, error) {
	var argv []string
	for _, parts := range cmd.Argv {
		words, err := expander.ExpandWord(parts, ex.State)
		if err != nil {
			return nil, &expandFailure{err}
		}
		argv = append(argv, words...)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("executor: empty command after expansion")
	}

	redir, err := openFiles(cmd.Redir, ex.State)
	if err != nil {
		return nil, err
	}

	_, isBuiltin := builtin.Lookup(argv[0])
	return &stage{argv: argv, redir: redir, isBuiltin: isBuiltin}, nil
}

// execPipeline runs p as compile_pipeline_job + run_job do in the original:
// a single non-backgrounded builtin runs in the shell's own process; every
// other shape forks one process per stage, wires pipes between them, and
// either waits in the foreground or registers the job and returns
// immediately in the background.
func (ex *Executor) execPipeline(p *ast.Pipeline) (int, error) {
	bg := p.Commands[len(p.Commands)-1].Bg

	if len(p.Commands) == 1 && !bg {
		if _, ok := builtin.Lookup(ex.firstWord(p.Commands[0])); ok {
			return ex.runBuiltinInProcess(p.Commands[0])
		}
	}

	stages := make([]*stage, len(p.Commands))
	for i, cmd := range p.Commands {
		st, err := ex.compileStage(cmd)
		if err != nil {
			for _, s := range stages[:i] {
				if s != nil {
					closeAll(s.redir)
				}
			}
			var ef *expandFailure
			if errors.As(err, &ef) {
				return 1, err
			}
			return 126, err
		}
		stages[i] = st
	}

	j, err := ex.startPipeline(stages, rawOf(p), bg)
	if err != nil {
		var ec shellerr.ExitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode(), err
		}
		return 126, err
	}

	if bg {
		ex.State.SetLastBackgroundPID(j.Processes[len(j.Processes)-1].PID)
		fmt.Fprintf(os.Stdout, "[%d] %d\n", j.ID, j.PGID)
		return 0, nil
	}

	return ex.waitForeground(j)
}

func (ex *Executor) firstWord(cmd *ast.Command) string {
	if len(cmd.Argv) == 0 {
		return ""
	}
	words, err := expander.ExpandWord(cmd.Argv[0], ex.State)
	if err != nil || len(words) == 0 {
		return ""
	}
	return words[0]
}

// startPipeline forks and execs each stage, wiring anonymous pipes between
// adjacent stages and placing every stage in the first stage's process
// group, mirroring fork_process's pgid-establishment rule. Go's os/exec
// already performs the post-fork, pre-exec setpgid(0, pgid) call the
// original implements by hand with a synchronization pipe, so no
// additional handshake is needed here to avoid the race.
func (ex *Executor) startPipeline(stages []*stage, raw string, bg bool) (*job.Job, error) {
	n := len(stages)
	readers := make([]*os.File, n)
	writers := make([]*os.File, n)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, err
		}
		readers[i+1] = r
		writers[i] = w
	}

	procs := make([]*job.Process, 0, n)
	var pgid int
	cleanup := func() {
		for _, st := range stages {
			closeAll(st.redir)
		}
		for _, f := range readers {
			if f != nil {
				f.Close()
			}
		}
		for _, f := range writers {
			if f != nil {
				f.Close()
			}
		}
	}

	for i, st := range stages {
		stdin := stdioFor(st.redir, 0, readers[i], os.Stdin)
		stdout := stdioFor(st.redir, 1, writers[i], os.Stdout)
		stderr := stdioFor(st.redir, 2, nil, os.Stderr)

		var pid int
		if st.isBuiltin {
			cmd, err := forkBuiltin(st.argv[0], st.argv[1:], ex.State.Environ(), ex.State.Cwd(), stdin, stdout, stderr, pgid)
			if err != nil {
				cleanup()
				return nil, err
			}
			pid = cmd.Process.Pid
		} else {
			path, err := resolvePath(st.argv[0], pathOf(ex.State))
			if err != nil {
				cleanup()
				return nil, err
			}
			cmd := exec.Command(path)
			cmd.Args = st.argv
			cmd.Env = ex.State.Environ()
			cmd.Dir = ex.State.Cwd()
			cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
			cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: pgid}
			if err := cmd.Start(); err != nil {
				cleanup()
				return nil, fmt.Errorf("%s: %w", st.argv[0], err)
			}
			pid = cmd.Process.Pid
		}

		if i == 0 {
			pgid = pid
		}
		procs = append(procs, &job.Process{PID: pid, Argv: st.argv, State: job.Running})

		if readers[i] != nil {
			readers[i].Close()
		}
		if writers[i] != nil {
			writers[i].Close()
		}
		closeAll(st.redir)
	}

	j := &job.Job{PGID: pgid, Processes: procs, Background: bg, Raw: raw}
	ex.Jobs.Add(j)
	return j, nil
}

// stdioFor picks, in priority order, an explicit redirection for fd, the
// pipe endpoint connecting this stage to its neighbor, or the shell's own
// stdio (inherited when a pipeline has no redirection on that descriptor).
func stdioFor(redir map[int]*os.File, fd int, pipeEnd *os.File, inherited *os.File) *os.File {
	if f, ok := redir[fd]; ok {
		return f
	}
	if pipeEnd != nil {
		return pipeEnd
	}
	return inherited
}

func pathOf(env interface{ Getenv(string) (string, bool) }) string {
	v, _ := env.Getenv("PATH")
	return v
}

func rawOf(p *ast.Pipeline) string {
	parts := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		parts[i] = c.Raw
	}
	raw := strings.Join(parts, " | ")
	if p.Commands[len(p.Commands)-1].Bg {
		raw += " &"
	}
	return raw
}
