// Package executor runs a parsed internal/ast.Tree: it expands each
// command's words, forks and execs pipelines (or runs a lone builtin
// in-process), tracks the resulting internal/job.Job, and waits for
// foreground work to finish, mirroring the exec_node/run_job pipeline of
// original_source/src/executor/executor.c.
package executor

import (
	"fmt"
	"os"

	"github.com/thomas-gons/novash/internal/ast"
	"github.com/thomas-gons/novash/internal/builtin"
	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/expander"
	"github.com/thomas-gons/novash/internal/history"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/reaper"
	"github.com/thomas-gons/novash/internal/shellstate"
)

// Executor ties shell state, the job table, the signal bridge, and history
// together to run a parse tree.
type Executor struct {
	State   *shellstate.State
	Jobs    *job.List
	Reaper  *reaper.Reaper
	History *history.Store
	Log     diag.Logger

	exitRequested bool
	exitCode      int
}

// New returns an Executor. log may be nil, in which case diagnostics are
// discarded (see diag.Nil).
func New(state *shellstate.State, jobs *job.List, r *reaper.Reaper, hist *history.Store, log diag.Logger) *Executor {
	if log == nil {
		log = diag.Nil
	}
	return &Executor{State: state, Jobs: jobs, Reaper: r, History: hist, Log: log}
}

// ExitRequested reports whether an `exit` builtin has run in the shell's
// own process, and the code it requested.
func (ex *Executor) ExitRequested() (bool, int) { return ex.exitRequested, ex.exitCode }

// Run executes every top-level node of tree in order (the Sequence
// behavior), updating $? after each and logging (rather than aborting the
// whole line on) a single node's failure, matching a normal shell's
// ';'-separated semantics.
func (ex *Executor) Run(tree *ast.Tree) {
	for _, n := range tree.Nodes {
		code, err := ex.execNode(n)
		if err != nil {
			ex.Log.Debugf("executor: %s", err)
			fmt.Fprintf(os.Stderr, "novash: %s\n", err)
		}
		ex.State.SetLastExitStatus(code)
		if ex.exitRequested {
			return
		}
	}
}

func (ex *Executor) execNode(n ast.Node) (int, error) {
	switch v := n.(type) {
	case *ast.Command:
		return ex.execPipeline(&ast.Pipeline{Commands: []*ast.Command{v}})
	case *ast.Pipeline:
		return ex.execPipeline(v)
	case *ast.Conditional:
		leftCode, err := ex.execNode(v.Left)
		if err != nil {
			return leftCode, err
		}
		if ex.exitRequested {
			return leftCode, nil
		}
		takeRight := (v.Op == ast.OpAnd && leftCode == 0) || (v.Op == ast.OpOr && leftCode != 0)
		if !takeRight {
			return leftCode, nil
		}
		return ex.execNode(v.Right)
	}
	return 1, fmt.Errorf("executor: unknown node type %T", n)
}

// runBuiltinInProcess mirrors handle_pure_builtin_execution: a lone,
// non-backgrounded builtin runs without forking, so `cd`, `export`,
// `unset`, and `exit` can mutate the shell's own state.
func (ex *Executor) runBuiltinInProcess(cmd *ast.Command) (int, error) {
	argv, err := ex.expandArgv(cmd)
	if err != nil {
		return 1, err
	}

	files, err := openFiles(cmd.Redir, ex.State)
	if err != nil {
		return 126, err
	}
	defer closeAll(files)

	env := &builtin.Env{
		State:   ex.State,
		Jobs:    ex.Jobs,
		History: ex.History,
		Reaper:  ex.Reaper,
		Stdin:   stdioFor(files, 0, nil, os.Stdin),
		Stdout:  stdioFor(files, 1, nil, os.Stdout),
		Stderr:  stdioFor(files, 2, nil, os.Stderr),
	}

	result := builtin.Dispatch(argv[0], argv[1:], env)
	if result.ShouldExit {
		ex.exitRequested = true
		ex.exitCode = result.ExitCode
	}
	return result.ExitCode, nil
}

func (ex *Executor) expandArgv(cmd *ast.Command) ([]string, error) {
	var argv []string
	for _, parts := range cmd.Argv {
		words, err := expander.ExpandWord(parts, ex.State)
		if err != nil {
			return nil, err
		}
		argv = append(argv, words...)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("executor: empty command after expansion")
	}
	return argv, nil
}
