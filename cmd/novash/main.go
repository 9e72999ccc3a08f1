// Command novash is a minimalist interactive shell: lex, parse, expand,
// and run job-control pipelines, with command history persisted to disk.
//
// See faketree/faketree.go in the teacher repository for the sibling use
// of github.com/docker/docker/pkg/reexec this binary's self-reexec builtin
// path (internal/executor/reexec.go) is grounded on; InitReexec must run
// before anything else touches flags, stdio, or shell state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thomas-gons/novash/internal/diag"
	"github.com/thomas-gons/novash/internal/executor"
	"github.com/thomas-gons/novash/internal/history"
	"github.com/thomas-gons/novash/internal/job"
	"github.com/thomas-gons/novash/internal/parser"
	"github.com/thomas-gons/novash/internal/reaper"
	"github.com/thomas-gons/novash/internal/repl"
	"github.com/thomas-gons/novash/internal/shellstate"
)

var version = "dev"

func main() {
	executor.InitReexec()

	var (
		debug        bool
		histFile     string
		noJobControl bool
		showVersion  bool
	)

	root := &cobra.Command{
		Use:   "novash",
		Short: "novash is a minimalist job-control shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println("novash", version)
				return nil
			}
			return runShell(debug, histFile, noJobControl)
		},
	}

	// Registered directly against the *pflag.FlagSet cobra.Command embeds,
	// the same way faketree.go's fs := pflag.NewFlagSet(...) registers
	// --root/--fail/etc., rather than through a config-flag system (see
	// DESIGN.md — novash has no config surface beyond these overrides).
	var flags *pflag.FlagSet = root.Flags()
	flags.BoolVar(&debug, "debug", false, "enable debug-level diagnostics")
	flags.StringVar(&histFile, "histfile", "", "override $HISTFILE")
	flags.BoolVar(&noJobControl, "no-job-control", false, "disable job control even on a TTY")
	flags.BoolVar(&showVersion, "version", false, "print the version and exit")

	root.AddCommand(astCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// astCommand is the Go-idiom descendant of the original's parser_ast_str
// debug dump: lex and parse (never expand or execute) a line given as an
// argument, and print the indented tree.
func astCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast [line]",
		Short: "lex and parse a line, printing its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := parser.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Print(parser.Dump(tree))
			return nil
		},
	}
}

func runShell(debug bool, histFileOverride string, noJobControl bool) error {
	log, err := diag.New(debug)
	if err != nil {
		return fmt.Errorf("novash: could not initialize logging: %w", err)
	}

	state, err := shellstate.New()
	if err != nil {
		return err
	}
	if noJobControl {
		state.JobControl = false
	}

	histPath := state.HistFile
	if histFileOverride != "" {
		histPath = histFileOverride
	}
	hist, err := history.Open(histPath, history.DefaultCapacity)
	if err != nil {
		return err
	}

	jobs := job.NewList()
	rp := reaper.New(jobs, log)
	rp.Start()
	defer rp.Stop()

	ex := executor.New(state, jobs, rp, hist, log)

	r := repl.New(state, jobs, hist, ex, os.Stdin, os.Stdout, log)
	if err := r.Init(); err != nil {
		return err
	}
	defer r.Cleanup()
	// Applied after Init, which turns job control on whenever stdin is a TTY.
	if noJobControl {
		state.JobControl = false
	}

	code := r.Run()
	os.Exit(code)
	return nil
}
