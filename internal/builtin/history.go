package builtin

import "fmt"

// historyCmd lists the in-memory history ring, modeled on builtin_jobs's
// walk-and-print shape but over internal/history.Store instead of the job
// table; see SPEC_FULL.md Part D.2.
func historyCmd(args []string, env *Env) Result {
	if env.History == nil {
		return Result{ExitCode: 0}
	}
	for i, entry := range env.History.Entries() {
		fmt.Fprintf(env.Stdout, "%5d  %s\n", i+1, entry.Command)
	}
	return Result{ExitCode: 0}
}
