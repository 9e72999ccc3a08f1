package diag

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	doneColor    = color.New(color.FgGreen)
	stoppedColor = color.New(color.FgYellow)
	killedColor  = color.New(color.FgRed)
)

// PrintJobStatus writes one job-control status line to stderr, coloring it
// by the job's terminal state the way a completed/stopped/signal-killed job
// differs visually in the `jobs` listing. This is a diagnostic convenience
// on top of the line already produced by job.Job.Line (see §4.5); it does
// not replace the prompt, which spec.md §1 leaves to an external collaborator.
func PrintJobStatus(line string, killed, stopped bool) {
	c := doneColor
	switch {
	case killed:
		c = killedColor
	case stopped:
		c = stoppedColor
	}
	fmt.Fprint(os.Stderr, c.Sprint(line))
}
