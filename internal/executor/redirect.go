package executor

import (
	"fmt"
	"os"

	"github.com/thomas-gons/novash/internal/ast"
	"github.com/thomas-gons/novash/internal/expander"
)

// openFiles resolves a command's redirections to open *os.File handles
// keyed by target fd, mirroring handle_redirection. The caller is
// responsible for closing every returned file once the command (or the
// fork that inherits it) no longer needs it.
func openFiles(redirs []ast.Redirection, env expander.Environment) (map[int]*os.File, error) {
	files := make(map[int]*os.File, len(redirs))
	for _, r := range redirs {
		target, err := expander.ExpandRedirTarget(r.Target, env)
		if err != nil {
			closeAll(files)
			return nil, err
		}

		var f *os.File
		switch r.Kind {
		case ast.RedirIn:
			f, err = os.Open(target)
		case ast.RedirOut:
			f, err = os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		case ast.RedirAppend:
			f, err = os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		default:
			err = fmt.Errorf("executor: unknown redirection kind %d", r.Kind)
		}
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("executor: %s: %w", target, err)
		}
		files[r.FD] = f
	}
	return files, nil
}

func closeAll(files map[int]*os.File) {
	for _, f := range files {
		f.Close()
	}
}
