package executor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thomas-gons/novash/internal/shellerr"
)

// resolvePath mirrors execute_process's lookup: a name containing a '/'
// is used directly (POSIX's PATH-bypass rule, see SPEC_FULL.md Part E.4).
// Otherwise it is searched for in pathEnv (the shell's own $PATH, which may
// differ from this process's os-level environment after `export
// PATH=...`), rather than delegating to exec.LookPath, which always reads
// the real process environment.
func resolvePath(name string, pathEnv string) (string, error) {
	if strings.Contains(name, "/") {
		if isExecutable(name) {
			return name, nil
		}
		return "", &shellerr.NoSuchCommand{Name: name}
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &shellerr.NoSuchCommand{Name: name}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
