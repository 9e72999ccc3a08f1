package expander

import (
	"fmt"
	"os/user"
)

// lookupUserHome resolves `~user` against the system user database, per
// expand_tilde_str's getpwnam branch. Failure there aborts the whole
// command in the original; the Go expander returns an error for the same
// reason rather than silently falling back.
func lookupUserHome(name string) (string, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("expander: no such user %q: %w", name, err)
	}
	return u.HomeDir, nil
}
