// Package expander turns the token.Part fragments of a parsed word into the
// final argv/redirection-target strings the executor runs, following the
// three passes described in original_source/src/expander/pipeline.c:
// parameter expansion, tilde expansion, then (for unquoted words containing
// a glob fragment) filesystem globbing.
package expander

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/thomas-gons/novash/internal/token"
)

// Environment is the read-only view of shell state the expander needs. It is
// satisfied by internal/shellstate.State, kept as a narrow interface here to
// avoid a dependency cycle between expander and shellstate.
type Environment interface {
	Getenv(name string) (string, bool)
	LastExitStatus() int
	PID() int
	LastBackgroundPID() int
	OptionFlags() string
}

// ExpandWord runs all three passes over parts and returns the resulting
// argv words: normally exactly one, or one or more when an unquoted glob
// fragment is present and matches filesystem entries. A glob that matches
// nothing is an error.
func ExpandWord(parts []token.Part, env Environment) ([]string, error) {
	resolved, hasUnquotedGlob, err := expandParamsAndTilde(parts, env)
	if err != nil {
		return nil, err
	}

	full := joinParts(resolved)
	if !hasUnquotedGlob {
		return []string{full}, nil
	}

	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("expander: bad glob pattern %q: %w", full, err)
	}
	if len(matches) == 0 {
		// No match aborts the command, mirroring pipeline.c:121-126: it
		// prints "no matches found" and returns NULL, which the caller
		// treats as an invalid command (skipped, no fork, exit status 1).
		return nil, fmt.Errorf("expander: no matches found for glob pattern %q", full)
	}
	sort.Strings(matches)
	return matches, nil
}

// ExpandRedirTarget runs only the parameter and tilde passes, per
// expand_redirection_target: a redirection target is never split or globbed.
func ExpandRedirTarget(parts []token.Part, env Environment) (string, error) {
	resolved, _, err := expandParamsAndTilde(parts, env)
	if err != nil {
		return "", err
	}
	return joinParts(resolved), nil
}

func joinParts(parts []token.Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// expandParamsAndTilde returns a copy of parts with Parameter and Tilde
// fragments replaced by resolved Literal text, mirroring
// pass_expand_params/pass_expand_tilde, which rewrite WORD_VARIABLE/
// WORD_TILDE fragments to WORD_LITERAL; parts itself is left unchanged. It
// reports whether any fragment is an unquoted Glob, for the caller's glob
// pass.
func expandParamsAndTilde(parts []token.Part, env Environment) ([]token.Part, bool, error) {
	out := make([]token.Part, len(parts))
	hasUnquotedGlob := false
	for i, p := range parts {
		switch p.Kind {
		case token.Parameter:
			val := expandParameter(p.Text, env)
			out[i] = token.Part{Kind: token.Literal, Text: val, Quoted: p.Quoted}
		case token.Tilde:
			val, err := expandTilde(p.Text)
			if err != nil {
				return nil, false, err
			}
			out[i] = token.Part{Kind: token.Literal, Text: val, Quoted: p.Quoted}
		case token.Glob:
			out[i] = p
			if !p.Quoted {
				hasUnquotedGlob = true
			}
		default:
			out[i] = p
		}
	}
	return out, hasUnquotedGlob, nil
}

// expandTilde resolves a bare `~` or `~user` prefix, per
// expand_tilde_str/pass_expand_tilde. `~` and `~/rest` use the invoking
// user's home directory (via mitchellh/go-homedir, which handles the
// $HOME-unset fallback to os/user the same way the C source's getpwuid
// fallback does); `~user` looks the named user up in the system database.
func expandTilde(user string) (string, error) {
	if user == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("expander: could not resolve ~: %w", err)
		}
		return home, nil
	}
	return lookupUserHome(user)
}
