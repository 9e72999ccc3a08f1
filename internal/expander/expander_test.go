package expander

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-gons/novash/internal/token"
)

type stubEnv struct {
	vars   map[string]string
	status int
	pid    int
	bgPID  int
	flags  string
}

func (s stubEnv) Getenv(name string) (string, bool) { v, ok := s.vars[name]; return v, ok }
func (s stubEnv) LastExitStatus() int                { return s.status }
func (s stubEnv) PID() int                           { return s.pid }
func (s stubEnv) LastBackgroundPID() int             { return s.bgPID }
func (s stubEnv) OptionFlags() string                { return s.flags }

func lit(text string) token.Part { return token.Part{Kind: token.Literal, Text: text} }
func param(name string) token.Part {
	return token.Part{Kind: token.Parameter, Text: name}
}

func TestExpandWordParameterSubstitution(t *testing.T) {
	env := stubEnv{vars: map[string]string{"FOO": "bar"}}
	words, err := ExpandWord([]token.Part{lit("x="), param("FOO")}, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"x=bar"}, words)
}

func TestExpandWordUnsetParameterIsEmpty(t *testing.T) {
	env := stubEnv{vars: map[string]string{}}
	words, err := ExpandWord([]token.Part{param("NOPE")}, env)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, words)
}

func TestExpandWordSpecialParameters(t *testing.T) {
	env := stubEnv{status: 7, pid: 42, bgPID: 99, flags: "im"}
	words, _ := ExpandWord([]token.Part{param("?")}, env)
	assert.Equal(t, []string{"7"}, words)
	words, _ = ExpandWord([]token.Part{param("$")}, env)
	assert.Equal(t, []string{"42"}, words)
	words, _ = ExpandWord([]token.Part{param("!")}, env)
	assert.Equal(t, []string{"99"}, words)
	words, _ = ExpandWord([]token.Part{param("-")}, env)
	assert.Equal(t, []string{"im"}, words)
}

func TestExpandWordGlobExpandsToMatches(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}

	pattern := token.Part{Kind: token.Glob, Text: filepath.Join(dir, "*.go")}
	words, err := ExpandWord([]token.Part{pattern}, stubEnv{vars: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")}, words)
}

func TestExpandWordGlobNoMatchIsAnError(t *testing.T) {
	pattern := token.Part{Kind: token.Glob, Text: "/no/such/dir/*.nope"}
	words, err := ExpandWord([]token.Part{pattern}, stubEnv{vars: map[string]string{}})
	assert.Error(t, err)
	assert.Nil(t, words)
}

func TestExpandWordQuotedGlobIsLiteral(t *testing.T) {
	pattern := token.Part{Kind: token.Glob, Text: "*.go", Quoted: true}
	words, err := ExpandWord([]token.Part{pattern}, stubEnv{vars: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"*.go"}, words)
}

func TestExpandRedirTargetNeverGlobsOrSplits(t *testing.T) {
	env := stubEnv{vars: map[string]string{"OUT": "out.log"}}
	target, err := ExpandRedirTarget([]token.Part{param("OUT")}, env)
	require.NoError(t, err)
	assert.Equal(t, "out.log", target)
}

func TestExpandTildeBareUsesHome(t *testing.T) {
	words, err := ExpandWord([]token.Part{{Kind: token.Tilde, Text: ""}}, stubEnv{vars: map[string]string{}})
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.NotEmpty(t, words[0])
}
