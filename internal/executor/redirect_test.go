package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-gons/novash/internal/ast"
	"github.com/thomas-gons/novash/internal/token"
)

type pathOnlyEnv struct{ home string }

func (e pathOnlyEnv) Getenv(name string) (string, bool) { return "", false }
func (e pathOnlyEnv) LastExitStatus() int                { return 0 }
func (e pathOnlyEnv) PID() int                           { return 0 }
func (e pathOnlyEnv) LastBackgroundPID() int             { return 0 }
func (e pathOnlyEnv) OptionFlags() string                { return "" }

func targetPart(path string) []token.Part {
	return []token.Part{{Kind: token.Literal, Text: path}}
}

func TestOpenFilesOutputTruncates(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))

	files, err := openFiles([]ast.Redirection{{Kind: ast.RedirOut, FD: 1, Target: targetPart(out)}}, pathOnlyEnv{})
	require.NoError(t, err)
	defer closeAll(files)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestOpenFilesInputMissingFileErrors(t *testing.T) {
	_, err := openFiles([]ast.Redirection{{Kind: ast.RedirIn, FD: 0, Target: targetPart("/no/such/file")}}, pathOnlyEnv{})
	assert.Error(t, err)
}

func TestOpenFilesAppendPreservesExistingContent(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("existing\n"), 0o644))

	files, err := openFiles([]ast.Redirection{{Kind: ast.RedirAppend, FD: 1, Target: targetPart(out)}}, pathOnlyEnv{})
	require.NoError(t, err)
	files[1].WriteString("more\n")
	closeAll(files)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "existing\nmore\n", string(contents))
}
