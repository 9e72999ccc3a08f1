package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomas-gons/novash/internal/token"
)

func TestTokenizeSimpleWords(t *testing.T) {
	toks, err := Tokenize("echo hello world")
	assert.NoError(t, err)
	assert.Len(t, toks, 4) // 3 words + EOF
	assert.Equal(t, token.Word, toks[0].Kind)
	assert.Equal(t, "echo", toks[0].Parts[0].Text)
	assert.Equal(t, token.EOF, toks[3].Kind)
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := Tokenize("a | b && c || d ; e &")
	assert.NoError(t, err)

	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Word, token.Pipe, token.Word, token.And, token.Word, token.Or,
		token.Word, token.Semi, token.Word, token.Amp, token.EOF,
	}, kinds)
}

func TestTokenizeRedirectionWithFD(t *testing.T) {
	toks, err := Tokenize("cmd 2>> out.log")
	assert.NoError(t, err)
	assert.Equal(t, token.Word, toks[0].Kind)
	assert.Equal(t, token.FD, toks[1].Kind)
	assert.Equal(t, 2, toks[1].FDValue)
	assert.Equal(t, token.Append, toks[2].Kind)
	assert.Equal(t, token.Word, toks[3].Kind)
}

func TestTokenizeSingleQuotesSuppressExpansion(t *testing.T) {
	toks, err := Tokenize(`echo '$HOME *'`)
	assert.NoError(t, err)
	assert.Equal(t, token.Literal, toks[1].Parts[0].Kind)
	assert.Equal(t, "$HOME *", toks[1].Parts[0].Text)
}

func TestTokenizeDoubleQuotesAllowParameterExpansion(t *testing.T) {
	toks, err := Tokenize(`echo "$HOME"`)
	assert.NoError(t, err)
	parts := toks[1].Parts
	assert.Equal(t, token.Parameter, parts[0].Kind)
	assert.Equal(t, "HOME", parts[0].Text)
}

func TestTokenizeTildeOnlyAtWordStart(t *testing.T) {
	toks, err := Tokenize("cat ~/file a~b")
	assert.NoError(t, err)
	assert.Equal(t, token.Tilde, toks[1].Parts[0].Kind)
	assert.NotEqual(t, token.Tilde, toks[2].Parts[0].Kind)
}

func TestTokenizeGlobPattern(t *testing.T) {
	toks, err := Tokenize("ls *.go")
	assert.NoError(t, err)
	assert.Equal(t, token.Glob, toks[1].Parts[0].Kind)
	assert.Equal(t, "*.go", toks[1].Parts[0].Text)
}

func TestTokenizeUnterminatedQuoteErrors(t *testing.T) {
	_, err := Tokenize(`echo "unterminated`)
	assert.Error(t, err)
}

func TestTokenizeNamedEscapes(t *testing.T) {
	toks, err := Tokenize(`echo a\tb`)
	assert.NoError(t, err)
	assert.Equal(t, "a\tb", toks[1].Parts[0].Text)
}
