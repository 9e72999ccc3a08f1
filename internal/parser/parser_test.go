package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-gons/novash/internal/ast"
)

func TestParseSingleCommand(t *testing.T) {
	tree, err := Parse("echo hi")
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 1)
	cmd, ok := tree.Nodes[0].(*ast.Command)
	require.True(t, ok)
	assert.Len(t, cmd.Argv, 2)
	assert.Equal(t, "echo hi", cmd.Raw)
	assert.False(t, cmd.Bg)
}

func TestParsePipelineCollapsesSingleCommand(t *testing.T) {
	tree, err := Parse("ls")
	require.NoError(t, err)
	_, ok := tree.Nodes[0].(*ast.Command)
	assert.True(t, ok)
}

func TestParsePipelineMultipleStages(t *testing.T) {
	tree, err := Parse("ls | grep go | wc -l")
	require.NoError(t, err)
	pipe, ok := tree.Nodes[0].(*ast.Pipeline)
	require.True(t, ok)
	assert.Len(t, pipe.Commands, 3)
}

func TestParseBackgroundAttachesToRightmostCommand(t *testing.T) {
	tree, err := Parse("sleep 1 | sleep 2 &")
	require.NoError(t, err)
	pipe, ok := tree.Nodes[0].(*ast.Pipeline)
	require.True(t, ok)
	assert.False(t, pipe.Commands[0].Bg)
	assert.True(t, pipe.Commands[1].Bg)
}

func TestParseBackgroundSeparatesStatements(t *testing.T) {
	tree, err := Parse("sleep 1 & jobs")
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 2)

	first, ok := tree.Nodes[0].(*ast.Command)
	require.True(t, ok)
	assert.True(t, first.Bg)
	assert.Equal(t, "sleep 1", first.Raw)

	second, ok := tree.Nodes[1].(*ast.Command)
	require.True(t, ok)
	assert.False(t, second.Bg)
	assert.Equal(t, "jobs", second.Raw)
}

func TestParseConditionalLeftAssociative(t *testing.T) {
	tree, err := Parse("a && b || c")
	require.NoError(t, err)
	top, ok := tree.Nodes[0].(*ast.Conditional)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, top.Op)
	left, ok := top.Left.(*ast.Conditional)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, left.Op)
}

func TestParseSemicolonSequence(t *testing.T) {
	tree, err := Parse("a; b; c")
	require.NoError(t, err)
	assert.Len(t, tree.Nodes, 3)
}

func TestParseRedirectionDefaultFD(t *testing.T) {
	tree, err := Parse("cmd < in.txt > out.txt 2>> err.log")
	require.NoError(t, err)
	cmd := tree.Nodes[0].(*ast.Command)
	require.Len(t, cmd.Redir, 3)
	assert.Equal(t, ast.RedirIn, cmd.Redir[0].Kind)
	assert.Equal(t, 0, cmd.Redir[0].FD)
	assert.Equal(t, ast.RedirOut, cmd.Redir[1].Kind)
	assert.Equal(t, 1, cmd.Redir[1].FD)
	assert.Equal(t, ast.RedirAppend, cmd.Redir[2].Kind)
	assert.Equal(t, 2, cmd.Redir[2].FD)
}

func TestParseEmptyCommandErrors(t *testing.T) {
	_, err := Parse("| ls")
	assert.Error(t, err)
}

func TestDumpProducesNonEmptyTree(t *testing.T) {
	tree, err := Parse("a | b && c")
	require.NoError(t, err)
	out := Dump(tree)
	assert.Contains(t, out, "pipeline")
	assert.Contains(t, out, "&&")
}
