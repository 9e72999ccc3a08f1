// Package ast defines the parse tree produced by internal/parser and
// consumed by internal/expander and internal/executor.
package ast

import "github.com/thomas-gons/novash/internal/token"

// RedirKind identifies the direction of a Redirection.
type RedirKind int

const (
	RedirIn RedirKind = iota
	RedirOut
	RedirAppend
)

// Redirection rebinds FD to the expanded form of Target.
type Redirection struct {
	Kind   RedirKind
	FD     int
	Target []token.Part
}

// Command is a single simple command: a word list, zero or more
// redirections, and (on the last command of a pipeline only, see
// SPEC_FULL.md Part E.1) a background flag.
type Command struct {
	Argv  [][]token.Part
	Redir []Redirection
	Bg    bool
	// Raw is the verbatim source text of this command, captured by the
	// parser for history and the `type`/diagnostic surfaces.
	Raw string
}

// Node is any node of the parse tree: *Command, *Pipeline, or *Conditional.
// Sequence is represented directly as []Node, there being no meaningful
// node-level data beyond the list itself.
type Node interface {
	isNode()
}

func (*Command) isNode()     {}
func (*Pipeline) isNode()    {}
func (*Conditional) isNode() {}

// Pipeline chains two or more commands left to right with anonymous pipes.
// A single command never appears wrapped in a Pipeline; the parser collapses
// it back to a bare *Command.
type Pipeline struct {
	Commands []*Command
}

// Op is the conditional operator joining two pipeline-level nodes.
type Op int

const (
	OpAnd Op = iota // &&
	OpOr            // ||
)

// Conditional is a left-associative chain of && / || joined nodes. Right is
// always a *Command or *Pipeline; Left is one too for the first link, and a
// *Conditional for every later one: the parser folds a chain into nested
// Conditionals with Op/Right holding one link each and Left holding the
// rest of the chain.
type Conditional struct {
	Left  Node
	Op    Op
	Right Node
}

// Tree is the result of parsing one input line: a top-level sequence of
// nodes separated by ';' or '&'.
type Tree struct {
	Nodes []Node
}
