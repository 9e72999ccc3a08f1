// Package parser builds an internal/ast.Tree from the token stream produced
// by internal/lexer.
//
// The grammar and recursive-descent structure mirror
// original_source/src/parser/parser.c: parse_arguments accumulates a
// command's word list, parse_redirection consumes one '<'/'>'/'>>' (with an
// optional leading FD) and applies the default-fd rule used there (IN
// defaults to fd 0, OUT/APPEND default to fd 1), parse_command combines the
// two and captures the background flag, parse_pipeline chains commands on
// '|', parse_conditional left-folds '&&'/'||', and the top level consumes
// ';'- or '&'-separated nodes until EOF.
package parser

import (
	"fmt"
	"strings"

	"github.com/thomas-gons/novash/internal/ast"
	"github.com/thomas-gons/novash/internal/lexer"
	"github.com/thomas-gons/novash/internal/token"
)

// Parser consumes tokens one at a time with a single token of lookahead.
type Parser struct {
	lx   *lexer.Lexer
	cur  token.Token
	raws []string // raw text of tokens consumed for the command in progress
}

// Parse tokenizes and parses a full line into a Tree.
func Parse(line string) (*ast.Tree, error) {
	p := &Parser{lx: lexer.New(line)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseTree()
}

func (p *Parser) next() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) consumeRaw() {
	if p.cur.Raw != "" {
		p.raws = append(p.raws, p.cur.Raw)
	}
}

// parseTree mirrors parser_create_ast's do-while separator-consuming loop:
// the sequence grammar is `conditional ((';' | '&') conditional)*`, so both
// ';' and '&' end a statement and resume the loop (parser.c:236). '&' is
// only ever read, never consumed, inside parseCommand — see its comment.
func (p *Parser) parseTree() (*ast.Tree, error) {
	tree := &ast.Tree{}
	for {
		if p.cur.Kind == token.EOF {
			break
		}
		node, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		tree.Nodes = append(tree.Nodes, node)

		if p.cur.Kind == token.Semi || p.cur.Kind == token.Amp {
			p.consumeRaw()
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Kind == token.EOF {
			break
		}
		return nil, fmt.Errorf("parser: unexpected token %s, expected ';' or end of input", p.cur.Kind)
	}
	return tree, nil
}

func (p *Parser) parseConditional() (ast.Node, error) {
	left, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == token.And || p.cur.Kind == token.Or {
		op := ast.OpAnd
		if p.cur.Kind == token.Or {
			op = ast.OpOr
		}
		p.consumeRaw()
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		left = &ast.Conditional{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parsePipeline mirrors parse_pipeline: it collapses a single command back
// to a bare *ast.Command rather than wrapping it in a one-element Pipeline.
func (p *Parser) parsePipeline() (ast.Node, error) {
	first, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	cmds := []*ast.Command{first}

	for p.cur.Kind == token.Pipe {
		p.consumeRaw()
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, next)
	}

	if len(cmds) == 1 {
		return cmds[0], nil
	}
	return &ast.Pipeline{Commands: cmds}, nil
}

// parseCommand mirrors parse_command: arguments, then zero or more
// redirections, then (and only then) a single check for a trailing '&'.
// It only *reads* the '&' to set Bg (parser.c:137) — it does not consume
// the token. Consumption belongs to the sequence loop in parseTree, which
// accepts both ';' and '&' as statement separators (parser.c:236); if
// parseCommand consumed it instead, a bare trailing '&' would never reach
// parseTree and a following statement like `sleep 1 & jobs` would fail to
// parse. Because the read happens once per command right after its own
// redirections, a pipeline's '&' is still only ever visible to its last
// command (see SPEC_FULL.md Part E.1).
func (p *Parser) parseCommand() (*ast.Command, error) {
	savedRaws := p.raws
	p.raws = nil

	argv, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("parser: expected a command")
	}

	cmd := &ast.Command{Argv: argv}
	for p.cur.Kind == token.FD || p.cur.Kind == token.RedirIn || p.cur.Kind == token.RedirOut || p.cur.Kind == token.Append {
		r, err := p.parseRedirection()
		if err != nil {
			return nil, err
		}
		cmd.Redir = append(cmd.Redir, r)
	}

	if p.cur.Kind == token.Amp {
		cmd.Bg = true
	}

	cmd.Raw = strings.Join(p.raws, " ")
	p.raws = append(savedRaws, p.raws...)
	return cmd, nil
}

// parseArguments mirrors parse_arguments: it collects Word tokens (treating
// a bare FD token that isn't actually followed by a redirection operator as
// a word would be a lexer bug, since is_word_fd already disambiguated that
// at scan time) until a non-word token ends the command.
func (p *Parser) parseArguments() ([][]token.Part, error) {
	var argv [][]token.Part
	for p.cur.Kind == token.Word {
		argv = append(argv, p.cur.Parts)
		p.consumeRaw()
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return argv, nil
}

// parseRedirection mirrors parse_redirection's default-fd rule: an FD token
// preceding the operator overrides the default, '<' defaults to fd 0, '>'
// and '>>' default to fd 1.
func (p *Parser) parseRedirection() (ast.Redirection, error) {
	fd := -1
	if p.cur.Kind == token.FD {
		fd = p.cur.FDValue
		p.consumeRaw()
		if err := p.next(); err != nil {
			return ast.Redirection{}, err
		}
	}

	var kind ast.RedirKind
	switch p.cur.Kind {
	case token.RedirIn:
		kind = ast.RedirIn
		if fd == -1 {
			fd = 0
		}
	case token.RedirOut:
		kind = ast.RedirOut
		if fd == -1 {
			fd = 1
		}
	case token.Append:
		kind = ast.RedirAppend
		if fd == -1 {
			fd = 1
		}
	default:
		return ast.Redirection{}, fmt.Errorf("parser: expected redirection operator, got %s", p.cur.Kind)
	}
	p.consumeRaw()
	if err := p.next(); err != nil {
		return ast.Redirection{}, err
	}

	if p.cur.Kind != token.Word {
		return ast.Redirection{}, fmt.Errorf("parser: expected a word after redirection operator, got %s", p.cur.Kind)
	}
	target := p.cur.Parts
	p.consumeRaw()
	if err := p.next(); err != nil {
		return ast.Redirection{}, err
	}

	return ast.Redirection{Kind: kind, FD: fd, Target: target}, nil
}

// Dump renders tree as an indented, human-readable string, the Go-idiom
// descendant of parser_ast_str used by `novash ast`.
func Dump(tree *ast.Tree) string {
	var b strings.Builder
	for i, n := range tree.Nodes {
		if i > 0 {
			b.WriteString(";\n")
		}
		dumpNode(&b, n, 0)
	}
	b.WriteByte('\n')
	return b.String()
}

func dumpNode(b *strings.Builder, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *ast.Command:
		fmt.Fprintf(b, "%scommand %q", indent, v.Raw)
	case *ast.Pipeline:
		fmt.Fprintf(b, "%spipeline\n", indent)
		for i, c := range v.Commands {
			if i > 0 {
				b.WriteByte('\n')
			}
			dumpNode(b, c, depth+1)
		}
	case *ast.Conditional:
		op := "&&"
		if v.Op == ast.OpOr {
			op = "||"
		}
		fmt.Fprintf(b, "%s%s\n", indent, op)
		dumpNode(b, v.Left, depth+1)
		b.WriteByte('\n')
		dumpNode(b, v.Right, depth+1)
	}
}
