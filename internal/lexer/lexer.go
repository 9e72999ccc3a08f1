// Package lexer scans shell input into a stream of tokens.
//
// The scanning algorithm mirrors original_source/src/lexer/lexer.c: a single
// rune-at-a-time scan that classifies characters into meta/expansion/word
// classes, accumulates Word tokens out of alternating literal/parameter/
// tilde/glob Parts, and recognizes the small set of control operators the
// grammar supports (| || & && ; < > >>).
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/thomas-gons/novash/internal/token"
)

// Lexer turns one line of input into tokens on demand.
type Lexer struct {
	src  []rune
	pos  int
	quot quoteState
}

type quoteState int

const (
	unquoted quoteState = iota
	single
	double
)

// New returns a Lexer scanning line.
func New(line string) *Lexer {
	return &Lexer{src: []rune(line)}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	return r
}

func isMetaChar(r rune) bool {
	switch r {
	case '|', '&', ';', '<', '>':
		return true
	}
	return false
}

func isSpecialParameterChar(r rune) bool {
	switch r {
	case '?', '$', '!', '-':
		return true
	}
	return false
}

func isWordChar(r rune, q quoteState) bool {
	if r == 0 || unicode.IsSpace(r) {
		return false
	}
	if q == unquoted && isMetaChar(r) {
		return false
	}
	if q == unquoted && (r == '\'' || r == '"') {
		return false
	}
	return true
}

func isGlobMeta(r rune) bool {
	switch r {
	case '*', '?', '[':
		return true
	}
	return false
}

// namedEscapes mirrors lexer.c's handle_escape table: a backslash followed
// by one of these letters expands to the corresponding control character,
// inside double quotes and out.
var namedEscapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'a': '\a', 'b': '\b', 'f': '\f', 'v': '\v',
}

// Next returns the next token, or a token.EOF token when input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpaces()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF}, nil
	}

	start := l.pos
	r := l.peek()

	if l.quot == unquoted && isDigitRune(r) && isWordFD(l.src[l.pos:]) {
		return l.lexFD(start)
	}

	if l.quot == unquoted && isMetaChar(r) {
		return l.lexOperator(start)
	}

	return l.lexWord(start)
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

// isWordFD mirrors lexer.c's is_word_fd: the token is a bare run of digits
// immediately followed by '<' or '>' (not part of a larger word).
func isWordFD(rest []rune) bool {
	i := 0
	for i < len(rest) && isDigitRune(rest[i]) {
		i++
	}
	if i == 0 || i >= len(rest) {
		return false
	}
	return rest[i] == '<' || rest[i] == '>'
}

func (l *Lexer) lexFD(start int) (token.Token, error) {
	for isDigitRune(l.peek()) {
		l.advance()
	}
	raw := string(l.src[start:l.pos])
	var val int
	fmt.Sscanf(raw, "%d", &val)
	return token.Token{Kind: token.FD, Raw: raw, FDValue: val}, nil
}

func (l *Lexer) lexOperator(start int) (token.Token, error) {
	r := l.advance()
	switch r {
	case '|':
		if l.peek() == '|' {
			l.advance()
			return token.Token{Kind: token.Or, Raw: "||"}, nil
		}
		return token.Token{Kind: token.Pipe, Raw: "|"}, nil
	case '&':
		if l.peek() == '&' {
			l.advance()
			return token.Token{Kind: token.And, Raw: "&&"}, nil
		}
		return token.Token{Kind: token.Amp, Raw: "&"}, nil
	case ';':
		return token.Token{Kind: token.Semi, Raw: ";"}, nil
	case '<':
		return token.Token{Kind: token.RedirIn, Raw: "<"}, nil
	case '>':
		if l.peek() == '>' {
			l.advance()
			return token.Token{Kind: token.Append, Raw: ">>"}, nil
		}
		return token.Token{Kind: token.RedirOut, Raw: ">"}, nil
	}
	return token.Token{}, fmt.Errorf("lexer: unexpected operator %q", r)
}

// lexWord accumulates Parts until a delimiter (space, meta char while
// unquoted, or end of input) is reached, mirroring handle_word_token's
// part-accumulation loop.
func (l *Lexer) lexWord(start int) (token.Token, error) {
	var parts []token.Part
	var lit strings.Builder

	flushLit := func(quoted bool) {
		if lit.Len() > 0 {
			parts = append(parts, token.Part{Kind: token.Literal, Text: lit.String(), Quoted: quoted})
			lit.Reset()
		}
	}

	for l.pos < len(l.src) {
		r := l.peek()

		switch l.quot {
		case unquoted:
			if unicode.IsSpace(r) || isMetaChar(r) {
				goto done
			}
			if r == '\'' {
				flushLit(false)
				l.advance()
				l.quot = single
				continue
			}
			if r == '"' {
				flushLit(false)
				l.advance()
				l.quot = double
				continue
			}
		case single:
			if r == '\'' {
				l.advance()
				l.quot = unquoted
				continue
			}
			lit.WriteRune(l.advance())
			continue
		case double:
			if r == '"' {
				flushLit(true)
				l.advance()
				l.quot = unquoted
				continue
			}
			if r == '\\' && (l.peekAt(1) == '"' || l.peekAt(1) == '\\' || l.peekAt(1) == '$') {
				l.advance()
				lit.WriteRune(l.advance())
				continue
			}
		}

		if r == '\\' && l.quot != single {
			l.advance()
			esc := l.advance()
			if named, ok := namedEscapes[esc]; ok {
				lit.WriteRune(named)
			} else {
				lit.WriteRune(esc)
			}
			continue
		}

		if r == '$' && l.quot != single {
			part, ok, err := l.lexParameter()
			if err != nil {
				return token.Token{}, err
			}
			if ok {
				flushLit(l.quot == double)
				part.Quoted = l.quot == double
				parts = append(parts, part)
				continue
			}
		}

		if r == '~' && l.quot == unquoted && lit.Len() == 0 && len(parts) == 0 {
			part := l.lexTilde()
			parts = append(parts, part)
			continue
		}

		if l.quot == unquoted && isGlobMeta(r) {
			flushLit(false)
			globStart := l.pos
			for l.pos < len(l.src) && isWordChar(l.peek(), unquoted) {
				l.advance()
			}
			parts = append(parts, token.Part{Kind: token.Glob, Text: string(l.src[globStart:l.pos])})
			continue
		}

		lit.WriteRune(l.advance())
	}

done:
	flushLit(l.quot == double)
	if l.quot == single || l.quot == double {
		return token.Token{}, fmt.Errorf("lexer: unterminated %s quote", quoteName(l.quot))
	}
	if len(parts) == 0 {
		parts = []token.Part{{Kind: token.Literal, Text: ""}}
	}
	return token.Token{Kind: token.Word, Parts: parts, Raw: string(l.src[start:l.pos])}, nil
}

func quoteName(q quoteState) string {
	if q == single {
		return "single"
	}
	return "double"
}

// lexParameter handles $NAME, ${NAME}, and the special one-char forms
// ($?, $$, $!, $-), mirroring handle_variable_word_part. It returns ok=false
// (treating '$' as a literal char) when what follows isn't a valid name
// start, matching the original's fallback behavior.
func (l *Lexer) lexParameter() (token.Part, bool, error) {
	save := l.pos
	l.advance() // consume '$'

	if isSpecialParameterChar(l.peek()) {
		name := string(l.advance())
		return token.Part{Kind: token.Parameter, Text: name}, true, nil
	}

	if l.peek() == '{' {
		l.advance()
		start := l.pos
		for l.pos < len(l.src) && l.peek() != '}' {
			l.advance()
		}
		if l.pos >= len(l.src) {
			l.pos = save
			return token.Part{}, false, fmt.Errorf("lexer: unterminated ${ expansion")
		}
		name := string(l.src[start:l.pos])
		l.advance() // consume '}'
		return token.Part{Kind: token.Parameter, Text: name}, true, nil
	}

	if isNameStart(l.peek()) {
		start := l.pos
		for l.pos < len(l.src) && isNameChar(l.peek()) {
			l.advance()
		}
		return token.Part{Kind: token.Parameter, Text: string(l.src[start:l.pos])}, true, nil
	}

	l.pos = save
	return token.Part{}, false, nil
}

func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isNameChar(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// lexTilde handles a leading ~ or ~user, mirroring handle_tilde_word_part:
// it only applies at the very start of a word and stops at the first '/'
// or delimiter.
func (l *Lexer) lexTilde() token.Part {
	l.advance() // consume '~'
	start := l.pos
	for l.pos < len(l.src) && isWordChar(l.peek(), unquoted) && l.peek() != '/' {
		l.advance()
	}
	return token.Part{Kind: token.Tilde, Text: string(l.src[start:l.pos])}
}

func (l *Lexer) skipSpaces() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// Tokenize scans the entire line, returning every token up to and including
// the terminal EOF token.
func Tokenize(line string) ([]token.Token, error) {
	lx := New(line)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
