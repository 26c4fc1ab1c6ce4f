// Package tokenizer splits texture definition sources into a typed token
// stream with lookahead.
//
// Comments (// and /* */) are skipped. Quoted strings lose their quotes but
// keep Quoted set. A sign or '#' directly followed by a number or word is
// merged into a single token, so "-8" and "#FF0000" arrive whole.
package tokenizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	KindEOF Kind = iota
	KindIdent
	KindInt
	KindFloat
	KindString
	KindSymbol
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindIdent:
		return "Ident"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// Token is a single lexical token.
type Token struct {
	Text   string
	Kind   Kind
	Line   int
	Quoted bool

	offset int
	end    int
}

// Is reports whether the token text equals s.
func (t Token) Is(s string) bool {
	return t.Kind != KindEOF && t.Text == s
}

// IsNC reports whether the token text equals s, ignoring case.
func (t Token) IsNC(s string) bool {
	return t.Kind != KindEOF && strings.EqualFold(t.Text, s)
}

// IsNumber reports whether the token is an integer or float literal.
func (t Token) IsNumber() bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

// AsInt returns the token as an integer. Floats are truncated; anything
// unparseable is 0.
func (t Token) AsInt() int {
	if v, err := strconv.ParseInt(t.Text, 0, 64); err == nil {
		return int(v)
	}
	if f, err := strconv.ParseFloat(t.Text, 64); err == nil {
		return int(f)
	}
	return 0
}

// AsFloat returns the token as a float; anything unparseable is 0.
func (t Token) AsFloat() float64 {
	f, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return float64(t.AsInt())
	}
	return f
}

// Tokenizer is a pre-scanned token stream.
type Tokenizer struct {
	name   string
	tokens []Token
	pos    int
	errs   []error
}

// New scans src. name identifies the source in error messages.
func New(src, name string) *Tokenizer {
	t := &Tokenizer{name: name}

	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Filename = name
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '$' || unicode.IsLetter(ch) ||
			(i > 0 && (unicode.IsDigit(ch) || ch == '.'))
	}
	s.Error = func(s *scanner.Scanner, msg string) {
		t.errs = append(t.errs, fmt.Errorf("%s: %s", s.Position, msg))
	}

	for r := s.Scan(); r != scanner.EOF; r = s.Scan() {
		text := s.TokenText()
		tok := Token{
			Text:   text,
			Line:   s.Position.Line,
			offset: s.Position.Offset,
			end:    s.Position.Offset + len(text),
		}
		switch r {
		case scanner.Ident:
			tok.Kind = KindIdent
		case scanner.Int:
			tok.Kind = KindInt
		case scanner.Float:
			tok.Kind = KindFloat
		case scanner.String:
			tok.Kind = KindString
			tok.Quoted = true
			if len(text) >= 2 {
				tok.Text = text[1 : len(text)-1]
			}
		default:
			tok.Kind = KindSymbol
		}
		t.push(tok)
	}
	return t
}

// push appends tok, merging it into a preceding adjacent sign or '#'.
func (t *Tokenizer) push(tok Token) {
	if n := len(t.tokens); n > 0 {
		prev := &t.tokens[n-1]
		if prev.Kind == KindSymbol && prev.end == tok.offset {
			switch {
			case (prev.Text == "-" || prev.Text == "+") && tok.IsNumber():
				prev.Text += tok.Text
				prev.Kind = tok.Kind
				prev.end = tok.end
				return
			case prev.Text == "#" && (tok.Kind == KindIdent || tok.IsNumber()):
				prev.Text += tok.Text
				prev.Kind = KindIdent
				prev.end = tok.end
				return
			}
		}
		// hex digits of a colour may scan as several words and numbers
		if prev.Kind == KindIdent && strings.HasPrefix(prev.Text, "#") && prev.end == tok.offset &&
			(tok.Kind == KindIdent || tok.IsNumber()) {
			prev.Text += tok.Text
			prev.end = tok.end
			return
		}
	}
	t.tokens = append(t.tokens, tok)
}

// Name returns the source name given to New.
func (t *Tokenizer) Name() string {
	return t.name
}

// Err returns the scan errors, if any.
func (t *Tokenizer) Err() error {
	return errors.Join(t.errs...)
}

// AtEnd reports whether every token has been consumed.
func (t *Tokenizer) AtEnd() bool {
	return t.pos >= len(t.tokens)
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() Token {
	if t.AtEnd() {
		return t.eof()
	}
	return t.tokens[t.pos]
}

// Next consumes and returns the next token. At the end it keeps returning
// an EOF token.
func (t *Tokenizer) Next() Token {
	tok := t.Peek()
	if !t.AtEnd() {
		t.pos++
	}
	return tok
}

// Line returns the line of the next token.
func (t *Tokenizer) Line() int {
	return t.Peek().Line
}

// CheckNC reports whether the next token equals s, ignoring case.
func (t *Tokenizer) CheckNC(s string) bool {
	return t.Peek().IsNC(s)
}

// Accept consumes the next token if it equals s.
func (t *Tokenizer) Accept(s string) bool {
	if t.Peek().Is(s) {
		t.pos++
		return true
	}
	return false
}

// AcceptNC consumes the next token if it equals s, ignoring case.
func (t *Tokenizer) AcceptNC(s string) bool {
	if t.CheckNC(s) {
		t.pos++
		return true
	}
	return false
}

// SkipBlock consumes tokens up to and including the '}' that closes the
// block whose '{' was just consumed. It reports false at end of input.
func (t *Tokenizer) SkipBlock() bool {
	depth := 1
	for !t.AtEnd() {
		tok := t.Next()
		if tok.Kind != KindSymbol {
			continue
		}
		switch tok.Text {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (t *Tokenizer) eof() Token {
	line := 0
	if n := len(t.tokens); n > 0 {
		line = t.tokens[n-1].Line
	}
	return Token{Kind: KindEOF, Line: line}
}
