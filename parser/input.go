package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/cssparse/scanner"
	"github.com/benbjohnson/cssparse/token"
)

// Input represents a rewindable cursor over a fixed list of tokens.
// The list always ends with an EOF token which is returned indefinitely
// once the other tokens are consumed.
type Input struct {
	i      int         // index of the next token
	prev   int         // index before the last Next call
	cur    token.Token // last token returned
	tokens []token.Token
}

// State represents a saved cursor position.
type State int

// NewInput returns a cursor over every token produced by s.
func NewInput(s *scanner.Scanner) *Input {
	var a []token.Token
	for {
		tok := s.Scan()
		a = append(a, tok)
		if _, ok := tok.(*token.EOF); ok {
			return &Input{tokens: a}
		}
	}
}

// NewReaderInput returns a cursor over the tokens scanned from r.
func NewReaderInput(r io.Reader) *Input {
	return NewInput(scanner.New(r))
}

// NewStringInput returns a cursor over the tokens scanned from s.
func NewStringInput(s string) *Input {
	return NewReaderInput(strings.NewReader(s))
}

// NewTokenInput returns a cursor over tokens. An EOF token is appended if
// the list does not already end with one.
func NewTokenInput(tokens []token.Token) *Input {
	a := make([]token.Token, len(tokens), len(tokens)+1)
	copy(a, tokens)
	if n := len(a); n == 0 {
		a = append(a, &token.EOF{})
	} else if _, ok := a[n-1].(*token.EOF); !ok {
		a = append(a, &token.EOF{Pos: a[n-1].Position()})
	}
	return &Input{tokens: a}
}

// State returns the current position so it can be restored with Reset.
func (in *Input) State() State { return State(in.i) }

// Reset restores a position previously returned by State.
func (in *Input) Reset(st State) {
	in.i, in.prev, in.cur = int(st), int(st), nil
}

// Current returns the most recently consumed token.
func (in *Input) Current() token.Token {
	if in.cur == nil {
		return in.tokens[in.i]
	}
	return in.cur
}

// NextIncludingWhitespace consumes and returns the next token.
func (in *Input) NextIncludingWhitespace() token.Token {
	in.prev = in.i
	return in.advance()
}

// Next consumes and returns the next non-whitespace token.
func (in *Input) Next() token.Token {
	in.prev = in.i
	for {
		if tok := in.advance(); !isWhitespace(tok) {
			return tok
		}
	}
}

// Unscan moves the cursor back to where it was before the last Next or
// NextIncludingWhitespace call.
func (in *Input) Unscan() {
	in.i, in.cur = in.prev, nil
}

// Peek returns the next non-whitespace token without consuming it.
func (in *Input) Peek() token.Token {
	i := in.i
	for ; i < len(in.tokens)-1 && isWhitespace(in.tokens[i]); i++ {
	}
	return in.tokens[i]
}

// Position returns the position of the next non-whitespace token.
func (in *Input) Position() token.Pos {
	return in.Peek().Position()
}

// IsExhausted returns true if only whitespace remains.
func (in *Input) IsExhausted() bool {
	_, ok := in.Peek().(*token.EOF)
	return ok
}

// SkipWhitespace consumes all contiguous whitespace tokens.
func (in *Input) SkipWhitespace() {
	for in.i < len(in.tokens)-1 && isWhitespace(in.tokens[in.i]) {
		in.i++
	}
}

// ExpectExhausted returns an error if anything other than whitespace remains.
func (in *Input) ExpectExhausted() error {
	if tok := in.Peek(); !in.IsExhausted() {
		return expected("EOF", tok)
	}
	return nil
}

// ExpectComma consumes a comma token.
func (in *Input) ExpectComma() error {
	if tok := in.Next(); !isComma(tok) {
		return expected("comma", tok)
	}
	return nil
}

// ExpectColon consumes a colon token.
func (in *Input) ExpectColon() error {
	if _, ok := in.Next().(*token.Colon); !ok {
		return expected("colon", in.Current())
	}
	return nil
}

// ExpectDelim consumes a delimiter with the given value.
func (in *Input) ExpectDelim(v string) error {
	if tok, ok := in.Next().(*token.Delim); !ok || tok.Value != v {
		return expected(strconv.Quote(v), in.Current())
	}
	return nil
}

// ExpectIdent consumes an identifier and returns its value.
func (in *Input) ExpectIdent() (string, error) {
	tok, ok := in.Next().(*token.Ident)
	if !ok {
		return "", expected("ident", in.Current())
	}
	return tok.Value, nil
}

// ExpectIdentMatching consumes an identifier matching v case-insensitively.
func (in *Input) ExpectIdentMatching(v string) error {
	tok, ok := in.Next().(*token.Ident)
	if !ok || !strings.EqualFold(tok.Value, v) {
		return expected(v, in.Current())
	}
	return nil
}

// SkipUntil consumes tokens until stop returns true for a token outside of
// any nested block or function. The matching token is not consumed.
func (in *Input) SkipUntil(stop func(token.Token) bool) {
	depth := 0
	for {
		tok := in.tokens[in.i]
		switch tok.(type) {
		case *token.EOF:
			return
		case *token.LBrace, *token.LBrack, *token.LParen, *token.Function:
			depth++
		case *token.RBrace, *token.RBrack, *token.RParen:
			if depth == 0 && stop(tok) {
				return
			}
			if depth > 0 {
				depth--
			}
			in.i++
			continue
		}
		if depth == 0 && stop(tok) {
			return
		}
		in.i++
	}
}

// advance returns the next token and moves past it unless it is the final EOF.
func (in *Input) advance() token.Token {
	tok := in.tokens[in.i]
	if in.i < len(in.tokens)-1 {
		in.i++
	}
	in.cur = tok
	return tok
}

// isWhitespace returns true if tok is a whitespace token.
func isWhitespace(tok token.Token) bool {
	_, ok := tok.(*token.Whitespace)
	return ok
}

// isComma returns true if tok is a comma token.
func isComma(tok token.Token) bool {
	_, ok := tok.(*token.Comma)
	return ok
}

// serialize writes tokens back out as CSS text.
func serialize(tokens []token.Token) string {
	var buf strings.Builder
	for _, tok := range tokens {
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		buf.WriteString(tok.String())
	}
	return strings.TrimSpace(buf.String())
}
