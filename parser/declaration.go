package parser

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/cssparse/token"
)

// Declaration represents a name/value pair from a declaration list.
type Declaration struct {
	Name      string
	Value     *Input
	Important bool
	Pos       token.Pos
}

// DeclarationFunc parses the value of a single declaration and returns a
// function that applies it. The apply function is called only once the
// value is known to be fully consumed, so a rejected declaration never takes
// effect. It may be nil.
type DeclarationFunc func(c *Context, d *Declaration) (apply func(), err error)

// ParseDeclarations parses a list of declarations such as the contents of a
// style attribute or a {-block, calling fn for each one.
//
// A declaration that cannot be parsed is logged to ec and skipped, and
// parsing continues with the next declaration. The skipped errors are
// returned in document order.
func ParseDeclarations(c *Context, ec *ErrorContext, in *Input, fn DeclarationFunc) ErrorList {
	var errs ErrorList
	for {
		tok := in.Next()
		switch tok.(type) {
		case *token.EOF:
			return errs
		case *token.Semicolon:
			// nop
		case *token.AtKeyword:
			in.Unscan()
			tokens := consumeUntilSemicolon(in)
			err := NewError(UnexpectedToken, tok, "unexpected at-rule %s", tok.String())
			c.LogError(ec, tok.Position(), ContextualError{Kind: UnsupportedRule, Source: serialize(tokens), Err: err})
			errs = append(errs, err)
		case *token.Ident:
			// Generate a list of tokens up to the next semicolon or EOF and
			// parse the declaration using them.
			in.Unscan()
			tokens := consumeUntilSemicolon(in)
			if err := parseDeclaration(c, tokens, fn); err != nil {
				c.LogError(ec, tok.Position(), ContextualError{Kind: UnsupportedPropertyDeclaration, Source: serialize(tokens), Err: err})
				errs = append(errs, err)
			}
		default:
			// Any other token is a syntax error.
			in.Unscan()
			tokens := consumeUntilSemicolon(in)
			err := unexpected(tok)
			c.LogError(ec, tok.Position(), ContextualError{Kind: UnsupportedPropertyDeclaration, Source: serialize(tokens), Err: err})
			errs = append(errs, err)
		}
	}
}

// parseDeclaration parses a single declaration from tokens starting with
// its name and passes it to fn.
func parseDeclaration(c *Context, tokens []token.Token, fn DeclarationFunc) error {
	in := NewTokenInput(tokens)

	name, err := in.ExpectIdent()
	if err != nil {
		return err
	}
	d := &Declaration{Name: name, Pos: in.Current().Position()}

	if err := in.ExpectColon(); err != nil {
		return err
	}

	// The remaining tokens form the value; "!important" is stripped.
	value := tokens[in.State():]
	value, d.Important = cleanImportantFlag(value)
	d.Value = NewTokenInput(value)

	if d.Value.IsExhausted() {
		return NewError(EndOfInput, d.Value.Peek(), "missing value for %s", name)
	}
	apply, err := fn(c, d)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	} else if err := d.Value.ExpectExhausted(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if apply != nil {
		apply()
	}
	return nil
}

// cleanImportantFlag checks if the last two non-whitespace tokens are a
// case-insensitive "!important". If so, it removes them and returns true.
func cleanImportantFlag(tokens []token.Token) ([]token.Token, bool) {
	i := lastNonWhitespace(tokens, len(tokens))
	if i < 1 {
		return tokens, false
	} else if ident, ok := tokens[i].(*token.Ident); !ok || !strings.EqualFold(ident.Value, "important") {
		return tokens, false
	}

	j := lastNonWhitespace(tokens, i)
	if j < 0 {
		return tokens, false
	} else if delim, ok := tokens[j].(*token.Delim); !ok || delim.Value != "!" {
		return tokens, false
	}
	return tokens[:j], true
}

// lastNonWhitespace returns the index of the last non-whitespace, non-EOF
// token before end, or -1.
func lastNonWhitespace(tokens []token.Token, end int) int {
	for i := end - 1; i >= 0; i-- {
		switch tokens[i].(type) {
		case *token.Whitespace, *token.EOF:
			continue
		}
		return i
	}
	return -1
}

// consumeUntilSemicolon collects tokens up to the next top-level semicolon
// or EOF. The semicolon itself is consumed but not returned.
func consumeUntilSemicolon(in *Input) []token.Token {
	start := in.i
	in.SkipUntil(func(tok token.Token) bool {
		_, ok := tok.(*token.Semicolon)
		return ok
	})
	tokens := in.tokens[start:in.i]
	if _, ok := in.tokens[in.i].(*token.Semicolon); ok {
		in.i++
	}
	return tokens
}
