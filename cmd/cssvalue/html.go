package main

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/config"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// fragment is a piece of CSS embedded in an HTML document.
type fragment struct {
	line   uint64 // zero-based line of the document the source starts on
	source string
	attr   bool // style attribute rather than a <style> element
}

// extractFragments returns the style attributes and <style> element bodies
// of an HTML document in document order.
func extractFragments(r io.Reader) ([]fragment, error) {
	z := html.NewTokenizer(r)

	var a []fragment
	var line uint64
	var inStyle bool
	for {
		tt := z.Next()
		raw := z.Raw()
		newlines := uint64(bytes.Count(raw, []byte("\n")))

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return a, nil
			}
			return nil, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			attrLine := line + styleAttrLine(raw)
			tok := z.Token()
			for _, attr := range tok.Attr {
				if attr.Key == "style" {
					a = append(a, fragment{line: attrLine, source: attr.Val, attr: true})
				}
			}
			inStyle = tt == html.StartTagToken && tok.DataAtom == atom.Style

		case html.TextToken:
			if inStyle {
				a = append(a, fragment{line: line, source: string(z.Text())})
			}

		case html.EndTagToken:
			inStyle = false
		}

		line += newlines
	}
}

// styleAttrLine returns the number of lines in a raw start tag that precede
// its style attribute. Attribute values are skipped so that "style" inside a
// quoted value is never matched.
func styleAttrLine(raw []byte) uint64 {
	// Skip "<" and the tag name.
	i := 1
	for i < len(raw) && !isHTMLSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	for i < len(raw) {
		for i < len(raw) && (isHTMLSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			return 0
		}

		// Attribute name.
		start := i
		for i < len(raw) && !isHTMLSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		if bytes.EqualFold(raw[start:i], []byte("style")) {
			return uint64(bytes.Count(raw[:start], []byte("\n")))
		}

		// Optional "=" and value.
		j := i
		for j < len(raw) && isHTMLSpace(raw[j]) {
			j++
		}
		if j >= len(raw) || raw[j] != '=' {
			continue
		}
		for i = j + 1; i < len(raw) && isHTMLSpace(raw[i]); i++ {
		}
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			q := raw[i]
			i++
			for i < len(raw) && raw[i] != q {
				i++
			}
			i++
		} else {
			for i < len(raw) && !isHTMLSpace(raw[i]) && raw[i] != '>' {
				i++
			}
		}
	}
	return 0
}

func isHTMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// declarationBlocks returns the tokens of each innermost {} block in in.
// Blocks are returned without their braces.
func declarationBlocks(in *parser.Input) [][]token.Token {
	var blocks [][]token.Token
	var cur []token.Token
	var open bool
	for {
		switch tok := in.NextIncludingWhitespace().(type) {
		case *token.EOF:
			return blocks
		case *token.LBrace:
			cur, open = nil, true
		case *token.RBrace:
			if open {
				blocks = append(blocks, cur)
			}
			cur, open = nil, false
		default:
			if open {
				cur = append(cur, tok)
			}
		}
	}
}

// checker validates the declarations of HTML fragments.
type checker struct {
	opt     *config.Options
	ec      *parser.ErrorContext
	grammar grammar
	sep     parser.Separator
	props   map[string]bool // nil checks all properties
}

// checkFragment parses the declarations in f and returns the errors found.
// Errors are also logged to the checker's error context.
func (ch *checker) checkFragment(f fragment) parser.ErrorList {
	c := ch.opt.InlineContext(f.line)
	in := parser.NewStringInput(f.source)
	if f.attr {
		return parser.ParseDeclarations(c, ch.ec, in, ch.checkDeclaration)
	}

	var errs parser.ErrorList
	rc := parser.NewContextWithRuleType(c, css.StyleRule, &css.Namespaces{})
	for _, block := range declarationBlocks(in) {
		errs = append(errs, parser.ParseDeclarations(rc, ch.ec, parser.NewTokenInput(block), ch.checkDeclaration)...)
	}
	return errs
}

func (ch *checker) checkDeclaration(c *parser.Context, d *parser.Declaration) (func(), error) {
	if ch.props != nil && !ch.props[strings.ToLower(d.Name)] {
		d.Value.SkipUntil(func(token.Token) bool { return false })
		return nil, nil
	}
	_, err := ch.grammar(c, d.Value, ch.sep)
	return nil, err
}

// checkDocument checks every fragment of an HTML document.
func (ch *checker) checkDocument(r io.Reader) (parser.ErrorList, error) {
	fragments, err := extractFragments(r)
	if err != nil {
		return nil, err
	}

	var errs parser.ErrorList
	for _, f := range fragments {
		errs = append(errs, ch.checkFragment(f)...)
	}
	return errs, nil
}
