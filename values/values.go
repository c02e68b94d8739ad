// Package values implements basic CSS specified values that parse
// themselves from a parser.Input.
package values

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// Units lists the length units that are accepted.
var Units = map[string]struct{}{
	"px": {}, "em": {}, "rem": {}, "ex": {}, "ch": {},
	"vw": {}, "vh": {}, "vmin": {}, "vmax": {},
	"cm": {}, "mm": {}, "q": {}, "in": {}, "pt": {}, "pc": {},
}

// Number represents a <number> value.
type Number struct {
	Value float64
}

// ParseCSS parses a number token.
func (v *Number) ParseCSS(c *parser.Context, in *parser.Input) error {
	tok, ok := in.Next().(*token.Number)
	if !ok {
		return parser.Expected("number", in.Current())
	}
	v.Value = tok.Number
	return nil
}

// String returns the number in its shortest form.
func (v Number) String() string { return formatFloat(v.Value) }

// Percentage represents a <percentage> value. Value holds the number as
// written, so 50% has a value of 50.
type Percentage struct {
	Value float64
}

// ParseCSS parses a percentage token.
func (v *Percentage) ParseCSS(c *parser.Context, in *parser.Input) error {
	tok, ok := in.Next().(*token.Percentage)
	if !ok {
		return parser.Expected("percentage", in.Current())
	}
	v.Value = tok.Number
	return nil
}

// String returns the percentage with its "%" sign.
func (v Percentage) String() string { return formatFloat(v.Value) + "%" }

// Length represents a <length> value. Unit is lowercase and empty for zero
// or, when the parsing mode allows it, for unitless lengths.
type Length struct {
	Value float64
	Unit  string
}

// ParseCSS parses a dimension with a known unit, or a number when the
// parsing mode allows it. Zero needs no unit.
func (v *Length) ParseCSS(c *parser.Context, in *parser.Input) error {
	switch tok := in.Next().(type) {
	case *token.Dimension:
		unit := strings.ToLower(tok.Unit)
		if _, ok := Units[unit]; !ok {
			return parser.NewError(parser.InvalidValue, tok, "unknown length unit: %q", tok.Unit)
		}
		v.Value, v.Unit = tok.Number, unit
		return nil
	case *token.Number:
		if tok.Number != 0 && !c.ParsingMode().AllowsUnitlessLengths() {
			return parser.NewError(parser.InvalidValue, tok, "missing length unit: %q", tok.Value)
		}
		v.Value, v.Unit = tok.Number, ""
		return nil
	default:
		return parser.Expected("length", tok)
	}
}

// String returns the length with its unit, or "0" for a unitless zero.
func (v Length) String() string {
	if v.Unit == "" && v.Value == 0 {
		return "0"
	}
	return formatFloat(v.Value) + v.Unit
}

// NonNegativeLength represents a <length> that must not be negative unless
// the parsing mode allows all numeric values.
type NonNegativeLength struct {
	Length
}

// ParseCSS parses a length and rejects negative values.
func (v *NonNegativeLength) ParseCSS(c *parser.Context, in *parser.Input) error {
	if err := v.Length.ParseCSS(c, in); err != nil {
		return err
	}
	if v.Value < 0 && !c.ParsingMode().AllowsAllNumericValues() {
		return parser.NewError(parser.OutOfRange, in.Current(), "negative length: %s", v.Length)
	}
	return nil
}

// Ident represents a keyword.
type Ident struct {
	Value string
}

// ParseCSS parses an identifier.
func (v *Ident) ParseCSS(c *parser.Context, in *parser.Input) error {
	s, err := in.ExpectIdent()
	if err != nil {
		return err
	}
	v.Value = s
	return nil
}

// String returns the identifier.
func (v Ident) String() string { return v.Value }

// URL represents a url() value resolved against the context's URL data.
type URL struct {
	Raw      string
	Resolved *url.URL
}

// ParseCSS parses a url token and resolves it against the context's URL data.
func (v *URL) ParseCSS(c *parser.Context, in *parser.Input) error {
	tok, ok := in.Next().(*token.URL)
	if !ok {
		return parser.Expected("url", in.Current())
	}

	u, err := c.URLData().Resolve(tok.Value)
	if err != nil {
		return parser.NewError(parser.InvalidValue, tok, "invalid url: %q", tok.Value)
	}
	v.Raw, v.Resolved = tok.Value, u
	return nil
}

// Separator returns Comma since lists of images and sources are comma separated.
func (v URL) Separator() parser.Separator { return parser.Comma }

// String returns the raw URL as a quoted url().
func (v URL) String() string { return "url(" + strconv.Quote(v.Raw) + ")" }

// UnicodeRange represents an inclusive range of code points, as used by
// the unicode-range descriptor.
type UnicodeRange struct {
	Start int
	End   int
}

// ParseCSS parses the range directly from a unicode-range token.
func (v *UnicodeRange) ParseCSS(c *parser.Context, in *parser.Input) error {
	tok, ok := in.Next().(*token.UnicodeRange)
	if !ok {
		return parser.Expected("unicode range", in.Current())
	} else if tok.End > utf8.MaxRune || tok.Start > tok.End {
		return parser.NewError(parser.OutOfRange, tok, "invalid unicode range: %s", tok.String())
	}
	v.Start, v.End = tok.Start, tok.End
	return nil
}

// Separator returns Comma since unicode-range takes a comma separated list.
func (v UnicodeRange) Separator() parser.Separator { return parser.Comma }

// String returns the range in "U+start-end" form.
func (v UnicodeRange) String() string {
	return (&token.UnicodeRange{Start: v.Start, End: v.End}).String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
