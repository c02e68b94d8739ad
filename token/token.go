package token

import (
	"fmt"
	"strconv"
)

// Token represents a lexical token.
type Token interface {
	token()

	// Position returns the location of the first code point of the token.
	Position() Pos

	// String returns the token serialized as CSS.
	String() string
}

func (_ *Ident) token()          {}
func (_ *Function) token()       {}
func (_ *AtKeyword) token()      {}
func (_ *Hash) token()           {}
func (_ *String) token()         {}
func (_ *BadString) token()      {}
func (_ *URL) token()            {}
func (_ *BadURL) token()         {}
func (_ *Delim) token()          {}
func (_ *Number) token()         {}
func (_ *Percentage) token()     {}
func (_ *Dimension) token()      {}
func (_ *UnicodeRange) token()   {}
func (_ *IncludeMatch) token()   {}
func (_ *DashMatch) token()      {}
func (_ *PrefixMatch) token()    {}
func (_ *SuffixMatch) token()    {}
func (_ *SubstringMatch) token() {}
func (_ *Column) token()         {}
func (_ *Whitespace) token()     {}
func (_ *CDO) token()            {}
func (_ *CDC) token()            {}
func (_ *Colon) token()          {}
func (_ *Semicolon) token()      {}
func (_ *Comma) token()          {}
func (_ *LBrack) token()         {}
func (_ *RBrack) token()         {}
func (_ *LParen) token()         {}
func (_ *RParen) token()         {}
func (_ *LBrace) token()         {}
func (_ *RBrace) token()         {}
func (_ *EOF) token()            {}

// Numeric type flags.
const (
	Integer = "integer"
	Float   = "number"
)

type Ident struct {
	Value string
	Pos
}

func (t *Ident) String() string { return t.Value }

type Function struct {
	Value string
	Pos
}

func (t *Function) String() string { return t.Value + "(" }

type AtKeyword struct {
	Value string
	Pos
}

func (t *AtKeyword) String() string { return "@" + t.Value }

// Hash represents a "#" followed by a name.
// Type is "id" if the name is a valid identifier, otherwise "unrestricted".
type Hash struct {
	Type  string
	Value string
	Pos
}

func (t *Hash) String() string { return "#" + t.Value }

type String struct {
	Ending rune
	Value  string
	Pos
}

func (t *String) String() string {
	return string(t.Ending) + t.Value + string(t.Ending)
}

type BadString struct {
	Pos
}

func (t *BadString) String() string { return "''" }

type URL struct {
	Value string
	Pos
}

func (t *URL) String() string { return "url(" + t.Value + ")" }

type BadURL struct {
	Pos
}

func (t *BadURL) String() string { return "url()" }

type Delim struct {
	Value string
	Pos
}

func (t *Delim) String() string { return t.Value }

// Number represents a numeric token. Type is either Integer or Float.
type Number struct {
	Type   string
	Number float64
	Value  string
	Pos
}

func (t *Number) String() string { return t.Value }

type Percentage struct {
	Type   string
	Number float64
	Value  string
	Pos
}

func (t *Percentage) String() string { return t.Value }

type Dimension struct {
	Type   string
	Number float64
	Unit   string
	Value  string
	Pos
}

func (t *Dimension) String() string { return t.Value }

// UnicodeRange represents an inclusive range of code points.
type UnicodeRange struct {
	Start int
	End   int
	Pos
}

func (t *UnicodeRange) String() string {
	if t.Start == t.End {
		return fmt.Sprintf("U+%X", t.Start)
	}
	return fmt.Sprintf("U+%X-%X", t.Start, t.End)
}

type IncludeMatch struct{ Pos }
type DashMatch struct{ Pos }
type PrefixMatch struct{ Pos }
type SuffixMatch struct{ Pos }
type SubstringMatch struct{ Pos }
type Column struct{ Pos }

func (t *IncludeMatch) String() string   { return "~=" }
func (t *DashMatch) String() string      { return "|=" }
func (t *PrefixMatch) String() string    { return "^=" }
func (t *SuffixMatch) String() string    { return "$=" }
func (t *SubstringMatch) String() string { return "*=" }
func (t *Column) String() string         { return "||" }

type Whitespace struct {
	Value string
	Pos
}

func (t *Whitespace) String() string { return t.Value }

type CDO struct{ Pos }
type CDC struct{ Pos }

func (t *CDO) String() string { return "<!--" }
func (t *CDC) String() string { return "-->" }

type Colon struct{ Pos }
type Semicolon struct{ Pos }
type Comma struct{ Pos }
type LBrack struct{ Pos }
type RBrack struct{ Pos }
type LParen struct{ Pos }
type RParen struct{ Pos }
type LBrace struct{ Pos }
type RBrace struct{ Pos }

func (t *Colon) String() string     { return ":" }
func (t *Semicolon) String() string { return ";" }
func (t *Comma) String() string     { return "," }
func (t *LBrack) String() string    { return "[" }
func (t *RBrack) String() string    { return "]" }
func (t *LParen) String() string    { return "(" }
func (t *RParen) String() string    { return ")" }
func (t *LBrace) String() string    { return "{" }
func (t *RBrace) String() string    { return "}" }

type EOF struct{ Pos }

func (t *EOF) String() string { return "EOF" }

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// Position returns the position itself. Embedding a Pos in a token
// satisfies the Position method of Token.
func (p Pos) Position() Pos { return p }

// String returns the position as "line:char", one-based for display.
func (p Pos) String() string {
	return strconv.Itoa(p.Line+1) + ":" + strconv.Itoa(p.Char+1)
}
