package parser

import (
	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/token"
)

// Context represents the data that value parsers need from outside the
// token stream. A Context is immutable once constructed and may be shared
// between goroutines.
type Context struct {
	origin           css.Origin
	urlData          *css.URLData
	ruleType         css.RuleType // zero if absent
	lineNumberOffset uint64
	parsingMode      css.ParsingMode
	quirksMode       css.QuirksMode
	namespaces       *css.Namespaces
}

// NewContext returns a parsing context. A zero ruleType means no rule type.
func NewContext(origin css.Origin, urlData *css.URLData, ruleType css.RuleType, mode css.ParsingMode, quirks css.QuirksMode) *Context {
	return &Context{
		origin:      origin,
		urlData:     urlData,
		ruleType:    ruleType,
		parsingMode: mode,
		quirksMode:  quirks,
	}
}

// NewContextForCSSOM returns a context for on-the-fly parsing of author
// style, such as values assigned through the CSSOM.
func NewContextForCSSOM(urlData *css.URLData, ruleType css.RuleType, mode css.ParsingMode, quirks css.QuirksMode) *Context {
	return NewContext(css.Author, urlData, ruleType, mode, quirks)
}

// NewContextWithRuleType returns a copy of parent with its rule type set to
// ruleType and with namespaces attached. The returned context references
// parent's URL data and namespaces and must not outlive either.
//
// Panics if ruleType is the zero value.
func NewContextWithRuleType(parent *Context, ruleType css.RuleType, namespaces *css.Namespaces) *Context {
	if ruleType == 0 {
		panic("parser: invalid rule type")
	}
	return &Context{
		origin:           parent.origin,
		urlData:          parent.urlData,
		ruleType:         ruleType,
		lineNumberOffset: parent.lineNumberOffset,
		parsingMode:      parent.parsingMode,
		quirksMode:       parent.quirksMode,
		namespaces:       namespaces,
	}
}

// NewContextWithLineNumberOffset returns a context for inline CSS, such as
// a style attribute, whose reported lines are shifted by offset.
func NewContextWithLineNumberOffset(origin css.Origin, urlData *css.URLData, offset uint64, mode css.ParsingMode, quirks css.QuirksMode) *Context {
	return &Context{
		origin:           origin,
		urlData:          urlData,
		lineNumberOffset: offset,
		parsingMode:      mode,
		quirksMode:       quirks,
	}
}

// Origin returns the origin of the style sheet being parsed.
func (c *Context) Origin() css.Origin { return c.origin }

// URLData returns the data used to resolve relative URLs.
func (c *Context) URLData() *css.URLData { return c.urlData }

// LineNumberOffset returns the number of lines added to reported positions.
func (c *Context) LineNumberOffset() uint64 { return c.lineNumberOffset }

// ParsingMode returns the leniency flags in effect.
func (c *Context) ParsingMode() css.ParsingMode { return c.parsingMode }

// QuirksMode returns the quirks mode of the owning document.
func (c *Context) QuirksMode() css.QuirksMode { return c.quirksMode }

// Namespaces returns the namespaces in scope. Only contexts created with
// NewContextWithRuleType carry namespaces; all others return nil.
func (c *Context) Namespaces() *css.Namespaces { return c.namespaces }

// HasRuleType returns true if the context carries a rule type.
func (c *Context) HasRuleType() bool { return c.ruleType != 0 }

// OptionalRuleType returns the rule type and whether one is present.
func (c *Context) OptionalRuleType() (css.RuleType, bool) {
	return c.ruleType, c.ruleType != 0
}

// RuleType returns the rule type of the context.
//
// Callers must only use this on contexts that are known to carry a rule
// type. Panics otherwise.
func (c *Context) RuleType() css.RuleType {
	if c.ruleType == 0 {
		panic("parser: rule type expected, but none was found")
	}
	return c.ruleType
}

// ChromeRules returns true if internal-only syntax is allowed, which is the
// case for user-agent and user style sheets.
func (c *Context) ChromeRules() bool {
	return c.origin == css.UserAgent || c.origin == css.User
}

// LogError reports err at pos through the reporter held by ec. The line of
// pos is shifted by the context's line number offset.
func (c *Context) LogError(ec *ErrorContext, pos token.Pos, err ContextualError) {
	pos = token.Pos{
		Line: pos.Line + int(c.lineNumberOffset),
		Char: pos.Char,
	}
	ec.report(c.urlData, pos, err)
}
