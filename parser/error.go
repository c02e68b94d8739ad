package parser

import (
	"fmt"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/token"
)

// ErrorKind represents the class of a parse error.
type ErrorKind int

const (
	// UnexpectedToken means a token did not fit the grammar.
	UnexpectedToken ErrorKind = iota + 1

	// EndOfInput means the input ended before the grammar was satisfied.
	EndOfInput

	// InvalidValue means the tokens fit the grammar but the value is not
	// acceptable, such as an unknown unit.
	InvalidValue

	// OutOfRange means a numeric value lies outside its allowed range.
	OutOfRange
)

var errorKinds = [...]string{
	UnexpectedToken: "unexpected token",
	EndOfInput:      "unexpected EOF",
	InvalidValue:    "invalid value",
	OutOfRange:      "value out of range",
}

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errorKinds) {
		return errorKinds[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel errors for matching parse errors by kind with errors.Is.
var (
	ErrUnexpectedToken = &ParseError{Kind: UnexpectedToken}
	ErrEndOfInput      = &ParseError{Kind: EndOfInput}
	ErrInvalidValue    = &ParseError{Kind: InvalidValue}
	ErrOutOfRange      = &ParseError{Kind: OutOfRange}
)

// ParseError represents a value that could not be parsed.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Token   token.Token // offending token, if any
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *ParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Is returns true if target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// unexpected returns an error for a token that does not fit the grammar.
func unexpected(tok token.Token) *ParseError {
	if _, ok := tok.(*token.EOF); ok {
		return &ParseError{Kind: EndOfInput, Message: "unexpected EOF", Token: tok, Pos: tok.Position()}
	}
	return &ParseError{Kind: UnexpectedToken, Message: fmt.Sprintf("unexpected %q", tok.String()), Token: tok, Pos: tok.Position()}
}

// Expected returns an error for a token that is not the one the grammar
// requires. The kind is EndOfInput if tok is EOF and UnexpectedToken otherwise.
func Expected(what string, tok token.Token) *ParseError {
	return expected(what, tok)
}

func expected(what string, tok token.Token) *ParseError {
	err := unexpected(tok)
	if err.Kind == EndOfInput {
		err.Message = fmt.Sprintf("expected %s, got EOF", what)
	} else {
		err.Message = fmt.Sprintf("expected %s, got %q", what, tok.String())
	}
	return err
}

// NewError returns a parse error of the given kind located at tok.
func NewError(kind ErrorKind, tok token.Token, format string, v ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, v...), Token: tok, Pos: tok.Position()}
}

// ContextualKind describes what a reported error was encountered in.
type ContextualKind int

const (
	UnsupportedPropertyDeclaration ContextualKind = iota + 1
	UnsupportedRule
	UnsupportedValue
	InvalidRule
)

var contextualKinds = [...]string{
	UnsupportedPropertyDeclaration: "unsupported property declaration",
	UnsupportedRule:                "unsupported rule",
	UnsupportedValue:               "unsupported value",
	InvalidRule:                    "invalid rule",
}

// String returns the string representation of the kind.
func (k ContextualKind) String() string {
	if k > 0 && int(k) < len(contextualKinds) {
		return contextualKinds[k]
	}
	return fmt.Sprintf("ContextualKind(%d)", int(k))
}

// ContextualError is a parse error paired with the source text it occurred in.
type ContextualError struct {
	Kind   ContextualKind
	Source string
	Err    error
}

// Error returns the formatted string error message.
func (e ContextualError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", e.Kind, e.Source)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Source, e.Err)
}

// Unwrap returns the underlying parse error.
func (e ContextualError) Unwrap() error { return e.Err }

// ErrorReporter receives errors found while parsing.
// Implementations must be safe for concurrent use since style sheets may be
// parsed in parallel.
type ErrorReporter interface {
	ReportError(urlData *css.URLData, pos token.Pos, err ContextualError)
}

// ErrorContext holds the reporter that errors are logged to.
type ErrorContext struct {
	reporter ErrorReporter
}

// NewErrorContext returns an error context reporting to r.
// A nil reporter discards all errors.
func NewErrorContext(r ErrorReporter) *ErrorContext {
	return &ErrorContext{reporter: r}
}

// Reporter returns the reporter held by the context.
func (ec *ErrorContext) Reporter() ErrorReporter {
	if ec == nil {
		return nil
	}
	return ec.reporter
}

func (ec *ErrorContext) report(urlData *css.URLData, pos token.Pos, err ContextualError) {
	if ec == nil || ec.reporter == nil {
		return
	}
	ec.reporter.ReportError(urlData, pos, err)
}

// ErrorList represents a list of errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
