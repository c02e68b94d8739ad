// Package reporter provides implementations of parser.ErrorReporter.
//
// Reporters can be combined with Multi, for example to print errors with
// Slog while also recording them to a file with File.
package reporter

import (
	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// Nop discards all reported errors.
type Nop struct{}

func (Nop) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {}

// Multi sends errors to multiple reporters in order.
type Multi struct {
	reporters []parser.ErrorReporter
}

// NewMulti returns a reporter that forwards errors to each of reporters.
// Nil reporters are skipped.
func NewMulti(reporters ...parser.ErrorReporter) *Multi {
	m := &Multi{}
	for _, r := range reporters {
		if r != nil {
			m.reporters = append(m.reporters, r)
		}
	}
	return m
}

// ReportError forwards the error to all reporters.
func (m *Multi) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {
	for _, r := range m.reporters {
		r.ReportError(urlData, pos, err)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ parser.ErrorReporter = Nop{}
	_ parser.ErrorReporter = (*Multi)(nil)
	_ parser.ErrorReporter = (*Slog)(nil)
	_ parser.ErrorReporter = (*Memory)(nil)
	_ parser.ErrorReporter = (*File)(nil)
)
