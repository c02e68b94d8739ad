package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/reporter"
)

func newSession(r parser.ErrorReporter) *session {
	c := parser.NewContextWithLineNumberOffset(css.Author, nil, 7, css.ParsingModeDefault, css.NoQuirks)
	return &session{c: c, ec: parser.NewErrorContext(r), typ: "length", grammar: grammars["length"], sep: parser.Comma}
}

func TestSession_Eval(t *testing.T) {
	memory := reporter.NewMemory()
	s := newSession(memory)

	var tests = []struct {
		line string
		out  string
	}{
		{line: `1px, 2EM`, out: "1px, 2em\n"},
		{line: `   `, out: ""},
		{line: `1px 2px`, out: "error at 1:5: expected comma, got \"2px\"\n"},
		{line: `:sep space`, out: ""},
		{line: `1px 2px`, out: "1px 2px\n"},
		{line: `:type unicode-range`, out: ""},
		{line: `:sep comma`, out: ""},
		{line: `U+0-7F, u+4??`, out: "U+0-7F, U+400-4FF\n"},
		{line: `:type color`, out: "Error: unknown value type: \"color\" (expected one of ident, length, non-negative-length, number, percentage, unicode-range, url)\n"},
		{line: `:sep semicolon`, out: "Error: unknown separator: \"semicolon\"\n"},
		{line: `:type`, out: "type: unicode-range\n"},
		{line: `:context`, out: "origin=author quirks=no-quirks mode=default rule=none url=\"\"\n"},
		{line: `:bogus`, out: "Unknown command: bogus (type :help for commands)\n"},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		assert.True(t, s.eval(&buf, tt.line), "%d. <%q>", i, tt.line)
		assert.Equal(t, tt.out, buf.String(), "%d. <%q>", i, tt.line)
	}

	// Only the failed value is reported, shifted by the context's offset.
	records := memory.Records()
	require.Len(t, records, 1)
	assert.Equal(t, parser.UnsupportedValue, records[0].Kind)
	assert.Equal(t, "1px 2px", records[0].Source)
	assert.Equal(t, 7, records[0].Line)
	assert.Equal(t, 4, records[0].Column)
}

func TestSession_Quit(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(nil)
	assert.True(t, s.eval(&buf, ":help"))
	assert.Contains(t, buf.String(), ":type <name>")
	assert.False(t, s.eval(&buf, ":quit"))
}

func TestJoinList(t *testing.T) {
	a := []string{"a", "b"}
	assert.Equal(t, "a, b", joinList(a, parser.Comma))
	assert.Equal(t, "a b", joinList(a, parser.Space))
	assert.Equal(t, "a / b", joinList(a, parser.Slash))
}
