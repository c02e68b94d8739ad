package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/cssparse/config"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/reporter"
)

const testDocument = `<html>
<head>
<style>
p { margin: 1px 2px; padding: auto }
@media print { h1 { margin: 3qq } }
</style>
</head>
<body>
<div
  class="x" style="margin: 4px; top: 5px auto">hi</div>
<p STYLE="margin: 1qq">x</p>
</body>
</html>
`

// Ensure that fragments are extracted with the line they start on.
func TestExtractFragments(t *testing.T) {
	a, err := extractFragments(strings.NewReader(testDocument))
	require.NoError(t, err)
	require.Len(t, a, 3)

	assert.Equal(t, uint64(2), a[0].line)
	assert.False(t, a[0].attr)
	assert.True(t, strings.HasPrefix(a[0].source, "\np { margin"))

	assert.Equal(t, fragment{line: 9, source: "margin: 4px; top: 5px auto", attr: true}, a[1])
	assert.Equal(t, fragment{line: 10, source: "margin: 1qq", attr: true}, a[2])
}

// Ensure that the style attribute is located by name and not inside values.
func TestStyleAttrLine(t *testing.T) {
	var tests = []struct {
		raw  string
		line uint64
	}{
		{raw: `<p style="a: b">`, line: 0},
		{raw: "<div title=\" style\" \n style=\"a: b\">", line: 1},
		{raw: "<div\n  data-style='x'\n\n  STYLE = \"a: b\">", line: 3},
		{raw: "<div title=style\nstyle=a:b>", line: 1},
		{raw: "<input disabled\n style=\"a: b\"/>", line: 1},
		{raw: "<div title=\"\nstyle\">", line: 0},
	}

	for i, tt := range tests {
		if line := styleAttrLine([]byte(tt.raw)); line != tt.line {
			t.Errorf("%d. <%q> line: exp=%d, got=%d", i, tt.raw, tt.line, line)
		}
	}
}

// Ensure that a style attribute after a value containing "style" keeps its line.
func TestExtractFragments_QuotedStyle(t *testing.T) {
	a, err := extractFragments(strings.NewReader("<div title=\" style\" \n style=\"margin: 1px\"></div>"))
	require.NoError(t, err)
	assert.Equal(t, []fragment{{line: 1, source: "margin: 1px", attr: true}}, a)
}

func TestDeclarationBlocks(t *testing.T) {
	blocks := declarationBlocks(parser.NewStringInput("a { b: c } @media x { d { e: f; g: h } } }"))
	require.Len(t, blocks, 2)
	assert.Equal(t, "b", blocks[0][1].String())
	assert.Len(t, blocks[1], 12)
}

// Ensure that errors are reported at their line in the document.
func TestChecker_CheckDocument(t *testing.T) {
	memory := reporter.NewMemory()
	ch := &checker{
		opt:     config.DefaultOptions(),
		ec:      parser.NewErrorContext(memory),
		grammar: grammars["length"],
		sep:     parser.Space,
	}

	errs, err := ch.checkDocument(strings.NewReader(testDocument))
	require.NoError(t, err)
	require.Len(t, errs, 4)
	assert.EqualError(t, errs[0], `padding: expected length, got "auto"`)
	assert.EqualError(t, errs[1], `margin: unknown length unit: "qq"`)
	assert.EqualError(t, errs[2], `top: expected EOF, got "auto"`)
	assert.EqualError(t, errs[3], `margin: unknown length unit: "qq"`)

	var lines []int
	for _, rec := range memory.Records() {
		assert.Equal(t, parser.UnsupportedPropertyDeclaration, rec.Kind)
		lines = append(lines, rec.Line)
	}
	assert.Equal(t, []int{3, 4, 9, 10}, lines)
}

// Ensure that only selected properties are checked.
func TestChecker_Props(t *testing.T) {
	ch := &checker{
		opt:     config.DefaultOptions(),
		ec:      parser.NewErrorContext(nil),
		grammar: grammars["length"],
		sep:     parser.Space,
		props:   parseProps(" Top, "),
	}

	errs, err := ch.checkDocument(strings.NewReader(testDocument))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], `top: expected EOF, got "auto"`)
}
