package parser_test

import (
	"errors"
	"testing"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
	"github.com/benbjohnson/cssparse/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// report is a single call to a recorder.
type report struct {
	pos token.Pos
	err parser.ContextualError
}

// recorder stores reported errors in order.
type recorder struct {
	reports []report
}

func (r *recorder) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {
	r.reports = append(r.reports, report{pos: pos, err: err})
}

// Ensure that malformed declarations are logged and skipped.
func TestParseDeclarations(t *testing.T) {
	c := parser.NewContextWithLineNumberOffset(css.Author, nil, 10, css.ParsingModeDefault, css.NoQuirks)
	var r recorder

	type decl struct {
		name      string
		value     values.Length
		important bool
	}
	var decls []decl

	in := parser.NewStringInput("width: 1px; height: foo;\nmargin: 2px !IMPORTANT;; 3px; @media x; top: 4px 5px; left:")
	errs := parser.ParseDeclarations(c, parser.NewErrorContext(&r), in, func(c *parser.Context, d *parser.Declaration) (func(), error) {
		v, err := parser.Parse[values.Length](c, d.Value)
		if err != nil {
			return nil, err
		}
		return func() { decls = append(decls, decl{name: d.Name, value: v, important: d.Important}) }, nil
	})

	assert.Equal(t, []decl{
		{name: "width", value: values.Length{Value: 1, Unit: "px"}},
		{name: "margin", value: values.Length{Value: 2, Unit: "px"}, important: true},
	}, decls)

	require.Len(t, errs, 5)
	assert.EqualError(t, errs[0], `height: expected length, got "foo"`)
	assert.EqualError(t, errs[1], `unexpected "3px"`)
	assert.EqualError(t, errs[2], `unexpected at-rule @media`)
	assert.EqualError(t, errs[3], `top: expected EOF, got "5px"`)
	assert.EqualError(t, errs[4], `missing value for left`)

	require.Len(t, r.reports, 5)
	assert.Equal(t, token.Pos{Char: 12, Line: 10}, r.reports[0].pos)
	assert.Equal(t, parser.UnsupportedPropertyDeclaration, r.reports[0].err.Kind)
	assert.Equal(t, "height: foo", r.reports[0].err.Source)
	assert.Equal(t, parser.UnsupportedRule, r.reports[2].err.Kind)
	assert.Equal(t, "@media x", r.reports[2].err.Source)
	assert.Equal(t, 11, r.reports[3].pos.Line)
	assert.True(t, errors.Is(r.reports[3].err, parser.ErrUnexpectedToken))
}

// Ensure that a declaration list without errors returns nil.
func TestParseDeclarations_OK(t *testing.T) {
	c := parser.NewContext(css.Author, nil, css.StyleRule, css.ParsingModeDefault, css.NoQuirks)
	var names []string
	errs := parser.ParseDeclarations(c, parser.NewErrorContext(nil), parser.NewStringInput(" a: b ; c : d(e; f) "), func(c *parser.Context, d *parser.Declaration) (func(), error) {
		d.Value.SkipUntil(func(token.Token) bool { return false })
		return func() { names = append(names, d.Name) }, nil
	})
	assert.Nil(t, errs)
	assert.Equal(t, []string{"a", "c"}, names)
}

// Ensure that a declaration with trailing tokens is never applied.
func TestParseDeclarations_TrailingTokens(t *testing.T) {
	c := parser.NewContext(css.Author, nil, css.StyleRule, css.ParsingModeDefault, css.NoQuirks)
	var applied []string
	errs := parser.ParseDeclarations(c, nil, parser.NewStringInput("top: 4px 5px; left: 1px"), func(c *parser.Context, d *parser.Declaration) (func(), error) {
		if _, err := parser.Parse[values.Length](c, d.Value); err != nil {
			return nil, err
		}
		return func() { applied = append(applied, d.Name) }, nil
	})

	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], `top: expected EOF, got "5px"`)
	assert.Equal(t, []string{"left"}, applied)
}

// Ensure that a nil apply function is accepted.
func TestParseDeclarations_NilApply(t *testing.T) {
	c := parser.NewContext(css.Author, nil, css.StyleRule, css.ParsingModeDefault, css.NoQuirks)
	errs := parser.ParseDeclarations(c, nil, parser.NewStringInput("a: 1px"), func(c *parser.Context, d *parser.Declaration) (func(), error) {
		_, err := parser.Parse[values.Length](c, d.Value)
		return nil, err
	})
	assert.Nil(t, errs)
}

func TestErrorList_Error(t *testing.T) {
	assert.Equal(t, "no errors", parser.ErrorList(nil).Error())
	assert.Equal(t, "a", parser.ErrorList{errors.New("a")}.Error())
	assert.Equal(t, "a (and 2 more errors)", parser.ErrorList{errors.New("a"), errors.New("b"), errors.New("c")}.Error())
}
