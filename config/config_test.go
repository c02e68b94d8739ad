package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/config"
)

func TestParse(t *testing.T) {
	opt, err := config.Parse([]byte(`
origin: user-agent
quirks: limited-quirks
base_url: https://example.com/styles/
line_offset: 4
parsing_mode: [allow-unitless-length, allow-all-numeric-values]
`))
	require.NoError(t, err)
	assert.Equal(t, css.UserAgent, opt.Origin)
	assert.Equal(t, css.LimitedQuirks, opt.Quirks)
	assert.Equal(t, "https://example.com/styles/", opt.URLData.String())
	assert.Equal(t, uint64(4), opt.LineOffset)
	assert.True(t, opt.ParsingMode.AllowsUnitlessLengths())
	assert.True(t, opt.ParsingMode.AllowsAllNumericValues())
}

// Ensure that an empty document yields the defaults.
func TestParse_Empty(t *testing.T) {
	opt, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOptions(), opt)
}

func TestParse_Invalid(t *testing.T) {
	var tests = []struct {
		s   string
		err string
	}{
		{s: `origin: browser`, err: `invalid origin: unknown origin: "browser"`},
		{s: `quirks: almost`, err: `invalid quirks mode: unknown quirks mode: "almost"`},
		{s: `parsing_mode: [strict]`, err: `invalid parsing mode: unknown parsing mode: "strict"`},
		{s: `base_url: "http://[::1"`, err: `invalid base URL: parse "http://[::1": missing ']' in host`},
	}

	for i, tt := range tests {
		_, err := config.Parse([]byte(tt.s))
		if err == nil || err.Error() != tt.err {
			t.Errorf("%d. <%q> error: exp=%q, got=%v", i, tt.s, tt.err, err)
		}
	}

	_, err := config.Parse([]byte("origin: [a"))
	var le *config.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "failed to parse YAML", le.Message)
	assert.NotNil(t, le.Unwrap())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cssvalue.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: user\n"), 0644))

	opt, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, css.User, opt.Origin)

	require.NoError(t, os.WriteFile(path, []byte("origin: nobody\n"), 0644))
	_, err = config.Load(path)
	var le *config.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.File)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// Ensure that the options pick the context constructor by line offset.
func TestOptions_Context(t *testing.T) {
	opt := config.DefaultOptions()
	c := opt.Context(css.StyleRule)
	assert.Equal(t, css.StyleRule, c.RuleType())
	assert.Equal(t, uint64(0), c.LineNumberOffset())

	c = opt.Context(0)
	assert.False(t, c.HasRuleType())

	// The rule type is kept when the options carry a line offset.
	opt.LineOffset = 3
	c = opt.Context(css.MediaRule)
	assert.Equal(t, css.MediaRule, c.RuleType())
	assert.Equal(t, uint64(3), c.LineNumberOffset())
	assert.Nil(t, c.Namespaces())

	c = opt.Context(0)
	assert.False(t, c.HasRuleType())
	assert.Equal(t, uint64(3), c.LineNumberOffset())

	c = opt.InlineContext(10)
	assert.Equal(t, uint64(13), c.LineNumberOffset())
	assert.Equal(t, css.Author, c.Origin())
}
