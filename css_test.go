package css_test

import (
	"testing"

	"github.com/benbjohnson/cssparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure that enumerations can be converted to and from strings.
func TestOrigin_String(t *testing.T) {
	var tests = []struct {
		s string
		o css.Origin
	}{
		{s: `user-agent`, o: css.UserAgent},
		{s: `user`, o: css.User},
		{s: `author`, o: css.Author},
	}

	for i, tt := range tests {
		o, err := css.ParseOrigin(tt.s)
		if err != nil {
			t.Errorf("%d. <%q> unexpected error: %s", i, tt.s, err)
		} else if o != tt.o {
			t.Errorf("%d. <%q> origin: exp=%s, got=%s", i, tt.s, tt.o, o)
		} else if o.String() != tt.s {
			t.Errorf("%d. <%q> string: exp=%q, got=%q", i, tt.s, tt.s, o.String())
		}
	}

	_, err := css.ParseOrigin("system")
	assert.EqualError(t, err, `unknown origin: "system"`)
}

func TestQuirksMode_String(t *testing.T) {
	m, err := css.ParseQuirksMode("Limited-Quirks")
	require.NoError(t, err)
	assert.Equal(t, css.LimitedQuirks, m)
	assert.Equal(t, "quirks", css.Quirks.String())
	assert.Equal(t, "QuirksMode(9)", css.QuirksMode(9).String())
}

func TestRuleType_String(t *testing.T) {
	assert.Equal(t, "media", css.MediaRule.String())
	assert.Equal(t, "font-feature-values", css.FontFeatureValuesRule.String())
	assert.Equal(t, "RuleType(0)", css.RuleType(0).String())
}

func TestParseRuleType(t *testing.T) {
	rt, err := css.ParseRuleType("Font-Face")
	require.NoError(t, err)
	assert.Equal(t, css.FontFaceRule, rt)

	_, err = css.ParseRuleType("")
	assert.EqualError(t, err, `unknown rule type: ""`)
}

// Ensure that parsing mode flags report the leniency they enable.
func TestParsingMode(t *testing.T) {
	m := css.ParsingModeAllowUnitlessLength | css.ParsingModeAllowAllNumericValues
	assert.True(t, m.AllowsUnitlessLengths())
	assert.True(t, m.AllowsAllNumericValues())
	assert.Equal(t, "allow-unitless-length|allow-all-numeric-values", m.String())

	assert.False(t, css.ParsingModeDefault.AllowsUnitlessLengths())
	assert.Equal(t, "default", css.ParsingModeDefault.String())

	f, err := css.ParseParsingMode("allow-all-numeric-values")
	require.NoError(t, err)
	assert.Equal(t, css.ParsingModeAllowAllNumericValues, f)

	_, err = css.ParseParsingMode("lenient")
	assert.Error(t, err)
}

func TestNamespaces_Lookup(t *testing.T) {
	ns := &css.Namespaces{
		Default:  "http://www.w3.org/1999/xhtml",
		Prefixes: map[string]string{"svg": "http://www.w3.org/2000/svg"},
	}

	uri, ok := ns.Lookup("svg")
	assert.True(t, ok)
	assert.Equal(t, "http://www.w3.org/2000/svg", uri)

	uri, ok = ns.Lookup("")
	assert.True(t, ok)
	assert.Equal(t, "http://www.w3.org/1999/xhtml", uri)

	_, ok = ns.Lookup("math")
	assert.False(t, ok)

	var empty *css.Namespaces
	_, ok = empty.Lookup("svg")
	assert.False(t, ok)
}

func TestURLData_Resolve(t *testing.T) {
	d, err := css.ParseURLData("https://example.com/styles/main.css")
	require.NoError(t, err)

	u, err := d.Resolve("../img/bg.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/bg.png", u.String())
	assert.Equal(t, "https://example.com/styles/main.css", d.String())

	d, err = css.ParseURLData("")
	require.NoError(t, err)
	u, err = d.Resolve("bg.png")
	require.NoError(t, err)
	assert.Equal(t, "bg.png", u.String())
}
