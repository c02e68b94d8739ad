package css

import (
	"fmt"
	"net/url"
	"strings"
)

// Origin represents the provenance of a style sheet.
type Origin int

const (
	// UserAgent is the browser's default style sheet.
	UserAgent Origin = iota
	// User is a style sheet supplied by the reader.
	User
	// Author is a style sheet supplied by the document.
	Author
)

var origins = [...]string{
	UserAgent: "user-agent",
	User:      "user",
	Author:    "author",
}

// String returns the string representation of the origin.
func (o Origin) String() string {
	if o >= 0 && int(o) < len(origins) {
		return origins[o]
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// ParseOrigin returns the origin named by s.
func ParseOrigin(s string) (Origin, error) {
	for i, name := range origins {
		if strings.EqualFold(s, name) {
			return Origin(i), nil
		}
	}
	return 0, fmt.Errorf("unknown origin: %q", s)
}

// QuirksMode represents the compatibility mode of the owning document.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

var quirksModes = [...]string{
	NoQuirks:      "no-quirks",
	LimitedQuirks: "limited-quirks",
	Quirks:        "quirks",
}

// String returns the string representation of the quirks mode.
func (m QuirksMode) String() string {
	if m >= 0 && int(m) < len(quirksModes) {
		return quirksModes[m]
	}
	return fmt.Sprintf("QuirksMode(%d)", int(m))
}

// ParseQuirksMode returns the quirks mode named by s.
func ParseQuirksMode(s string) (QuirksMode, error) {
	for i, name := range quirksModes {
		if strings.EqualFold(s, name) {
			return QuirksMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown quirks mode: %q", s)
}

// RuleType represents the kind of rule currently being parsed.
// The zero value is not a valid rule type.
type RuleType int

const (
	_ RuleType = iota
	StyleRule
	CharsetRule
	ImportRule
	MediaRule
	FontFaceRule
	PageRule
	KeyframesRule
	KeyframeRule
	MarginRule
	NamespaceRule
	CounterStyleRule
	SupportsRule
	DocumentRule
	FontFeatureValuesRule
	ViewportRule
)

var ruleTypes = [...]string{
	StyleRule:             "style",
	CharsetRule:           "charset",
	ImportRule:            "import",
	MediaRule:             "media",
	FontFaceRule:          "font-face",
	PageRule:              "page",
	KeyframesRule:         "keyframes",
	KeyframeRule:          "keyframe",
	MarginRule:            "margin",
	NamespaceRule:         "namespace",
	CounterStyleRule:      "counter-style",
	SupportsRule:          "supports",
	DocumentRule:          "document",
	FontFeatureValuesRule: "font-feature-values",
	ViewportRule:          "viewport",
}

// String returns the string representation of the rule type.
func (t RuleType) String() string {
	if t > 0 && int(t) < len(ruleTypes) {
		return ruleTypes[t]
	}
	return fmt.Sprintf("RuleType(%d)", int(t))
}

// ParseRuleType returns the rule type named by s.
func ParseRuleType(s string) (RuleType, error) {
	for i, name := range ruleTypes {
		if i > 0 && strings.EqualFold(s, name) {
			return RuleType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rule type: %q", s)
}

// ParsingMode is a set of flags that relax value parsing.
type ParsingMode uint8

const (
	// ParsingModeDefault applies the normal parsing rules.
	ParsingModeDefault ParsingMode = 0

	// ParsingModeAllowUnitlessLength accepts numbers where a length is
	// expected, as in SVG presentation attributes.
	ParsingModeAllowUnitlessLength ParsingMode = 1 << 0

	// ParsingModeAllowAllNumericValues accepts numeric values outside of
	// the range a property normally permits.
	ParsingModeAllowAllNumericValues ParsingMode = 1 << 1
)

var parsingModes = []struct {
	mode ParsingMode
	name string
}{
	{ParsingModeAllowUnitlessLength, "allow-unitless-length"},
	{ParsingModeAllowAllNumericValues, "allow-all-numeric-values"},
}

// AllowsUnitlessLengths returns true if unitless lengths are accepted.
func (m ParsingMode) AllowsUnitlessLengths() bool {
	return m&ParsingModeAllowUnitlessLength != 0
}

// AllowsAllNumericValues returns true if out-of-range numbers are accepted.
func (m ParsingMode) AllowsAllNumericValues() bool {
	return m&ParsingModeAllowAllNumericValues != 0
}

// String returns the flag names joined by "|".
func (m ParsingMode) String() string {
	if m == ParsingModeDefault {
		return "default"
	}
	var a []string
	for _, f := range parsingModes {
		if m&f.mode != 0 {
			a = append(a, f.name)
		}
	}
	return strings.Join(a, "|")
}

// ParseParsingMode returns the flag named by s.
func ParseParsingMode(s string) (ParsingMode, error) {
	if strings.EqualFold(s, "default") {
		return ParsingModeDefault, nil
	}
	for _, f := range parsingModes {
		if strings.EqualFold(s, f.name) {
			return f.mode, nil
		}
	}
	return 0, fmt.Errorf("unknown parsing mode: %q", s)
}

// Namespaces represents the namespaces declared by @namespace rules.
type Namespaces struct {
	// Default is the namespace declared without a prefix.
	Default string

	// Prefixes maps declared prefixes to namespace URIs.
	Prefixes map[string]string
}

// Lookup returns the namespace URI for prefix.
// The empty prefix returns the default namespace.
func (ns *Namespaces) Lookup(prefix string) (string, bool) {
	if ns == nil {
		return "", false
	}
	if prefix == "" {
		return ns.Default, ns.Default != ""
	}
	uri, ok := ns.Prefixes[prefix]
	return uri, ok
}

// URLData is the information needed to resolve relative URLs found in a
// style sheet.
type URLData struct {
	base *url.URL
}

// NewURLData returns URL data resolving against base. A nil base leaves
// references unresolved.
func NewURLData(base *url.URL) *URLData {
	return &URLData{base: base}
}

// ParseURLData parses rawurl and returns URL data resolving against it.
func ParseURLData(rawurl string) (*URLData, error) {
	if rawurl == "" {
		return NewURLData(nil), nil
	}
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	return NewURLData(u), nil
}

// Resolve resolves ref against the base URL.
func (d *URLData) Resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if d == nil || d.base == nil {
		return u, nil
	}
	return d.base.ResolveReference(u), nil
}

// String returns the base URL, or an empty string if there is none.
func (d *URLData) String() string {
	if d == nil || d.base == nil {
		return ""
	}
	return d.base.String()
}
