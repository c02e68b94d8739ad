// Package config loads parse options from YAML and builds the root parsing
// context from them.
//
// A configuration file looks like:
//
//	origin: author
//	quirks: no-quirks
//	base_url: https://example.com/styles/
//	line_offset: 0
//	parsing_mode: [allow-unitless-length]
//
// All keys are optional. Unknown values are rejected.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
)

// Options represents the settings used to parse values.
type Options struct {
	Origin      css.Origin
	Quirks      css.QuirksMode
	URLData     *css.URLData
	LineOffset  uint64
	ParsingMode css.ParsingMode
}

// DefaultOptions returns the options used when no file is given.
func DefaultOptions() *Options {
	return &Options{
		Origin:  css.Author,
		Quirks:  css.NoQuirks,
		URLData: css.NewURLData(nil),
	}
}

// file is the YAML representation of Options.
type file struct {
	Origin      string   `yaml:"origin"`
	Quirks      string   `yaml:"quirks"`
	BaseURL     string   `yaml:"base_url"`
	LineOffset  uint64   `yaml:"line_offset"`
	ParsingMode []string `yaml:"parsing_mode"`
}

// Parse parses options from YAML bytes.
func Parse(data []byte) (*Options, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	opt := DefaultOptions()
	opt.LineOffset = f.LineOffset

	if f.Origin != "" {
		origin, err := css.ParseOrigin(f.Origin)
		if err != nil {
			return nil, &LoadError{Message: "invalid origin", Cause: err}
		}
		opt.Origin = origin
	}

	if f.Quirks != "" {
		quirks, err := css.ParseQuirksMode(f.Quirks)
		if err != nil {
			return nil, &LoadError{Message: "invalid quirks mode", Cause: err}
		}
		opt.Quirks = quirks
	}

	urlData, err := css.ParseURLData(f.BaseURL)
	if err != nil {
		return nil, &LoadError{Message: "invalid base URL", Cause: err}
	}
	opt.URLData = urlData

	for _, s := range f.ParsingMode {
		mode, err := css.ParseParsingMode(s)
		if err != nil {
			return nil, &LoadError{Message: "invalid parsing mode", Cause: err}
		}
		opt.ParsingMode |= mode
	}

	return opt, nil
}

// Load loads options from a YAML file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	opt, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return opt, nil
}

// Context returns the root parsing context for the options with ruleType,
// which may be zero for none. Options with a line offset produce an inline
// context; a non-zero ruleType is then set by deriving from it, which leaves
// the context without namespaces.
func (opt *Options) Context(ruleType css.RuleType) *parser.Context {
	if opt.LineOffset == 0 {
		return parser.NewContext(opt.Origin, opt.URLData, ruleType, opt.ParsingMode, opt.Quirks)
	}

	c := parser.NewContextWithLineNumberOffset(opt.Origin, opt.URLData, opt.LineOffset, opt.ParsingMode, opt.Quirks)
	if ruleType != 0 {
		c = parser.NewContextWithRuleType(c, ruleType, nil)
	}
	return c
}

// InlineContext returns a context for inline CSS that begins at line offset
// of the document. The offset from the options is added to it.
func (opt *Options) InlineContext(offset uint64) *parser.Context {
	return parser.NewContextWithLineNumberOffset(opt.Origin, opt.URLData, opt.LineOffset+offset, opt.ParsingMode, opt.Quirks)
}

// LoadError provides details about a configuration loading error.
type LoadError struct {
	// File is the path to the file that failed to load, if any.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File != "" {
		return e.File + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
