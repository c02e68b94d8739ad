package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/values"
)

// grammar parses a complete separated list from in and returns the
// serialized elements.
type grammar func(c *parser.Context, in *parser.Input, sep parser.Separator) ([]string, error)

var grammars = map[string]grammar{
	"length":              listOf[values.Length](),
	"non-negative-length": listOf[values.NonNegativeLength](),
	"number":              listOf[values.Number](),
	"percentage":          listOf[values.Percentage](),
	"ident":               listOf[values.Ident](),
	"url":                 listOf[values.URL](),
	"unicode-range":       listOf[values.UnicodeRange](),
}

func listOf[T any, P parser.ValuePtr[T]]() grammar {
	return func(c *parser.Context, in *parser.Input, sep parser.Separator) ([]string, error) {
		a, err := parser.ParseSeparated(c, in, sep, parser.Func[T, P]())
		if err != nil {
			return nil, err
		} else if err := in.ExpectExhausted(); err != nil {
			return nil, err
		}

		s := make([]string, len(a))
		for i := range a {
			s[i] = fmt.Sprint(a[i])
		}
		return s, nil
	}
}

// lookupGrammar returns the grammar registered under name.
func lookupGrammar(name string) (grammar, error) {
	g, ok := grammars[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown value type: %q (expected one of %s)", name, strings.Join(grammarNames(), ", "))
	}
	return g, nil
}

func grammarNames() []string {
	a := make([]string, 0, len(grammars))
	for name := range grammars {
		a = append(a, name)
	}
	sort.Strings(a)
	return a
}

// joinList serializes elements with the separator they were parsed with.
func joinList(a []string, sep parser.Separator) string {
	switch sep {
	case parser.Comma:
		return strings.Join(a, ", ")
	case parser.Slash:
		return strings.Join(a, " / ")
	default:
		return strings.Join(a, " ")
	}
}
