package parser

import (
	"fmt"
	"strings"
)

// Value is implemented by specified values that can parse themselves from
// an Input. ParseCSS is called on a zero value and fills it in.
//
// An implementation may consume tokens before failing. Callers that want
// to try an alternative are responsible for restoring the Input, usually
// with Try.
type Value interface {
	ParseCSS(c *Context, in *Input) error
}

// ValuePtr constrains P to be a pointer to T implementing Value.
type ValuePtr[T any] interface {
	*T
	Value
}

// Parse parses a value of type T.
func Parse[T any, P ValuePtr[T]](c *Context, in *Input) (T, error) {
	var v T
	if err := P(&v).ParseCSS(c, in); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ParseFunc parses a single value of type T.
type ParseFunc[T any] func(c *Context, in *Input) (T, error)

// Func returns the ParseFunc for a Value type.
func Func[T any, P ValuePtr[T]]() ParseFunc[T] {
	return Parse[T, P]
}

// Try calls fn and restores in to its prior position if fn fails.
func Try[T any](in *Input, fn func(in *Input) (T, error)) (T, error) {
	st := in.State()
	v, err := fn(in)
	if err != nil {
		in.Reset(st)
	}
	return v, err
}

// Separator represents the tokens expected between elements of a list.
type Separator int

const (
	// Comma separates elements with "," tokens.
	Comma Separator = iota
	// Space separates elements with whitespace.
	Space
	// Slash separates elements with "/" delimiters.
	Slash
)

var separators = [...]string{
	Comma: "comma",
	Space: "space",
	Slash: "slash",
}

// String returns the string representation of the separator.
func (s Separator) String() string {
	if s >= 0 && int(s) < len(separators) {
		return separators[s]
	}
	return fmt.Sprintf("Separator(%d)", int(s))
}

// ParseSeparator returns the separator named by s.
func ParseSeparator(s string) (Separator, error) {
	for i, name := range separators {
		if strings.EqualFold(s, name) {
			return Separator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown separator: %q", s)
}

// Separated is implemented by value types that are written as a list with
// a fixed separator.
type Separated interface {
	Separator() Separator
}

// ParseSeparated parses one or more values separated by sep.
//
// A comma-separated list must make up the rest of the input: anything
// following an element other than a comma is an error. Space and slash
// separated lists stop at the first element that fails to parse and leave
// the remaining input for the caller.
func ParseSeparated[T any](c *Context, in *Input, sep Separator, fn ParseFunc[T]) ([]T, error) {
	switch sep {
	case Comma:
		return parseCommaSeparated(c, in, fn)
	case Space:
		return parseSpaceSeparated(c, in, fn)
	case Slash:
		return parseSlashSeparated(c, in, fn)
	}
	panic(fmt.Sprintf("parser: invalid separator: %d", int(sep)))
}

// ParseList parses one or more values of type T using the separator that
// T declares.
func ParseList[T any, P interface {
	*T
	Value
	Separated
}](c *Context, in *Input) ([]T, error) {
	var zero T
	return ParseSeparated(c, in, P(&zero).Separator(), Func[T, P]())
}

func parseCommaSeparated[T any](c *Context, in *Input, fn ParseFunc[T]) ([]T, error) {
	var a []T
	for {
		v, err := fn(c, in)
		if err != nil {
			return nil, err
		}
		a = append(a, v)

		if in.IsExhausted() {
			return a, nil
		} else if err := in.ExpectComma(); err != nil {
			return nil, err
		}
	}
}

func parseSpaceSeparated[T any](c *Context, in *Input, fn ParseFunc[T]) ([]T, error) {
	v, err := fn(c, in)
	if err != nil {
		return nil, err
	}
	a := []T{v}

	for !in.IsExhausted() {
		v, err := Try(in, func(in *Input) (T, error) { return fn(c, in) })
		if err != nil {
			break
		}
		a = append(a, v)
	}
	return a, nil
}

func parseSlashSeparated[T any](c *Context, in *Input, fn ParseFunc[T]) ([]T, error) {
	v, err := fn(c, in)
	if err != nil {
		return nil, err
	}
	a := []T{v}

	for {
		st := in.State()
		if err := in.ExpectDelim("/"); err != nil {
			in.Reset(st)
			return a, nil
		}

		v, err := fn(c, in)
		if err != nil {
			return nil, err
		}
		a = append(a, v)
	}
}
