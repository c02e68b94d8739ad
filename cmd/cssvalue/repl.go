package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// session evaluates values entered interactively.
type session struct {
	c       *parser.Context
	ec      *parser.ErrorContext
	typ     string
	grammar grammar
	sep     parser.Separator
}

// eval parses a single line and writes the result to w.
// Returns false if the session should end.
func (s *session) eval(w io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	} else if strings.HasPrefix(line, ":") {
		return s.command(w, strings.Fields(line[1:]))
	}

	a, err := s.grammar(s.c, parser.NewStringInput(line), s.sep)
	if err != nil {
		var pos token.Pos
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			pos = perr.Pos
		}
		s.c.LogError(s.ec, pos, parser.ContextualError{Kind: parser.UnsupportedValue, Source: line, Err: err})
		fmt.Fprintf(w, "error at %s: %s\n", pos, err)
		return true
	}

	fmt.Fprintln(w, joinList(a, s.sep))
	return true
}

// command executes a ":name args" line.
func (s *session) command(w io.Writer, args []string) bool {
	if len(args) == 0 {
		args = []string{"help"}
	}

	switch cmd := strings.ToLower(args[0]); cmd {
	case "q", "quit", "exit":
		return false

	case "type":
		if len(args) != 2 {
			fmt.Fprintf(w, "type: %s\n", s.typ)
			return true
		}
		g, err := lookupGrammar(args[1])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		s.typ, s.grammar = strings.ToLower(args[1]), g

	case "sep":
		if len(args) != 2 {
			fmt.Fprintf(w, "sep: %s\n", s.sep)
			return true
		}
		sep, err := parser.ParseSeparator(args[1])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		s.sep = sep

	case "context":
		rt := "none"
		if t, ok := s.c.OptionalRuleType(); ok {
			rt = t.String()
		}
		fmt.Fprintf(w, "origin=%s quirks=%s mode=%s rule=%s url=%q\n",
			s.c.Origin(), s.c.QuirksMode(), s.c.ParsingMode(), rt, s.c.URLData())

	case "help", "?":
		fmt.Fprintf(w, `Enter a value to parse it as a %s list of %s.

Commands:
  :type <name>   Set the value type (%s)
  :sep <name>    Set the separator (comma, space, slash)
  :context       Show the parsing context
  :quit          Exit
`, s.sep, s.typ, strings.Join(grammarNames(), ", "))

	default:
		fmt.Fprintf(w, "Unknown command: %s (type :help for commands)\n", cmd)
	}
	return true
}

// runInteractive reads values from the terminal until EOF.
func runInteractive(s *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "css> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil {
			return nil
		}
		if !s.eval(rl.Stdout(), line) {
			return nil
		}
	}
}
