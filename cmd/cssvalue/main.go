// Command cssvalue parses CSS values against a configurable parsing context.
//
// Usage:
//
//	cssvalue [flags]
//	cssvalue [flags] -html page.html
//
// Without -html, values are read interactively and each line is parsed as a
// list of the selected type. With -html, every style attribute and <style>
// element of the document is checked and the errors found are printed.
//
// Examples:
//
//	# Parse comma separated lengths, accepting unitless numbers
//	cssvalue -type length -sep comma -config svg.yaml
//
//	# Check the margins of an HTML page and record errors
//	cssvalue -type length -sep space -props margin,padding -html index.html -errors errors.cbor
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/config"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/reporter"
)

// errInvalid is returned when a checked document contains errors.
var errInvalid = errors.New("document has invalid declarations")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err == errInvalid {
		os.Exit(1)
	} else if err == flag.ErrHelp {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cssvalue", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML file with parse options")
	typ := fs.String("type", "length", "value type ("+strings.Join(grammarNames(), ", ")+")")
	sepName := fs.String("sep", "comma", "list separator (comma, space, slash)")
	ruleName := fs.String("rule", "style", "rule type of interactive values")
	htmlPath := fs.String("html", "", "check the inline CSS of an HTML document")
	props := fs.String("props", "", "comma separated properties to check with -html (default all)")
	errorsPath := fs.String("errors", "", "append reported errors to a CBOR file")
	logLevel := fs.String("log-level", "error", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	g, err := lookupGrammar(*typ)
	if err != nil {
		return err
	}
	sep, err := parser.ParseSeparator(*sepName)
	if err != nil {
		return err
	}

	opt := config.DefaultOptions()
	if *configPath != "" {
		if opt, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	// Reported errors are logged and optionally recorded to a file.
	memory := reporter.NewMemory()
	reporters := []parser.ErrorReporter{memory, reporter.NewSlog(logger)}
	if *errorsPath != "" {
		f, err := reporter.NewFile(*errorsPath)
		if err != nil {
			return err
		}
		defer f.Close()
		reporters = append(reporters, f)
	}
	ec := parser.NewErrorContext(reporter.NewMulti(reporters...))

	if *htmlPath != "" {
		ch := &checker{opt: opt, ec: ec, grammar: g, sep: sep, props: parseProps(*props)}
		return runHTML(ch, *htmlPath, memory, stdout, logger)
	}

	ruleType, err := css.ParseRuleType(*ruleName)
	if err != nil {
		return err
	}
	return runInteractive(&session{c: opt.Context(ruleType), ec: ec, typ: strings.ToLower(*typ), grammar: g, sep: sep})
}

// runHTML checks the document at path and prints each reported error.
func runHTML(ch *checker, path string, memory *reporter.Memory, w io.Writer, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// URLs resolve against the document unless a base is configured.
	if ch.opt.URLData.String() == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		opt := *ch.opt
		opt.URLData = css.NewURLData(&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
		ch.opt = &opt
	}

	errs, err := ch.checkDocument(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, rec := range memory.Records() {
		fmt.Fprintln(w, rec)
	}
	logger.Info("checked document", slog.String("path", path), slog.Int("errors", len(errs)))

	if len(errs) > 0 {
		return errInvalid
	}
	return nil
}

func parseProps(s string) map[string]bool {
	if s == "" {
		return nil
	}
	m := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			m[strings.ToLower(name)] = true
		}
	}
	return m
}
