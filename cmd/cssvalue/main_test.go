package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/cssparse/reporter"
)

// Ensure that checking a document prints and records each error.
func TestRun_HTML(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "index.html")
	errorsPath := filepath.Join(dir, "errors.cbor")
	configPath := filepath.Join(dir, "cssvalue.yaml")
	require.NoError(t, os.WriteFile(htmlPath, []byte(testDocument), 0644))
	require.NoError(t, os.WriteFile(configPath, []byte("base_url: https://example.com/\n"), 0644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", configPath, "-sep", "space", "-html", htmlPath, "-errors", errorsPath}, &stdout, &stderr)
	assert.Equal(t, errInvalid, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `https://example.com/:4:22: unsupported property declaration: padding: expected length, got "auto"`, lines[0])

	records, err := reporter.ReadFile(errorsPath)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRun_Invalid(t *testing.T) {
	var tests = []struct {
		args []string
		err  string
	}{
		{args: []string{"-type", "color"}, err: `unknown value type: "color"`},
		{args: []string{"-sep", "tab"}, err: `unknown separator: "tab"`},
		{args: []string{"-rule", "nope"}, err: `unknown rule type: "nope"`},
		{args: []string{"-log-level", "loud"}, err: `invalid log level`},
		{args: []string{"extra"}, err: `unexpected arguments: extra`},
		{args: []string{"-config", "missing.yaml"}, err: `missing.yaml: failed to read file`},
	}

	for i, tt := range tests {
		var stdout, stderr bytes.Buffer
		err := run(tt.args, &stdout, &stderr)
		if err == nil || !strings.Contains(err.Error(), tt.err) {
			t.Errorf("%d. %v error: exp=%q, got=%v", i, tt.args, tt.err, err)
		}
	}
}
