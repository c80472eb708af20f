// Package testutil provides fixtures and output helpers for CLI tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/graphload/internal/cli/output"
)

// WriteTableCSV writes a two-row commandments table into dir and
// returns its path. The first column is the conventional drop column,
// so converting it yields two nodes with a single text property each.
func WriteTableCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "raw.csv")
	data := "commandment_number,text\n1,Do X\n2,Do Y\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write table fixture: %v", err)
	}
	return path
}

// WriteCorpus writes a one-book corpus document into dir and returns
// its path. The book holds one chapter of two verses: 4 nodes, and 5
// edges when edge generation is on.
func WriteCorpus(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "corpus.json")
	doc := `[{"name":"Genesis","abbrev":"gn","chapters":[["In the beginning","And the earth"]]}]`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("failed to write corpus fixture: %v", err)
	}
	return path
}

// TestRenderer wraps a Renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer over fresh buffers with the given
// mode and simulated TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a text-mode renderer on a simulated TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a markdown-mode renderer.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a JSON-mode renderer.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns everything written to stdout so far.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns everything written to stderr so far.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
