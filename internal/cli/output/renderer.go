// Package output renders command results as styled text for humans,
// markdown for pipes and agents, or JSON for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes. ModeAuto picks text on a terminal and markdown everywhere else.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer. An empty or unknown mode behaves
// like ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, detectTTY(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state
// instead of detecting one, so tests can exercise terminal styling
// against plain buffers.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}

	colored := isTTY && !termenv.EnvNoColor()

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(colored),
	}
}

// EffectiveMode resolves ModeAuto against the detected environment.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the renderer's style set.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes a line to the output writer.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled heading. Level 1 is the page title, anything
// deeper renders as a section heading.
func (r *Renderer) Header(level int, text string) {
	style := r.styles.Header2
	if level == 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(text string) {
	r.Println(r.styles.Muted.Render(text))
}

// Success writes a check-marked success line.
func (r *Renderer) Success(text string) {
	r.Println(r.styles.Success.Render("✓ " + text))
}

// Warning writes a warning line.
func (r *Renderer) Warning(text string) {
	r.Println(r.styles.Warning.Render("⚠ " + text))
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(text string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+text))
}

// StatusLine writes one name with a status symbol and optional detail,
// indented for use under a Header.
func (r *Renderer) StatusLine(name, status, detail string) {
	symbol := r.styles.StatusSuccess.Render("✓")
	if status != "success" {
		symbol = r.styles.StatusFailed.Render("✗")
	}

	line := fmt.Sprintf("  %s %s", symbol, name)
	if detail != "" {
		line += " " + r.styles.Muted.Render("("+detail+")")
	}
	r.Println(line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewSpinner creates a spinner bound to the renderer's error writer.
// It animates only on a terminal; elsewhere it prints plain lines.
func (r *Renderer) NewSpinner(message string) *Spinner {
	return newSpinner(r.errOut, message, r.isTTY, r.styles)
}

func detectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
