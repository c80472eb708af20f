package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress for longer operations. On a terminal it
// animates in place; elsewhere it degrades to plain lines.
type Spinner struct {
	out      io.Writer
	message  string
	animated bool
	styles   Styles

	mu   sync.Mutex
	done chan struct{}
}

func newSpinner(out io.Writer, message string, animated bool, styles Styles) *Spinner {
	return &Spinner{
		out:      out,
		message:  message,
		animated: animated,
		styles:   styles,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.animated {
		_, _ = fmt.Fprintln(s.out, s.message)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_, _ = fmt.Fprintf(s.out, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
				frame++
			}
		}
	}(s.done)
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(message string) {
	s.stop()
	_, _ = fmt.Fprintln(s.out, s.styles.Success.Render("✓ "+message))
}

// Fail stops the spinner and prints a failure line.
func (s *Spinner) Fail(message string) {
	s.stop()
	_, _ = fmt.Fprintln(s.out, s.styles.Error.Render("✗ "+message))
}

func (s *Spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return
	}
	close(s.done)
	s.done = nil

	if s.animated {
		// Clear the in-place frame before the final line
		_, _ = fmt.Fprint(s.out, "\r\033[K")
	}
}
