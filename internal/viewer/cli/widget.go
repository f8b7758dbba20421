package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// previewLines caps how much of a file the terminal widget prints.
const previewLines = 20

// TermWidget is the terminal rendering backend. It accepts content through
// the native set-content capability and prints a bounded preview, which is
// all a text terminal can do with a CAD file.
type TermWidget struct {
	mu       sync.Mutex
	w        io.Writer
	children int
}

func NewTermWidget(w io.Writer) *TermWidget {
	return &TermWidget{w: w}
}

func (t *TermWidget) ClearChildren() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.children = 0
}

func (t *TermWidget) SetContent(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := strings.Split(text, "\n")
	shown := lines
	if len(shown) > previewLines {
		shown = shown[:previewLines]
	}

	for _, line := range shown {
		if _, err := fmt.Fprintln(t.w, line); err != nil {
			return err
		}
	}
	if len(lines) > previewLines {
		if _, err := fmt.Fprintf(t.w, "... (%d more lines)\n", len(lines)-previewLines); err != nil {
			return err
		}
	}

	t.children = 1
	return nil
}

// HasContent reports whether the widget currently holds rendered content.
func (t *TermWidget) HasContent() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.children > 0
}
