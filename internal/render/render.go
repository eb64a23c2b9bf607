// Package render prints resolved entries, one per line.
//
// A line is the raw value, optionally followed by a tab and the display
// string, optionally followed by a NUL, and always terminated by '\n'.
package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jh3/codep/internal/entry"
)

// Markup wraps the remote type hint of display strings.
type Markup int

const (
	MarkupNone Markup = iota
	// MarkupPango emits Pango markup for launchers such as rofi.
	MarkupPango
	// MarkupANSI emits faint text for terminals and fzf --ansi.
	MarkupANSI
)

var markupNames = map[Markup]string{
	MarkupNone:  "none",
	MarkupPango: "pango",
	MarkupANSI:  "ansi",
}

func (m Markup) String() string {
	return markupNames[m]
}

// ParseMarkup parses "none", "pango" or "ansi".
func ParseMarkup(s string) (Markup, error) {
	for m, name := range markupNames {
		if name == s {
			return m, nil
		}
	}
	return MarkupNone, fmt.Errorf("invalid markup %q (want none, pango or ansi)", s)
}

// Options controls the line format.
type Options struct {
	Display        bool
	Markup         Markup
	NullTerminated bool
}

// Writer renders entries to an underlying writer.
type Writer struct {
	w    *bufio.Writer
	opts Options
	hint lipgloss.Style
}

// NewWriter creates a Writer. Call Flush when done.
func NewWriter(w io.Writer, opts Options) *Writer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return &Writer{
		w:    bufio.NewWriter(w),
		opts: opts,
		hint: r.NewStyle().Faint(true),
	}
}

// Write prints one entry.
func (w *Writer) Write(e entry.Resolved) error {
	w.w.WriteString(e.Raw)
	if w.opts.Display {
		w.w.WriteByte('\t')
		w.w.WriteString(w.display(e))
	}
	if w.opts.NullTerminated {
		w.w.WriteByte(0)
	}
	return w.w.WriteByte('\n')
}

// WriteAll prints every entry and flushes.
func (w *Writer) WriteAll(entries []entry.Resolved) error {
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) display(e entry.Resolved) string {
	if e.Class != entry.Remote || e.Remote.Hint == nil {
		return w.escape(e.Display())
	}
	hint := e.Remote.Hint.String()
	switch w.opts.Markup {
	case MarkupPango:
		hint = `<span weight="light">` + html.EscapeString(hint) + `</span>`
	case MarkupANSI:
		hint = w.hint.Render(hint)
	}
	return w.escape(e.Remote.Primary) + " " + hint
}

func (w *Writer) escape(s string) string {
	if w.opts.Markup == MarkupPango {
		return html.EscapeString(s)
	}
	return s
}
