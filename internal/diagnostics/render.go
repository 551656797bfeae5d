package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiBlue   = "\x1b[34m"
)

// Renderer writes diagnostics in a compiler-style text format:
//
//	error[A2004]: type Point does not implement interface Eq
//	  --> main.tj:12..17
//	  = note: ...
type Renderer struct {
	Out   io.Writer
	Color bool

	// Files maps file ids to display names; unknown ids render as "file#N".
	Files map[FileID]string
}

// NewRenderer creates a renderer for out. mode is "auto", "always" or
// "never"; auto enables color only when out is a terminal and NO_COLOR is
// unset.
func NewRenderer(out io.Writer, mode string) *Renderer {
	return &Renderer{Out: out, Color: colorEnabled(out, mode), Files: make(map[FileID]string)}
}

func colorEnabled(out io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) paint(code, s string) string {
	if !r.Color {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) fileName(id FileID) string {
	if name, ok := r.Files[id]; ok {
		return name
	}
	return fmt.Sprintf("file#%d", id)
}

func (r *Renderer) severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return ansiRed
	case SeverityWarning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

func (r *Renderer) location(span SourceSpan) string {
	return fmt.Sprintf("%s:%d..%d", r.fileName(span.FileID), span.Start, span.End)
}

// Render writes one diagnostic.
func (r *Renderer) Render(d *Diagnostic) error {
	header := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	if _, err := fmt.Fprintf(r.Out, "%s: %s\n", r.paint(ansiBold+r.severityColor(d.Severity), header), d.Message); err != nil {
		return err
	}
	if !d.PrimarySpan.IsZero() {
		if _, err := fmt.Fprintf(r.Out, "  %s %s\n", r.paint(ansiBlue, "-->"), r.location(d.PrimarySpan)); err != nil {
			return err
		}
	}
	for _, span := range d.SecondarySpans {
		if _, err := fmt.Fprintf(r.Out, "  %s %s\n", r.paint(ansiBlue, "..."), r.location(span)); err != nil {
			return err
		}
	}
	for _, s := range d.Suggestions {
		if _, err := fmt.Fprintf(r.Out, "  = suggestion: %s: `%s` at %s\n", s.Message, s.Replacement, r.location(s.Span)); err != nil {
			return err
		}
	}
	for _, note := range d.Notes {
		if _, err := fmt.Fprintf(r.Out, "  = note: %s\n", note); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll writes every diagnostic of c followed by a summary line.
func (r *Renderer) RenderAll(c *Collection) error {
	for _, d := range c.Diagnostics() {
		if err := r.Render(d); err != nil {
			return err
		}
	}
	errs := len(c.BySeverity(SeverityError))
	warns := len(c.BySeverity(SeverityWarning))
	if errs == 0 && warns == 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.Out, "%d error(s), %d warning(s)\n", errs, warns)
	return err
}
