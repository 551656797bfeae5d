package diagnostics

import (
	"fmt"
	"strings"
)

// Sink accepts diagnostics. The analysis core only ever calls Add.
type Sink interface {
	Add(d *Diagnostic)
}

// Collection is an ordered, in-memory Sink. A non-empty Collection is also
// returned as an error by stages that report in batches.
type Collection struct {
	diagnostics []*Diagnostic
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) Add(d *Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

func (c *Collection) AddError(code ErrorCode, message string, span SourceSpan) {
	c.Add(New(code, SeverityError, message, span))
}

func (c *Collection) AddWarning(code ErrorCode, message string, span SourceSpan) {
	c.Add(New(code, SeverityWarning, message, span))
}

func (c *Collection) AddNote(code ErrorCode, message string, span SourceSpan) {
	c.Add(New(code, SeverityNote, message, span))
}

func (c *Collection) Len() int {
	return len(c.diagnostics)
}

func (c *Collection) IsEmpty() bool {
	return len(c.diagnostics) == 0
}

func (c *Collection) HasErrors() bool {
	return c.hasSeverity(SeverityError)
}

func (c *Collection) HasWarnings() bool {
	return c.hasSeverity(SeverityWarning)
}

func (c *Collection) hasSeverity(s Severity) bool {
	for _, d := range c.diagnostics {
		if d.Severity == s {
			return true
		}
	}
	return false
}

// Diagnostics returns the recorded diagnostics in insertion order.
func (c *Collection) Diagnostics() []*Diagnostic {
	return c.diagnostics
}

func (c *Collection) BySeverity(s Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends every diagnostic of other.
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	c.diagnostics = append(c.diagnostics, other.diagnostics...)
}

// Truncate keeps at most max diagnostics; max <= 0 keeps everything.
func (c *Collection) Truncate(max int) {
	if max > 0 && len(c.diagnostics) > max {
		c.diagnostics = c.diagnostics[:max]
	}
}

func (c *Collection) Clear() {
	c.diagnostics = nil
}

func (c *Collection) Error() string {
	switch len(c.diagnostics) {
	case 0:
		return "no diagnostics"
	case 1:
		return c.diagnostics[0].Error()
	}
	lines := make([]string, len(c.diagnostics))
	for i, d := range c.diagnostics {
		lines[i] = d.Error()
	}
	return fmt.Sprintf("%d diagnostics:\n%s", len(c.diagnostics), strings.Join(lines, "\n"))
}
