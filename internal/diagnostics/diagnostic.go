package diagnostics

import "fmt"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Suggestion proposes replacing the text at Span with Replacement.
type Suggestion struct {
	Message     string
	Replacement string
	Span        SourceSpan
}

// Diagnostic is a single report. It implements error so stages may return
// one directly.
type Diagnostic struct {
	Code           ErrorCode
	Severity       Severity
	Message        string
	PrimarySpan    SourceSpan
	SecondarySpans []SourceSpan
	Suggestions    []Suggestion
	Notes          []string
}

func New(code ErrorCode, severity Severity, message string, span SourceSpan) *Diagnostic {
	return &Diagnostic{
		Code:        code,
		Severity:    severity,
		Message:     message,
		PrimarySpan: span,
	}
}

// NewError creates an error-severity diagnostic with a formatted message.
func NewError(code ErrorCode, span SourceSpan, format string, args ...interface{}) *Diagnostic {
	return New(code, SeverityError, fmt.Sprintf(format, args...), span)
}

func (d *Diagnostic) WithSecondarySpan(span SourceSpan) *Diagnostic {
	d.SecondarySpans = append(d.SecondarySpans, span)
	return d
}

func (d *Diagnostic) WithSuggestion(s Suggestion) *Diagnostic {
	d.Suggestions = append(d.Suggestions, s)
	return d
}

func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// TraitNotImplemented reports that typeName lacks an implementation of iface.
func TraitNotImplemented(typeName, iface string, span SourceSpan) *Diagnostic {
	return NewError(AnalyzerTraitNotImplemented, span, "type %s does not implement interface %s", typeName, iface)
}
