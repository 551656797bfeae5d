package diagnostics

import "fmt"

// FileID identifies a source file known to the driver.
type FileID uint32

// SourceSpan is a half-open byte range [Start, End) in one file.
type SourceSpan struct {
	FileID FileID
	Start  int
	End    int
}

// NewSpan builds a span, swapping the bounds if they are reversed.
func NewSpan(file FileID, start, end int) SourceSpan {
	if end < start {
		start, end = end, start
	}
	return SourceSpan{FileID: file, Start: start, End: end}
}

func (s SourceSpan) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span carries no location (built-in definitions).
func (s SourceSpan) IsZero() bool {
	return s == SourceSpan{}
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d:%d..%d", s.FileID, s.Start, s.End)
}
