package typesystem

import "fmt"

// ParseError reports a malformed type expression.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type expression %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}
