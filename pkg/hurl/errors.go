package hurl

import (
	"errors"
	"fmt"
)

// Route compilation errors.
var (
	ErrSyntax         = errors.New("invalid route syntax")
	ErrUnknownMatcher = errors.New("unknown matcher")
)

// SyntaxError reports a malformed parameter token in a path segment.
type SyntaxError struct {
	// Segment is the segment being parsed (or the full route path for
	// errors detected while joining segments).
	Segment string
	// Offset is the byte offset of the offending character, or -1.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("syntax error in %q: %s", e.Segment, e.Msg)
	}
	return fmt.Sprintf("syntax error in %q at offset %d: %s", e.Segment, e.Offset, e.Msg)
}

// Is makes SyntaxError match ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// UnknownMatcherError reports a type tag with no registered matcher.
type UnknownMatcherError struct {
	Segment string
	Type    string
}

func (e *UnknownMatcherError) Error() string {
	return fmt.Sprintf("unknown matcher %q in %q", e.Type, e.Segment)
}

// Is makes UnknownMatcherError match ErrUnknownMatcher.
func (e *UnknownMatcherError) Is(target error) bool {
	return target == ErrUnknownMatcher
}

func syntaxErr(segment string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Segment: segment, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
