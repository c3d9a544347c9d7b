package dmi

import "fmt"

// SyntaxError is returned when the input does not match the metadata grammar.
type SyntaxError struct {
	Line, Column int
	Offset       int
	Msg          string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("dmi: syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// TrailingInputError is returned when a complete metadata block was parsed
// but input remains after the end tag.
type TrailingInputError struct {
	Line, Column int
	Rest         string
}

func (e *TrailingInputError) Error() string {
	rest := e.Rest
	if len(rest) > 32 {
		rest = rest[:32] + "..."
	}
	return fmt.Sprintf("dmi: unexpected input after %q at line %d, column %d: %q", endTag, e.Line, e.Column, rest)
}

// MissingFieldError is returned when a state lacks a required property.
type MissingFieldError struct {
	State string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dmi: state %q is missing required property %q", e.State, e.Field)
}

// UnknownPropertyError is returned for a state property that isn't
// recognised.
type UnknownPropertyError struct {
	State    string
	Property string
	Line     int
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("dmi: state %q has unknown property %q at line %d", e.State, e.Property, e.Line)
}
