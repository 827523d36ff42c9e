package siri_vm

import "fmt"

// ParsingError is returned when a required element is absent
type ParsingError struct {
	Element string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("missing '%s'.", e.Element)
}

type MissingAttributeError struct {
	Element   string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing attribute '%s'", e.Element, e.Attribute)
}

// ValidationError is returned when an element is present but its text cannot be coerced to the
// expected type
type ValidationError struct {
	Element string
	Value   string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Element, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
