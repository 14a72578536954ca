package servicedef

import (
	"fmt"
	"strings"
)

// ParseError is returned when JSON that should be well-formed could not be decoded, either
// because it is not valid JSON or because a value could not be converted to its field's type.
type ParseError struct {
	// Record is the name of the record type being decoded, if any.
	Record string
	// Field is the wire name of the field that could not be converted, if any.
	Field string
	// Input is the raw JSON, abbreviated, when the document as a whole was rejected.
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("could not parse")
	if e.Record != "" {
		fmt.Fprintf(&b, " %s", e.Record)
	} else {
		b.WriteString(" JSON")
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Err)
	if e.Field == "" {
		fmt.Fprintf(&b, " (input was %q)", e.Input)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
