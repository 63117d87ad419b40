package iban

import "errors"

// Parse failure kinds. Match with errors.Is; the carrying *ParseError holds
// the offending value and, for length mismatches, the expected and actual
// lengths.
var (
	ErrCountryUnknown = errors.New("iban country not found")
	ErrLengthMismatch = errors.New("iban number length wrong")
	ErrFormatInvalid  = errors.New("iban format wrong")
)

// ParseError reports a rejected IBAN string.
type ParseError struct {
	Value    string
	Expected int
	Actual   int

	kind error
	msg  string
}

func (e *ParseError) Error() string {
	return e.msg
}

func (e *ParseError) Unwrap() error {
	return e.kind
}
