package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a log line was rejected
type ErrorKind int

const (
	EmptyLine ErrorKind = iota + 1
	MalformedQuotedFields
	MalformedRequestLine
	MalformedTimestamp
	MalformedPositionalFields
)

var kindMessages = map[ErrorKind]string{
	EmptyLine:                 "The log entry did not contain any data.",
	MalformedQuotedFields:     "Could not parse http_method or user_agent from log entry.",
	MalformedRequestLine:      "Could not parse method, url or protocol from http_method.",
	MalformedTimestamp:        "Could not parse date from log entry.",
	MalformedPositionalFields: "Could not parse ip, user, response or bytes from log entry.",
}

var kindNames = map[ErrorKind]string{
	EmptyLine:                 "empty_line",
	MalformedQuotedFields:     "malformed_quoted_fields",
	MalformedRequestLine:      "malformed_request_line",
	MalformedTimestamp:        "malformed_timestamp",
	MalformedPositionalFields: "malformed_positional_fields",
}

// Kinds lists every ErrorKind in check order
func Kinds() []ErrorKind {
	return []ErrorKind{EmptyLine, MalformedQuotedFields, MalformedRequestLine, MalformedTimestamp, MalformedPositionalFields}
}

// String returns a snake_case identifier, used as a metric label
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind_%d", int(k))
}

// Message returns the fixed user-facing message for the kind
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

// ParseError is returned by Parse for a rejected line. Err holds the
// underlying cause when there is one (a time or integer parse failure).
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	return e.Kind.Message()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ParseError of the same kind, so that
// errors.Is(err, ErrMalformedTimestamp) matches regardless of cause.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyLine                 = &ParseError{Kind: EmptyLine}
	ErrMalformedQuotedFields     = &ParseError{Kind: MalformedQuotedFields}
	ErrMalformedRequestLine      = &ParseError{Kind: MalformedRequestLine}
	ErrMalformedTimestamp        = &ParseError{Kind: MalformedTimestamp}
	ErrMalformedPositionalFields = &ParseError{Kind: MalformedPositionalFields}
)

// KindOf extracts the ErrorKind from err, or 0 if err is not a parse error
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// LineError ties a parse failure to its 1-based line number in the input.
// Its message is the parse error's message unchanged.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return e.Err.Error()
}

func (e *LineError) Unwrap() error {
	return e.Err
}
