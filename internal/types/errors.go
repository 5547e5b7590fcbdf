package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Kind classifies a conversion failure. Every kind is fatal: the run stops and
// no output is written.
type Kind int

const (
	// UnknownError is returned by KindOf for errors that carry no Kind.
	UnknownError Kind = iota
	UsageError
	InvalidSourceNameError
	InvalidDestinationNameError
	FileOpenError
	MissingHeaderError
	RowParseError
	FileCreateError
	FileWriteError
	ConfigError
)

var kindNames = map[Kind]string{
	UnknownError:                "unknown error",
	UsageError:                  "usage error",
	InvalidSourceNameError:      "invalid source name",
	InvalidDestinationNameError: "invalid destination name",
	FileOpenError:               "file open error",
	MissingHeaderError:          "missing header",
	RowParseError:               "row parse error",
	FileCreateError:             "file create error",
	FileWriteError:              "file write error",
	ConfigError:                 "config error",
}

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a classified pipeline failure.
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Path is the file the failure relates to, if any.
	Path string

	// Line is the 1-based source line for RowParseError, 0 otherwise.
	Line int

	// Msg is an optional description used when Err is nil or needs context.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg = e.Msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or
// UnknownError if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownError
}
