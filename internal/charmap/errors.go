package charmap

import (
	"errors"
	"fmt"
)

// Errors returned by map operations.
var (
	// ErrNotOverlay indicates Combine was given a map that was not
	// parsed in overlay format.
	ErrNotOverlay = errors.New("map is not an overlay")

	// ErrNoOverlay indicates ClearLayoutOverlay was called on a map
	// with no overlay applied.
	ErrNoOverlay = errors.New("no overlay applied")

	// ErrSourceUnavailable indicates the original source of a map could
	// not be re-read while reverting an overlay.
	ErrSourceUnavailable = errors.New("map source unavailable")
)

// ParseError reports a failure while parsing a key character map source.
// Parsing never produces a partial map; any parse error aborts the load.
type ParseError struct {
	// Source is the name of the source being parsed.
	Source string
	// Line is the 1-based line number of the offending token.
	Line int
	// Message describes the parse error.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
