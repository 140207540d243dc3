package eagle

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument means the file is not well-formed XML or is not
	// shaped like the expected EAGLE document.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDanglingReference means a part names a device set, device or, in an
	// instance, a part that does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDuplicateName means two device sets, devices, parts or board
	// elements share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrMissingCounterpart means no board file exists next to a schematic.
	// It is a warning: editing continues without board mirroring.
	ErrMissingCounterpart = errors.New("no counterpart board file")

	// ErrNoDocument is returned when saving a document that was never loaded.
	ErrNoDocument = errors.New("no document loaded")
)

// LoadError reports a failed document load.
type LoadError struct {
	Path string // empty when loading from a reader
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "eagle: load: " + e.Err.Error()
	}
	return fmt.Sprintf("eagle: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Malformed returns an error wrapping ErrMalformedDocument.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))
}

// Dangling returns an error wrapping ErrDanglingReference.
func Dangling(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDanglingReference, fmt.Sprintf(format, args...))
}

// Duplicate returns an error wrapping ErrDuplicateName.
func Duplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicateName, fmt.Sprintf(format, args...))
}
