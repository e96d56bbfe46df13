package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrCorrupt         = errors.New("corrupt content")
	ErrInvalidDocument = errors.New("invalid document")
	ErrInvalidInput    = errors.New("invalid input")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindStorage         ErrorKind = "storage"
	KindCorrupt         ErrorKind = "corrupt"
	KindInvalidDocument ErrorKind = "invalid_document"
	KindInvalidInput    ErrorKind = "invalid_input"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or store key
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether any OpError in err's tree has the given kind.
// Joined errors (errors.Join) are searched too.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if oe, ok := err.(*OpError); ok && oe.Kind == kind {
			return true
		}

		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				if IsKind(e, kind) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		default:
			return false
		}
	}
	return false
}
