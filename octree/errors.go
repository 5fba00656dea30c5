package octree

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the error cases this package can surface, per the error-handling design: a
// coordinate outside the key space, a malformed binary stream, or a sensor-model parameter that
// violates its sign constraint.
type Kind int

const (
	// KindOutOfRange is returned when a coordinate would produce a key outside [0, 2^16) at the
	// tree's resolution.
	KindOutOfRange Kind = iota
	// KindInvalidFile is returned when a binary stream fails its header check, runs out of bytes
	// mid-node, or otherwise cannot be decoded as a tree.
	KindInvalidFile
	// KindInvalidParameter is returned when a sensor-model parameter violates its documented sign
	// constraint (probHit < 0.5 or probMiss > 0.5 after log-odds conversion).
	KindInvalidParameter
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindInvalidFile:
		return "invalid file"
	case KindInvalidParameter:
		return "invalid parameter"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with the underlying pkg/errors-produced message, so callers can branch on
// Kind while the wrapped error still carries a stack trace for logging.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// ErrorKind extracts the Kind from err if it (or something it wraps) is an *Error, and reports ok.
func ErrorKind(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
