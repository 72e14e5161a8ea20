package proxylist

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/proxylist/internal/pipeline"
)

var (
	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("i/o error")

	// ErrInvalidOption is returned when an Option value cannot be honored.
	ErrInvalidOption = errors.New("invalid option")

	// ErrClosed is returned when a closed Extractor is used.
	ErrClosed = errors.New("extractor is closed")
)

// IOError indicates that a file could not be opened, mapped or written.
// It is fatal: no document is produced.
//
// The original underlying error can be accessed via errors.Unwrap.
type IOError struct {
	Op    string
	Path  string
	cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.cause)
}

func (e *IOError) Unwrap() error { return e.cause }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// TimeoutError indicates that an extraction exceeded the duration set with
// WithTimeout. errors.Is(err, context.DeadlineExceeded) holds for it.
type TimeoutError struct {
	Timeout time.Duration
	cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("extraction timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.cause }

// InvariantError reports a panic inside a worker. It signals a bug, not bad
// input, and fails the run.
type InvariantError = pipeline.InvariantError
