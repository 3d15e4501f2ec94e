package filter

import (
	"errors"
	"fmt"
)

// Sentinel errors for filter operations.
var (
	// ErrInvalidPattern indicates a pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidScope indicates an unknown removeRegexScope value.
	ErrInvalidScope = errors.New("invalid scope")
)

// InvalidPatternError reports a configured pattern that is not a valid
// regular expression. It matches ErrInvalidPattern and the compile error.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

// RemovalError reports a queued reflection the tree refused to remove.
type RemovalError struct {
	Name string
	Err  error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("failed to remove %s: %v", e.Name, e.Err)
}

func (e *RemovalError) Unwrap() error {
	return e.Err
}
