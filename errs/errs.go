// Package errs defines the error taxonomy shared by the asymptote packages.
//
// Every failure surfaced by the pipeline is either one of the sentinel errors
// below or one of the typed errors in this package, which unwrap to the
// matching sentinel so callers can use errors.Is for coarse classification
// and errors.As when they need the details.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels.
var (
	// ErrParse indicates an instance file name whose size tag is absent or not numeric.
	ErrParse = errors.New("malformed size tag")
	// ErrEmptyInput indicates that no instances exist for a requested grouping.
	ErrEmptyInput = errors.New("no input instances")
	// ErrExecution indicates that the external algorithm failed or produced unusable output.
	ErrExecution = errors.New("algorithm execution failed")
	// ErrMissingResults indicates that the analyze phase found no persisted results.
	ErrMissingResults = errors.New("no persisted results")
)

// Execution causes, wrapped by ExecutionError.
var (
	ErrNonZeroExit     = errors.New("process exited with non-zero status")
	ErrMalformedOutput = errors.New("malformed process output")
	ErrTimeout         = errors.New("process exceeded time limit")
	ErrStart           = errors.New("process could not be started")
)

// Registry and table errors.
var (
	ErrUnknownSuite     = errors.New("unknown suite")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrInvalidValue     = errors.New("invalid cell value")
	ErrInvalidSize      = errors.New("invalid size")
	ErrInvalidTable     = errors.New("invalid table encoding")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	ErrInvalidState     = errors.New("invalid workflow state")
	// ErrInfeasible marks a size beyond an algorithm's cutoff. It is a skip,
	// never surfaced as a failure.
	ErrInfeasible = errors.New("size exceeds algorithm cutoff")
)

// Regression errors.
var (
	ErrTooFewPoints = errors.New("too few data points")
	ErrDegenerateX  = errors.New("independent variable has no spread")
)

// ParseError reports a file whose name does not carry a usable size tag.
type ParseError struct {
	File   string // base name of the offending file
	Tag    string // raw tag text, empty when the pattern did not match
	Reason string
}

func (e *ParseError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: %s: %s", ErrParse, e.File, e.Reason)
	}

	return fmt.Sprintf("%s: %s: tag %q: %s", ErrParse, e.File, e.Tag, e.Reason)
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error { return ErrParse }

// EmptyInputError reports an instance directory, or one size bucket of it,
// with nothing to measure.
type EmptyInputError struct {
	Dir  string
	Size int // zero when the whole directory is empty
}

func (e *EmptyInputError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("%s in %s", ErrEmptyInput, e.Dir)
	}

	return fmt.Sprintf("%s in %s for size %d", ErrEmptyInput, e.Dir, e.Size)
}

// Unwrap returns ErrEmptyInput.
func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// ExecutionError reports one failed trial of an external algorithm.
//
// Cause is one of ErrNonZeroExit, ErrMalformedOutput, ErrTimeout or ErrStart,
// possibly wrapping the underlying os/exec or strconv error.
type ExecutionError struct {
	Algorithm string
	Size      int
	Unit      string // instance file or "a+b" pair label
	Trial     int
	Cause     error
	Stderr    string
}

// NewExecutionError builds an ExecutionError for the given cause.
func NewExecutionError(cause error) *ExecutionError {
	return &ExecutionError{Cause: cause}
}

// WithStderr attaches the captured standard error of the process.
func (e *ExecutionError) WithStderr(stderr string) *ExecutionError {
	e.Stderr = strings.TrimSpace(stderr)
	return e
}

func (e *ExecutionError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrExecution.Error())
	if e.Algorithm != "" {
		fmt.Fprintf(&sb, ": algorithm %s size %d", e.Algorithm, e.Size)
	}
	if e.Unit != "" {
		fmt.Fprintf(&sb, " unit %s trial %d", e.Unit, e.Trial)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&sb, " (stderr: %s)", e.Stderr)
	}

	return sb.String()
}

// Unwrap exposes both the category sentinel and the concrete cause.
func (e *ExecutionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExecution}
	}

	return []error{ErrExecution, e.Cause}
}

// MissingResultsError reports an analyze request with no measured table on disk.
type MissingResultsError struct {
	Path string
}

func (e *MissingResultsError) Error() string {
	return fmt.Sprintf("%s: results could not be read from %q", ErrMissingResults, e.Path)
}

// Unwrap returns ErrMissingResults.
func (e *MissingResultsError) Unwrap() error { return ErrMissingResults }
