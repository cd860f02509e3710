package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching.
var (
	ErrConfig            = errors.New("invalid template configuration")
	ErrValidation        = errors.New("template validation failed")
	ErrDestinationExists = errors.New("destination already exists")
	ErrIO                = errors.New("filesystem operation failed")
	ErrKeyNotFound       = errors.New("template not found")
)

// ConfigError reports a malformed embedded or user template document.
type ConfigError struct {
	Source string // file path, or "embedded" for the built-in asset
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parsing templates from %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// ValidationError reports an unsafe path inside a template.
type ValidationError struct {
	Field  string // "structure" or "files"
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s entry %q %s", e.Field, e.Path, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DestinationExistsError is returned when a scaffold target is already
// populated and force was not requested.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination %s already exists and is not empty (use --force to overwrite)", e.Path)
}

func (e *DestinationExistsError) Is(target error) bool { return target == ErrDestinationExists }

// IOError wraps a filesystem failure with the operation and the offending path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// KeyNotFoundError is returned when an architecture key is not in the
// resolved set.
type KeyNotFoundError struct {
	Key       string
	Available []string
}

func (e *KeyNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("template not found: %s", e.Key)
	}
	return fmt.Sprintf("template not found: %s (available: %s)", e.Key, strings.Join(e.Available, ", "))
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// IO is shorthand for constructing an *IOError.
func IO(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
