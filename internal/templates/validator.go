package templates

import (
	"path/filepath"
	"strings"

	"github.com/iamjuaness/ForgeArch/internal/errs"
)

// Validate checks that every structure entry and every file key is a
// relative path without parent-directory components. Both '/' and '\' are
// treated as separators and drive or UNC prefixes count as absolute on every
// platform, so a template accepted here is safe wherever it is used.
//
// The first offending entry is returned as an *errs.ValidationError.
// Structure entries are checked in order, then file keys in sorted order.
func Validate(t Template) error {
	for _, p := range t.Structure {
		if err := ValidatePath("structure", p); err != nil {
			return err
		}
	}
	for _, p := range t.FilePaths() {
		if err := ValidatePath("files", p); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSet validates every template in s, in key order, and prefixes the
// failure with the offending key.
func ValidateSet(s Set) error {
	for _, key := range s.Keys() {
		if err := Validate(s[key]); err != nil {
			return &KeyedError{Key: key, Err: err}
		}
	}
	return nil
}

// KeyedError attaches an architecture key to a validation failure.
type KeyedError struct {
	Key string
	Err error
}

func (e *KeyedError) Error() string { return "template " + e.Key + ": " + e.Err.Error() }

func (e *KeyedError) Unwrap() error { return e.Err }

// ValidatePath applies the template path rules to a single path. field
// names the offending entry in the returned *errs.ValidationError.
func ValidatePath(field, p string) error {
	if isAbsolute(p) {
		return &errs.ValidationError{Field: field, Path: p, Reason: "must not be absolute"}
	}
	for _, part := range splitAny(p) {
		if part == ".." {
			return &errs.ValidationError{Field: field, Path: p, Reason: "must not contain parent directory '..'"}
		}
	}
	return nil
}

func isAbsolute(p string) bool {
	if filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return true
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	// Drive letter, e.g. "C:" or "c:\x", regardless of the host OS.
	return len(p) >= 2 && p[1] == ':' && isASCIILetter(p[0])
}

func splitAny(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
