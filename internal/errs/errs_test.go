package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"config", &ConfigError{Source: "embedded", Err: errors.New("bad")}, ErrConfig},
		{"validation", &ValidationError{Field: "files", Path: "../x", Reason: "must not contain '..'"}, ErrValidation},
		{"destination", &DestinationExistsError{Path: "proj"}, ErrDestinationExists},
		{"io", IO("creating directory", "proj/src", fs.ErrPermission), ErrIO},
		{"key", &KeyNotFoundError{Key: "nope"}, ErrKeyNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)

			for _, other := range []error{ErrConfig, ErrValidation, ErrDestinationExists, ErrIO, ErrKeyNotFound} {
				if other == tc.sentinel {
					continue
				}
				assert.NotErrorIs(t, wrapped, other)
			}
		})
	}
}

func TestIOErrorUnwrapsCause(t *testing.T) {
	err := IO("writing file", "proj/.gitignore", fs.ErrPermission)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "proj/.gitignore")

	var ioErr *IOError
	if assert.ErrorAs(t, err, &ioErr) {
		assert.Equal(t, "proj/.gitignore", ioErr.Path)
	}
}

func TestKeyNotFoundMessage(t *testing.T) {
	err := &KeyNotFoundError{Key: "x", Available: []string{"a", "b"}}
	assert.Equal(t, "template not found: x (available: a, b)", err.Error())

	bare := &KeyNotFoundError{Key: "x"}
	assert.Equal(t, "template not found: x", bare.Error())
}
