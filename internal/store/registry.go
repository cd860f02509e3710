package store

import (
	"errors"
	"io/fs"
	"regexp"

	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/templates"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey checks that key is usable as a CLI argument and file stem.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return &errs.ValidationError{Field: "key", Path: key, Reason: "must match [A-Za-z0-9][A-Za-z0-9._-]*"}
	}
	return nil
}

// AddResult reports what Add did.
type AddResult struct {
	Key      string
	Path     string // consolidated file to open in an editor
	Created  bool
	Existing bool // key already resolved; nothing was written
	Template templates.Template
}

// Add registers a skeleton template under key. When key already resolves
// (built-in or local) nothing is written and the existing template is
// returned with Existing set, so the caller can open it for editing
// instead of replacing it.
func (s *Store) Add(key string) (*AddResult, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := s.requireDir(); err != nil {
		return nil, err
	}

	set, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	if existing, ok := set[key]; ok {
		return &AddResult{Key: key, Path: s.LocalPath(), Existing: true, Template: existing}, nil
	}

	skeleton := templates.Skeleton(key)
	if err := s.Save(key, skeleton); err != nil {
		return nil, err
	}
	return &AddResult{Key: key, Path: s.LocalPath(), Created: true, Template: skeleton}, nil
}

// Edit makes sure key has an entry in the consolidated file, copying the
// resolved definition there when it only exists as a built-in, and returns
// the file path. copied reports whether a built-in was copied.
func (s *Store) Edit(key string) (path string, copied bool, err error) {
	if err := s.requireDir(); err != nil {
		return "", false, err
	}

	res, err := s.ResolveDetailed()
	if err != nil {
		return "", false, err
	}
	t, ok := res.Templates[key]
	if !ok {
		return "", false, &errs.KeyNotFoundError{Key: key, Available: res.Templates.Keys()}
	}
	if res.Origins[key] == OriginLocal {
		return s.LocalPath(), false, nil
	}

	if err := s.Save(key, t); err != nil {
		return "", false, err
	}
	return s.LocalPath(), true, nil
}

// Save validates t and writes it under key, replacing any previous entry.
// A missing or unreadable-as-JSON consolidated file is treated as empty so
// the first save always succeeds.
func (s *Store) Save(key string, t templates.Template) error {
	if err := templates.Validate(t); err != nil {
		return err
	}
	if err := s.requireDir(); err != nil {
		return err
	}

	local, err := s.Local()
	var cfgErr *errs.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		s.logger.Warn("discarding unreadable local templates file", "path", s.LocalPath(), "error", cfgErr.Err)
		local = templates.Set{}
	case err != nil:
		return err
	}

	local[key] = t.Clone()
	return s.writeLocal(local)
}

// Remove deletes key from the consolidated file. It reports false, without
// writing anything, when the file does not exist or does not contain key.
// Built-in templates are never affected.
func (s *Store) Remove(key string) (bool, error) {
	path := s.LocalPath()
	if path == "" {
		return false, nil
	}

	if _, err := s.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, errs.IO("checking", path, err)
	}

	local, err := s.Local()
	if err != nil {
		return false, err
	}
	if _, ok := local[key]; !ok {
		return false, nil
	}

	delete(local, key)
	if err := s.writeLocal(local); err != nil {
		return false, err
	}
	return true, nil
}
