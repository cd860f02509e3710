package store

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/logging"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
)

// ErrNoTemplateDir is returned by mutators when no user template directory
// could be determined.
var ErrNoTemplateDir = errors.New("could not determine user config directory for templates")

// Origin records which layer supplied a resolved template.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginLocal   Origin = "local"
)

// Store reads and writes the user template directory.
type Store struct {
	fs       afero.Fs
	dir      string
	logger   *slog.Logger
	defaults func() (templates.Set, error)
}

// Option customizes a Store.
type Option func(*Store)

// WithFs replaces the OS filesystem, e.g. with afero.NewMemMapFs in tests.
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) { s.fs = fsys }
}

// WithLogger sets the logger used for migration and recovery messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithDefaults replaces the built-in template source.
func WithDefaults(fn func() (templates.Set, error)) Option {
	return func(s *Store) { s.defaults = fn }
}

// New returns a Store rooted at dir. An empty dir means no user directory
// is available: resolution returns the built-ins only and mutators fail
// with ErrNoTemplateDir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		fs:       afero.NewOsFs(),
		dir:      dir,
		logger:   logging.Discard(),
		defaults: templates.Defaults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a Store for the platform template directory.
func Open(opts ...Option) *Store {
	dir, err := userdata.GetTemplatesDir()
	s := New(dir, opts...)
	if err != nil {
		s.logger.Warn("user template directory unavailable, using built-in templates only", "error", err)
		s.dir = ""
	}
	return s
}

// Dir returns the user template directory.
func (s *Store) Dir() string { return s.dir }

// LocalPath returns the consolidated override file path, or "" when the
// store has no directory.
func (s *Store) LocalPath() string {
	if s.dir == "" {
		return ""
	}
	return filepath.Join(s.dir, userdata.LocalTemplatesFile)
}

// Resolution is the outcome of ResolveDetailed.
type Resolution struct {
	Templates templates.Set
	Origins   map[string]Origin
	Migration MigrationReport
}

// Resolve returns the merged key→Template mapping.
func (s *Store) Resolve() (templates.Set, error) {
	r, err := s.ResolveDetailed()
	if err != nil {
		return nil, err
	}
	return r.Templates, nil
}

// ResolveDetailed merges built-ins, migrated legacy files and the
// consolidated override file, and reports where each winning entry came
// from. Malformed documents fail with *errs.ConfigError and no partial set
// is returned.
func (s *Store) ResolveDetailed() (*Resolution, error) {
	builtin, err := s.defaults()
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		Templates: builtin,
		Origins:   make(map[string]Origin, len(builtin)),
	}
	for key := range builtin {
		res.Origins[key] = OriginBuiltin
	}

	if s.dir == "" {
		return res, nil
	}
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, errs.IO("checking template directory", s.dir, err)
	}
	if !exists {
		return res, nil
	}

	// Migrated entries land in the consolidated file, so the overlay below
	// picks them up.
	res.Migration, err = s.Migrate()
	if err != nil {
		return nil, err
	}

	local, err := s.Local()
	if err != nil {
		return nil, err
	}
	res.Templates.Overlay(local)
	for key := range local {
		res.Origins[key] = OriginLocal
	}
	return res, nil
}

// Lookup resolves and returns the template for key.
func (s *Store) Lookup(key string) (templates.Template, error) {
	set, err := s.Resolve()
	if err != nil {
		return templates.Template{}, err
	}
	t, ok := set[key]
	if !ok {
		return templates.Template{}, &errs.KeyNotFoundError{Key: key, Available: set.Keys()}
	}
	return t, nil
}

// Local loads only the consolidated override file. A missing file is an
// empty set; a malformed one is a *errs.ConfigError.
func (s *Store) Local() (templates.Set, error) {
	path := s.LocalPath()
	if path == "" {
		return templates.Set{}, nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return templates.Set{}, nil
	}
	if err != nil {
		return nil, errs.IO("reading local templates", path, err)
	}

	set, err := templates.ParseSet(data)
	if err != nil {
		return nil, &errs.ConfigError{Source: path, Err: err}
	}
	return set, nil
}

// writeLocal replaces the consolidated file with set. The content is
// written to a temporary file in the same directory and renamed into place,
// so readers never observe a half-written document.
func (s *Store) writeLocal(set templates.Set) error {
	if s.dir == "" {
		return ErrNoTemplateDir
	}

	data, err := templates.MarshalSet(set)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.dir, userdata.DirPermNormal); err != nil {
		return errs.IO("creating templates directory", s.dir, err)
	}

	path := s.LocalPath()
	tmp, err := afero.TempFile(s.fs, s.dir, ".local_templates-*.tmp")
	if err != nil {
		return errs.IO("creating temporary file in", s.dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return errs.IO("writing", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return errs.IO("syncing", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return errs.IO("closing", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, userdata.FilePermNormal); err != nil {
		_ = s.fs.Remove(tmpName)
		return errs.IO("setting permissions on", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return errs.IO("replacing", path, err)
	}

	s.logger.Debug("wrote local templates", "path", path, "count", len(set))
	return nil
}

func (s *Store) requireDir() error {
	if s.dir == "" {
		return ErrNoTemplateDir
	}
	return nil
}
