package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/logging"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
	"github.com/iamjuaness/ForgeArch/internal/vcs"
)

const readmeName = "README.md"

// VCS initializes a repository in a project directory.
type VCS interface {
	Init(dir string) error
}

// Options controls Create.
type Options struct {
	GitInit bool
	Readme  bool
	Force   bool
	BaseDir string // defaults to the working directory
	VCS     VCS    // defaults to the git binary
	Logger  *slog.Logger
}

// Result holds the outcome of a scaffold run. Dirs and Files are relative
// to OutputDir, slash-separated.
type Result struct {
	OutputDir      string
	Dirs           []string
	Files          []string
	Warnings       []string
	GitInitialized bool
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Create materializes t under a directory named name.
//
// An existing non-empty destination is refused with
// *errs.DestinationExistsError unless opts.Force is set, in which case
// unrelated files are kept and the template's paths are created or
// overwritten. Filesystem failures abort with *errs.IOError; nothing
// written before the failure is rolled back. A failed git init is only a
// warning.
func Create(name string, t templates.Template, opts Options) (*Result, error) {
	if err := templates.Validate(t); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	base := opts.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errs.IO("resolving working directory", ".", err)
		}
		base = wd
	}
	dest := filepath.Join(base, nativePath(name))

	if err := checkDestination(dest, opts.Force); err != nil {
		return nil, err
	}

	result := &Result{OutputDir: dest}

	if err := os.MkdirAll(dest, userdata.DirPermNormal); err != nil {
		return nil, errs.IO("creating project directory", dest, err)
	}

	seen := make(map[string]bool, len(t.Structure))
	for _, dir := range t.Structure {
		rel := cleanRel(dir)
		if rel == "." || seen[rel] {
			continue
		}
		seen[rel] = true

		target := filepath.Join(dest, nativePath(rel))
		if err := os.MkdirAll(target, userdata.DirPermNormal); err != nil {
			return nil, errs.IO("creating directory", target, err)
		}
		logger.Debug("created directory", "path", target)
		result.Dirs = append(result.Dirs, rel)
	}

	for _, p := range t.FilePaths() {
		hint := t.Files[p]
		kind := ParseKind(hint)
		if kind == KindUnknown {
			result.warn("unknown kind %q for %s; wrote an empty file", hint, p)
			logger.Warn("unknown file kind", "path", p, "kind", hint)
		}

		rel := cleanRel(p)
		if err := writeFile(filepath.Join(dest, nativePath(rel)), Content(rel, kind)); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, rel)
	}

	if opts.Readme {
		if err := writeReadme(result, dest, name, t, opts.Force); err != nil {
			return nil, err
		}
	}

	if opts.GitInit {
		initRepository(result, dest, opts.VCS, logger)
	}

	logger.Info("scaffolded project", "path", dest, "dirs", len(result.Dirs), "files", len(result.Files))
	return result, nil
}

// checkDestination enforces the overwrite rules before anything is written.
func checkDestination(dest string, force bool) error {
	info, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errs.IO("checking destination", dest, err)
	}

	if !info.IsDir() {
		if force {
			return errs.IO("using destination", dest, errors.New("exists and is not a directory"))
		}
		return &errs.DestinationExistsError{Path: dest}
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return errs.IO("reading destination", dest, err)
	}
	if len(entries) > 0 && !force {
		return &errs.DestinationExistsError{Path: dest}
	}
	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		return errs.IO("creating directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, userdata.FilePermNormal); err != nil {
		return errs.IO("writing", path, err)
	}
	return nil
}

func writeReadme(result *Result, dest, name string, t templates.Template, force bool) error {
	path := filepath.Join(dest, readmeName)
	if _, err := os.Stat(path); err == nil && !force {
		result.warn("%s already exists; kept it (use --force to overwrite)", readmeName)
		return nil
	}

	body, err := renderReadme(readmeData{
		Project:     filepath.Base(nativePath(name)),
		Template:    t.Name,
		Description: t.Description,
		Dirs:        result.Dirs,
	})
	if err != nil {
		return err
	}
	if err := writeFile(path, body); err != nil {
		return err
	}
	result.Files = appendUnique(result.Files, readmeName)
	return nil
}

func initRepository(result *Result, dest string, v VCS, logger *slog.Logger) {
	if info, err := os.Stat(filepath.Join(dest, ".git")); err == nil && info.IsDir() {
		result.warn("%s is already a git repository; skipped git init", dest)
		return
	}
	if v == nil {
		v = vcs.Git{}
	}
	if err := v.Init(dest); err != nil {
		result.warn("git init failed: %v", err)
		logger.Warn("git init failed", "path", dest, "error", err)
		return
	}
	result.GitInitialized = true
}

// validateName applies the template path rules to the project name.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &errs.ValidationError{Field: "name", Path: name, Reason: "must not be empty"}
	}
	return templates.ValidatePath("name", name)
}

// cleanRel returns p slash-separated, without "." segments or a trailing
// separator.
func cleanRel(p string) string {
	parts := strings.FieldsFunc(toSlash(p), func(r rune) bool { return r == '/' })
	kept := parts[:0]
	for _, part := range parts {
		if part != "." {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return "."
	}
	return strings.Join(kept, "/")
}

func nativePath(p string) string {
	return filepath.FromSlash(toSlash(p))
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
