package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
)

// MigrationReport describes one migration pass.
type MigrationReport struct {
	Keys    []string // migrated architecture keys, sorted
	Removed []string // legacy files deleted after folding
	Skipped []string // *.json files matching neither template shape
}

// Migrated reports whether anything was folded in.
func (r MigrationReport) Migrated() bool { return len(r.Removed) > 0 }

// Migrate folds legacy per-key template files into the consolidated file.
//
// Each *.json file in the template directory other than local_templates.json
// is read as a key→Template map, or failing that as a single Template keyed
// by the file name stem. Files with neither shape are skipped and left in
// place. Migrated entries replace consolidated entries with the same key.
//
// The consolidated file is written and read back before any legacy file is
// deleted, so a failure at any point leaves every entry recoverable and the
// next run retries.
func (s *Store) Migrate() (MigrationReport, error) {
	var report MigrationReport
	if s.dir == "" {
		return report, nil
	}

	pending, err := s.legacyFiles()
	if err != nil {
		return report, err
	}

	migrated := templates.Set{}
	var sources []string
	for _, path := range pending {
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return report, errs.IO("reading legacy template", path, err)
		}

		entries, ok := parseLegacy(filepath.Base(path), data)
		if !ok {
			s.logger.Debug("skipping file with unknown template shape", "path", path)
			report.Skipped = append(report.Skipped, path)
			continue
		}
		migrated.Overlay(entries)
		sources = append(sources, path)
	}

	if len(sources) == 0 {
		return report, nil
	}

	local, err := s.Local()
	if err != nil {
		return report, err
	}
	local.Overlay(migrated)
	if err := s.writeLocal(local); err != nil {
		return report, err
	}

	if err := s.verifyPersisted(migrated); err != nil {
		return report, err
	}

	for _, path := range sources {
		if err := s.fs.Remove(path); err != nil {
			return report, errs.IO("removing migrated file", path, err)
		}
		report.Removed = append(report.Removed, path)
	}

	report.Keys = migrated.Keys()
	s.logger.Info("migrated legacy templates",
		"files", len(report.Removed),
		"keys", strings.Join(report.Keys, ","),
		"into", s.LocalPath())
	return report, nil
}

// PendingLegacyFiles lists legacy files a migration would consider.
func (s *Store) PendingLegacyFiles() ([]string, error) {
	if s.dir == "" {
		return nil, nil
	}
	return s.legacyFiles()
}

// legacyFiles returns candidate legacy files in name order. A missing
// directory yields none.
func (s *Store) legacyFiles() ([]string, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, errs.IO("checking template directory", s.dir, err)
	}
	if !exists {
		return nil, nil
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, errs.IO("reading template directory", s.dir, err)
	}

	var paths []string
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || name == userdata.LocalTemplatesFile {
			continue
		}
		if filepath.Ext(name) != ".json" || legacyStem(name) == "" {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// verifyPersisted re-reads the consolidated file and checks every migrated
// key made it to disk.
func (s *Store) verifyPersisted(migrated templates.Set) error {
	persisted, err := s.Local()
	if err != nil {
		return err
	}
	for _, key := range migrated.Keys() {
		if _, ok := persisted[key]; !ok {
			return errs.IO("verifying migrated templates in", s.LocalPath(),
				fmt.Errorf("key %q missing after write", key))
		}
	}
	return nil
}

// parseLegacy tries the map shape first, then the single-template shape.
func parseLegacy(name string, data []byte) (templates.Set, bool) {
	if set, err := templates.ParseSet(data); err == nil {
		return set, true
	}
	if t, err := templates.ParseTemplate(data); err == nil {
		return templates.Set{legacyStem(name): t}, true
	}
	return nil, false
}

func legacyStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
