package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/iamjuaness/ForgeArch/internal/templates"
)

// Check reports on the consolidated file and on legacy files still waiting
// for migration. It never writes. It returns the number of problems found.
func (s *Store) Check(w io.Writer) (int, error) {
	fmt.Fprintln(w, "Templates:")

	if s.dir == "" {
		fmt.Fprintln(w, "  [WARN] no user template directory; only built-in templates are available")
		return 1, nil
	}

	problems := 0
	path := s.LocalPath()
	if _, err := s.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [ OK ] %s not present (no user templates)\n", path)
	} else if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		problems++
	} else {
		problems += s.checkLocal(w, path)
	}

	pending, err := s.PendingLegacyFiles()
	if err != nil {
		return problems, err
	}
	for _, p := range pending {
		fmt.Fprintf(w, "  [WARN] legacy template file %s (run 'forge template migrate')\n", p)
		problems++
	}

	if _, err := s.defaults(); err != nil {
		fmt.Fprintf(w, "  [FAIL] built-in templates: %v\n", err)
		problems++
	}
	return problems, nil
}

func (s *Store) checkLocal(w io.Writer, path string) int {
	local, err := s.Local()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	if err := templates.ValidateSet(local); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s (%d templates)\n", path, len(local))
	return 0
}
