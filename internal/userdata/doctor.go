package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CheckUserdata reports on the forge config root, template directory and
// config file. When fix is true, missing pieces are created with InitGlobal.
// It returns the number of problems found (before any fix).
func CheckUserdata(w io.Writer, fix bool) (int, error) {
	root, err := GetConfigRoot()
	if err != nil {
		return 0, err
	}
	templatesDir, err := GetTemplatesDir()
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "User directories:")

	problems := 0
	if !checkDirExists(w, root) {
		problems++
	}
	if !checkDirExists(w, templatesDir) {
		problems++
	}
	if !checkFileExists(w, filepath.Join(root, ConfigFile)) {
		problems++
	}

	if problems > 0 {
		if fix {
			fmt.Fprintln(w, "  [FIX ] Running init...")
			if err := InitGlobal(w); err != nil {
				return problems, fmt.Errorf("auto-fix init: %w", err)
			}
		} else {
			fmt.Fprintln(w, "         Run 'forge init' to create")
		}
	}
	return problems, nil
}

func checkDirExists(w io.Writer, path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		return false
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}

func checkFileExists(w io.Writer, path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
