package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Default content for config.yaml.
const defaultConfigContent = `# forge user settings. Environment variables FORGE_<KEY> take precedence.
readme: true
git_init: false
log_level: warn
log_format: text
# default_arch: backend-api
# editor: code --wait
`

// InitGlobal creates the forge config root, the template directory and a
// commented config.yaml. Existing items are left alone and reported as
// skipped, so running it twice is harmless.
func InitGlobal(w io.Writer) error {
	root, err := GetConfigRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, root); err != nil {
		return err
	}

	templatesDir, err := GetTemplatesDir()
	if err != nil {
		return err
	}
	if err := ensureDir(w, templatesDir); err != nil {
		return err
	}

	return ensureFile(w, filepath.Join(root, ConfigFile), defaultConfigContent)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, DirPermNormal); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), FilePermNormal); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
