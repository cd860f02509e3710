//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ConfigDir    string // FORGE_CONFIG_DIR: config.yaml and templates/
	TemplatesDir string // user template directory inside ConfigDir
	ProjectsDir  string // parent directory for scaffolded projects
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all forge operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ConfigDir:   t.TempDir(),
		ProjectsDir: t.TempDir(),
	}
	env.TemplatesDir = filepath.Join(env.ConfigDir, "templates")

	t.Setenv("FORGE_CONFIG_DIR", env.ConfigDir)
	t.Setenv("FORGE_TEMPLATES_DIR", "")

	if err := os.MkdirAll(env.TemplatesDir, 0755); err != nil {
		t.Fatalf("creating templates dir: %v", err)
	}
	return env
}

// writeLegacyTemplate creates a per-key template file the way older
// releases stored user templates.
func writeLegacyTemplate(t *testing.T, env *testEnv, key, content string) string {
	t.Helper()
	path := filepath.Join(env.TemplatesDir, key+".json")
	writeFile(t, path, content)
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
