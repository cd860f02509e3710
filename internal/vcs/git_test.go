package vcs

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_MissingGit(t *testing.T) {
	g := Git{LookPath: func(string) (string, error) { return "", exec.ErrNotFound }}

	err := g.Init(t.TempDir())
	if !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("Init() error = %v, want ErrGitNotFound", err)
	}
	if _, ok := g.Available(); ok {
		t.Error("Available() = true, want false")
	}
}

func TestInit_CommandFailureIncludesOutput(t *testing.T) {
	g := Git{
		LookPath: func(string) (string, error) { return "/usr/bin/git", nil },
		Command: func(string, ...string) *exec.Cmd {
			return exec.Command("sh", "-c", "echo 'fatal: nope' >&2; exit 3")
		},
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	err := g.Init(t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "fatal: nope") {
		t.Errorf("error %q should include command output", err)
	}
}

func TestInit_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	if err := (Git{}).Init(dir); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, ".git")); err != nil || !info.IsDir() {
		t.Errorf(".git directory not created: %v", err)
	}
}
