package vcs

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when no git binary is on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// Git runs "git init" through the git binary. The zero value uses
// os/exec; tests swap the lookup and command hooks.
type Git struct {
	LookPath func(file string) (string, error)
	Command  func(name string, args ...string) *exec.Cmd
}

// Init creates an empty repository in dir.
func (g Git) Init(dir string) error {
	if err := g.ensureGit(); err != nil {
		return err
	}

	cmd := g.command("git", "init", dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git init %s: %w\n%s", dir, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Available reports whether git can be found, and its path.
func (g Git) Available() (string, bool) {
	p, err := g.lookPath("git")
	return p, err == nil
}

func (g Git) ensureGit() error {
	if _, err := g.lookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

func (g Git) lookPath(file string) (string, error) {
	if g.LookPath != nil {
		return g.LookPath(file)
	}
	return exec.LookPath(file)
}

func (g Git) command(name string, args ...string) *exec.Cmd {
	if g.Command != nil {
		return g.Command(name, args...)
	}
	return exec.Command(name, args...)
}
