// Package editor opens files in the user's editor.
//
// The command is chosen in this order: $FORGE_EDITOR, the "editor" config
// setting, $VISUAL, $EDITOR, then the first of "code --wait", vim and nano
// found on PATH, and notepad.exe on Windows. A configured command line is
// split on whitespace and the file path is appended.
package editor

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/iamjuaness/ForgeArch/internal/branding"
	"github.com/iamjuaness/ForgeArch/internal/logging"
)

// Command is one editor invocation candidate.
type Command struct {
	Name   string
	Args   []string
	Source string // env var, "config", or "fallback"
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Launcher finds and runs an editor. Fields left nil use the real
// environment.
type Launcher struct {
	Configured string

	Getenv   func(string) string
	LookPath func(string) (string, error)
	Run      func(name string, args ...string) error
	Output   func(name string, args ...string) ([]byte, error)
	IsWSL    func() bool
	GOOS     string
	Logger   *slog.Logger
}

// New returns a Launcher using configured as the "editor" setting.
func New(configured string, logger *slog.Logger) *Launcher {
	return &Launcher{Configured: configured, Logger: logger}
}

// Open runs the first working editor on path and waits for it to exit.
func (l *Launcher) Open(path string) error {
	if c, ok := l.configuredCommand(); ok {
		err := l.run(c, path)
		if err == nil {
			return nil
		}
		l.logger().Warn("failed to launch editor", "command", c.String(), "source", c.Source, "error", err)
	}

	for _, c := range l.fallbacks() {
		if _, err := l.lookPath(c.Name); err != nil {
			continue
		}
		target := path
		if c.Name == "code" && l.isWSL() {
			target = l.windowsPath(path)
		}
		err := l.run(c, target)
		if err == nil {
			return nil
		}
		l.logger().Debug("editor failed", "command", c.String(), "error", err)
	}

	return fmt.Errorf("failed to open an editor for %s (set %s, VISUAL or EDITOR)", path, branding.EnvVar("EDITOR"))
}

// Detect returns the command Open would try first, for diagnostics.
func (l *Launcher) Detect() (Command, bool) {
	if c, ok := l.configuredCommand(); ok {
		return c, true
	}
	for _, c := range l.fallbacks() {
		if _, err := l.lookPath(c.Name); err == nil {
			return c, true
		}
	}
	return Command{}, false
}

// configuredCommand returns the first non-empty explicit setting. Only that
// one is tried.
func (l *Launcher) configuredCommand() (Command, bool) {
	sources := []struct {
		name  string
		value string
	}{
		{branding.EnvVar("EDITOR"), l.getenv(branding.EnvVar("EDITOR"))},
		{"config", l.Configured},
		{"VISUAL", l.getenv("VISUAL")},
		{"EDITOR", l.getenv("EDITOR")},
	}
	for _, s := range sources {
		fields := strings.Fields(s.value)
		if len(fields) == 0 {
			continue
		}
		return Command{Name: fields[0], Args: fields[1:], Source: s.name}, true
	}
	return Command{}, false
}

func (l *Launcher) fallbacks() []Command {
	list := []Command{
		{Name: "code", Args: []string{"--wait"}, Source: "fallback"},
		{Name: "vim", Source: "fallback"},
		{Name: "nano", Source: "fallback"},
	}
	if l.goos() == "windows" {
		list = append(list, Command{Name: "notepad.exe", Source: "fallback"})
	}
	return list
}

// windowsPath converts a WSL path with wslpath -w, keeping the original on
// failure.
func (l *Launcher) windowsPath(path string) string {
	out, err := l.output("wslpath", "-w", path)
	if err != nil {
		l.logger().Debug("wslpath failed", "path", path, "error", err)
		return path
	}
	if converted := strings.TrimSpace(string(out)); converted != "" {
		return converted
	}
	return path
}

func (l *Launcher) run(c Command, path string) error {
	args := append(append([]string(nil), c.Args...), path)
	if l.Run != nil {
		return l.Run(c.Name, args...)
	}
	cmd := exec.Command(c.Name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (l *Launcher) output(name string, args ...string) ([]byte, error) {
	if l.Output != nil {
		return l.Output(name, args...)
	}
	return exec.Command(name, args...).Output()
}

func (l *Launcher) getenv(key string) string {
	if l.Getenv != nil {
		return l.Getenv(key)
	}
	return os.Getenv(key)
}

func (l *Launcher) lookPath(file string) (string, error) {
	if l.LookPath != nil {
		return l.LookPath(file)
	}
	return exec.LookPath(file)
}

func (l *Launcher) isWSL() bool {
	if l.IsWSL != nil {
		return l.IsWSL()
	}
	return detectWSL()
}

func (l *Launcher) goos() string {
	if l.GOOS != "" {
		return l.GOOS
	}
	return runtime.GOOS
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return logging.Discard()
}

func detectWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return bytes.Contains(bytes.ToLower(data), []byte("microsoft"))
}
