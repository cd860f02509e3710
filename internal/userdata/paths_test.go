package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

// clearPathEnv isolates a test from the developer's own environment.
func clearPathEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FORGE_CONFIG_DIR", "")
	t.Setenv("FORGE_TEMPLATES_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
}

func withGOOS(t *testing.T, value string) {
	t.Helper()
	prev := goos
	goos = value
	t.Cleanup(func() { goos = prev })
}

func TestGetConfigRoot_EnvOverride(t *testing.T) {
	clearPathEnv(t)
	t.Setenv("FORGE_CONFIG_DIR", "/tmp/forge-cfg")
	root, err := GetConfigRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/tmp/forge-cfg" {
		t.Errorf("expected /tmp/forge-cfg, got %s", root)
	}
}

func TestGetConfigRoot_XDG(t *testing.T) {
	clearPathEnv(t)
	withGOOS(t, "linux")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	root, err := GetConfigRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != filepath.Join("/tmp/xdg", "forge") {
		t.Errorf("expected /tmp/xdg/forge, got %s", root)
	}
}

func TestGetConfigRoot_AppDataOnWindows(t *testing.T) {
	clearPathEnv(t)
	withGOOS(t, "windows")
	t.Setenv("APPDATA", "/tmp/appdata")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/ignored")
	root, err := GetConfigRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != filepath.Join("/tmp/appdata", "forge") {
		t.Errorf("expected /tmp/appdata/forge, got %s", root)
	}
}

func TestGetConfigRoot_HomeFallback(t *testing.T) {
	clearPathEnv(t)
	withGOOS(t, "linux")
	root, err := GetConfigRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "forge")
	if root != expected {
		t.Errorf("expected %s, got %s", expected, root)
	}
}

func TestGetTemplatesDir(t *testing.T) {
	clearPathEnv(t)
	t.Setenv("FORGE_CONFIG_DIR", "/tmp/cfg")
	dir, err := GetTemplatesDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join("/tmp/cfg", "templates") {
		t.Errorf("expected /tmp/cfg/templates, got %s", dir)
	}

	t.Setenv("FORGE_TEMPLATES_DIR", "/tmp/tpl")
	dir, err = GetTemplatesDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/tmp/tpl" {
		t.Errorf("expected /tmp/tpl, got %s", dir)
	}
}

func TestGetConfigPath(t *testing.T) {
	clearPathEnv(t)
	t.Setenv("FORGE_CONFIG_DIR", "/tmp/cfg")
	p, err := GetConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != filepath.Join("/tmp/cfg", "config.yaml") {
		t.Errorf("expected /tmp/cfg/config.yaml, got %s", p)
	}
}
