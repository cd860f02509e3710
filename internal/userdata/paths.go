package userdata

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/iamjuaness/ForgeArch/internal/branding"
)

// Directory and file name constants.
const (
	TemplatesDir       = "templates"
	LocalTemplatesFile = "local_templates.json"
	ConfigFile         = "config.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// goos is swapped in tests to exercise the Windows branch.
var goos = runtime.GOOS

// GetConfigRoot returns the forge configuration directory. Resolution order:
//
//  1. FORGE_CONFIG_DIR
//  2. %APPDATA%\forge on Windows, $XDG_CONFIG_HOME/forge elsewhere
//  3. $HOME/.config/forge
func GetConfigRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v, nil
	}

	ns := branding.ConfigNamespace()
	if goos == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return filepath.Join(v, ns), nil
		}
	} else if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, ns), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory for templates: %w", err)
	}
	return filepath.Join(home, ".config", ns), nil
}

// GetTemplatesDir returns the user template directory. FORGE_TEMPLATES_DIR
// takes precedence over <config root>/templates.
func GetTemplatesDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATES_DIR")); v != "" {
		return v, nil
	}
	root, err := GetConfigRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, TemplatesDir), nil
}

// GetConfigPath returns the path of config.yaml.
func GetConfigPath() (string, error) {
	root, err := GetConfigRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}
