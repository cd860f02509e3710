package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/iamjuaness/ForgeArch/internal/branding"
	"github.com/iamjuaness/ForgeArch/internal/logging"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
)

const fileType = "yaml"

// Keys understood by forge.
const (
	KeyEditor      = "editor"
	KeyDefaultArch = "default_arch"
	KeyGitInit     = "git_init"
	KeyReadme      = "readme"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// validators check a value before Set writes it. Every known key has one.
var validators = map[string]func(string) error{
	KeyEditor:      func(string) error { return nil },
	KeyDefaultArch: func(string) error { return nil },
	KeyGitInit:     validateBool,
	KeyReadme:      validateBool,
	KeyLogLevel: func(v string) error {
		_, err := logging.ParseLevel(v)
		return err
	},
	KeyLogFormat: func(v string) error {
		switch strings.ToLower(v) {
		case "text", "json":
			return nil
		}
		return fmt.Errorf("unknown log format %q (want text or json)", v)
	},
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	Editor      string
	DefaultArch string
	GitInit     bool
	Readme      bool
	LogLevel    string
	LogFormat   string
}

// Keys returns the known configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(validators))
	for k := range validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilePath returns the full path to config.yaml.
func FilePath() (string, error) {
	return userdata.GetConfigPath()
}

// Load initializes Viper to read from the config file and environment. A
// missing file is not an error; a malformed one is.
func Load() error {
	viper.Reset()
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyReadme, true)
	viper.SetDefault(KeyGitInit, false)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")

	path, err := FilePath()
	if err != nil {
		// No home directory: run on defaults and environment only.
		return nil
	}
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Current returns the loaded settings.
func Current() Settings {
	return Settings{
		Editor:      viper.GetString(KeyEditor),
		DefaultArch: viper.GetString(KeyDefaultArch),
		GitInit:     viper.GetBool(KeyGitInit),
		Readme:      viper.GetBool(KeyReadme),
		LogLevel:    viper.GetString(KeyLogLevel),
		LogFormat:   viper.GetString(KeyLogFormat),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	validate, ok := validators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := validate(value); err != nil {
		return err
	}

	configFile, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(configFile), err)
	}

	switch key {
	case KeyGitInit, KeyReadme:
		b, _ := strconv.ParseBool(value)
		viper.Set(key, b)
	default:
		viper.Set(key, value)
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func validateBool(v string) error {
	if _, err := strconv.ParseBool(v); err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	return nil
}
