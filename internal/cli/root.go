package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/branding"
	"github.com/iamjuaness/ForgeArch/internal/config"
	"github.com/iamjuaness/ForgeArch/internal/editor"
	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/logging"
	"github.com/iamjuaness/ForgeArch/internal/scaffold"
	"github.com/iamjuaness/ForgeArch/internal/store"
	"github.com/iamjuaness/ForgeArch/internal/ui"
	"github.com/iamjuaness/ForgeArch/internal/vcs"
	"github.com/iamjuaness/ForgeArch/internal/version"
)

var (
	buildInfo version.Info

	verbose   bool
	logFormat string

	logger = logging.Discard()
)

// Collaborators replaced in tests.
var (
	newPrompter = func(cmd *cobra.Command) ui.Prompter {
		return ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	openInEditor = func(path string) error {
		return editor.New(config.Current().Editor, logger).Open(path)
	}
	projectVCS scaffold.VCS = vcs.Git{}
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new projects from named architecture templates.

Built-in templates can be overridden or extended with your own, stored in
local_templates.json inside the forge config directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgErr := config.Load()
		if err := setupLogging(cmd.ErrOrStderr()); err != nil {
			return err
		}
		if cfgErr != nil {
			logger.Warn("ignoring config file", "error", cfgErr)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildInfo.Version = version
	buildInfo.Commit = commit
	buildInfo.Date = date

	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func setupLogging(w io.Writer) error {
	settings := config.Current()
	level := settings.LogLevel
	if verbose {
		level = "debug"
	}
	format := settings.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	l, err := logging.New(logging.Options{Level: level, Format: format, Output: w})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logger = l
	slog.SetDefault(l)
	return nil
}

// reportError prints err the way every forge command fails.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", ui.NewStyler(w).Error("Error:"), err)

	if errors.Is(err, errs.ErrKeyNotFound) {
		fmt.Fprintf(w, "Run '%s list' to see available templates.\n", branding.CLIName())
	}
}

func openStore() *store.Store {
	return store.Open(store.WithLogger(logger))
}
