package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/config"
	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/scaffold"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/ui"
)

var (
	newArch     string
	newGitInit  bool
	newNoReadme bool
	newForce    bool
	newDir      string
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new project from an architecture template",
	Long: `Create a new project directory from an architecture template.

The architecture is taken from --arch, then from the default_arch setting,
and otherwise chosen interactively. The destination must not exist or be
empty unless --force is given; with --force, files outside the template are
left alone and template files are overwritten.`,
	Example: `  forge new myapi --arch backend-api
  forge new web --arch frontend-react --git-init
  forge new scratch --force --no-readme`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newArch, "arch", "a", "", "Architecture template key (see 'forge list')")
	newCmd.Flags().BoolVar(&newGitInit, "git-init", false, "Initialize a git repository (default from config git_init)")
	newCmd.Flags().BoolVar(&newNoReadme, "no-readme", false, "Do not generate README.md")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Scaffold into a non-empty directory, overwriting template files")
	newCmd.Flags().StringVar(&newDir, "dir", "", "Parent directory for the project (default: current directory)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	settings := config.Current()

	set, err := openStore().Resolve()
	if err != nil {
		return err
	}

	key, err := chooseArchitecture(cmd, set, settings.DefaultArch)
	if err != nil {
		return err
	}
	tmpl, ok := set[key]
	if !ok {
		return &errs.KeyNotFoundError{Key: key, Available: set.Keys()}
	}

	gitInit := settings.GitInit
	if cmd.Flags().Changed("git-init") {
		gitInit = newGitInit
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating %s from %s (%s)\n", name, key, tmpl.Name)

	result, err := scaffold.Create(name, tmpl, scaffold.Options{
		GitInit: gitInit,
		Readme:  settings.Readme && !newNoReadme,
		Force:   newForce,
		BaseDir: newDir,
		VCS:     projectVCS,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	printScaffoldResult(out, cmd.ErrOrStderr(), result)
	return nil
}

// chooseArchitecture applies the flag → config → prompt order.
func chooseArchitecture(cmd *cobra.Command, set templates.Set, configured string) (string, error) {
	if newArch != "" {
		return newArch, nil
	}
	if configured != "" {
		logger.Debug("using default architecture from config", "key", configured)
		return configured, nil
	}

	keys := set.Keys()
	if len(keys) == 0 {
		return "", fmt.Errorf("no architecture templates available")
	}
	idx, err := newPrompter(cmd).Select(ui.SelectConfig{
		Message:     "Select an architecture:",
		Options:     keys,
		Description: func(i int) string { return set[keys[i]].Name },
		PageSize:    10,
	})
	if err != nil {
		return "", fmt.Errorf("selecting architecture: %w", err)
	}
	return keys[idx], nil
}

func printScaffoldResult(out, errOut io.Writer, r *scaffold.Result) {
	style := ui.NewStyler(out)
	for _, d := range r.Dirs {
		fmt.Fprintf(out, "  %s %s/\n", style.OK("[ OK ]"), d)
	}
	for _, f := range r.Files {
		fmt.Fprintf(out, "  %s %s\n", style.OK("[ OK ]"), f)
	}
	if r.GitInitialized {
		fmt.Fprintf(out, "  %s git repository initialized\n", style.OK("[ OK ]"))
	}

	errStyle := ui.NewStyler(errOut)
	for _, w := range r.Warnings {
		fmt.Fprintf(errOut, "%s %s\n", errStyle.Warn("[WARN]"), w)
	}

	fmt.Fprintf(out, "\nProject created at %s\n", r.OutputDir)
	if wd, err := os.Getwd(); err == nil && wd != r.OutputDir {
		fmt.Fprintf(out, "Next: cd %s\n", relOrAbs(wd, r.OutputDir))
	}
}

// relOrAbs shortens target relative to wd when it lies below it.
func relOrAbs(wd, target string) string {
	rel, err := filepath.Rel(wd, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target
	}
	return rel
}
