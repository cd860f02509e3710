package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/config"
	"github.com/iamjuaness/ForgeArch/internal/editor"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/ui"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
	"github.com/iamjuaness/ForgeArch/internal/vcs"
)

var (
	doctorFix       bool
	doctorCheckFile string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and config file")
	doctorCmd.Flags().StringVar(&doctorCheckFile, "check-file", "", "Validate a template JSON file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the forge installation",
	Long: `Check the forge config directories, the user template file, legacy
template files awaiting migration, and the git and editor tools forge uses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if doctorCheckFile != "" {
			return runTemplateFileCheck(out, doctorCheckFile)
		}

		problems, err := userdata.CheckUserdata(out, doctorFix)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		n, err := openStore().Check(out)
		if err != nil {
			return err
		}
		problems += n

		fmt.Fprintln(out)
		problems += runToolsCheck(out)

		fmt.Fprintln(out)
		if problems == 0 {
			fmt.Fprintln(out, "All checks passed.")
		} else {
			fmt.Fprintf(out, "%d problem(s) found.\n", problems)
		}
		return nil
	},
}

// runToolsCheck reports git and editor availability. A missing editor is
// only a warning; it matters for 'template add' and 'template edit'.
func runToolsCheck(w io.Writer) int {
	fmt.Fprintln(w, ui.NewStyler(w).Heading("Tools:"))
	problems := 0

	if path, ok := (vcs.Git{}).Available(); ok {
		fmt.Fprintf(w, "  [ OK ] git found at %s\n", path)
	} else {
		fmt.Fprintln(w, "  [MISS] git not found (needed for --git-init)")
		problems++
	}

	launcher := editor.New(config.Current().Editor, logger)
	if c, ok := launcher.Detect(); ok {
		fmt.Fprintf(w, "  [ OK ] editor: %s (from %s)\n", c, c.Source)
	} else {
		fmt.Fprintln(w, "  [WARN] no editor found; set FORGE_EDITOR, VISUAL or EDITOR")
		problems++
	}
	return problems
}

func runTemplateFileCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Template file validation: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading %s: %w", path, err)
	}

	set, err := templates.ParseSet(data)
	if err != nil {
		// A bare template is also a valid legacy file.
		t, tErr := templates.ParseTemplate(data)
		if tErr != nil {
			return reportSchemaFailure(w, path, err)
		}
		set = templates.Set{"(single template)": t}
	}

	if err := templates.ValidateSet(set); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("template file %s is invalid: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] %d valid template(s)\n", len(set))
	return nil
}

func reportSchemaFailure(w io.Writer, path string, err error) error {
	var se *templates.SchemaError
	if !errors.As(err, &se) {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("template file %s: %w", path, err)
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(se.Issues))
	for _, issue := range se.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("template file %s has %d validation issue(s)", path, len(se.Issues))
}
