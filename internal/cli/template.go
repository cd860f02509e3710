package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/branding"
	"github.com/iamjuaness/ForgeArch/internal/store"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/ui"
)

var templateNoEdit bool

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage user architecture templates",
	Long: `Add, edit and remove user templates. User templates live in a single
local_templates.json file and override built-in templates with the same key.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Create a template skeleton and open it in your editor",
	Long: `Create a skeleton template under <key> and open local_templates.json in
your editor. If <key> already exists it is opened for editing instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateAdd,
}

var templateEditCmd = &cobra.Command{
	Use:   "edit <key>",
	Short: "Open a template for editing, copying a built-in if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openStore()
		path, copied, err := s.Edit(args[0])
		if err != nil {
			return err
		}
		if copied {
			fmt.Fprintf(cmd.OutOrStdout(), "Copied built-in template '%s' to %s\n", args[0], path)
		}
		return editLocalTemplates(cmd, s, path)
	},
}

var templateRemoveCmd = &cobra.Command{
	Use:     "remove <key>",
	Aliases: []string{"rm"},
	Short:   "Remove a user template",
	Long: `Remove <key> from local_templates.json. Built-in templates cannot be
removed; removing a user override restores the built-in definition.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateRemove,
}

var templatePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of local_templates.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := openStore().LocalPath()
		if path == "" {
			return store.ErrNoTemplateDir
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var templateMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Fold legacy per-template JSON files into local_templates.json",
	Long: `Older versions stored one JSON file per template. Every command migrates
them automatically; this command runs the migration on its own and reports
what it did.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openStore()
		if s.Dir() == "" {
			return store.ErrNoTemplateDir
		}
		report, err := s.Migrate()
		if err != nil {
			return err
		}
		printMigrationReport(cmd.OutOrStdout(), report, s.LocalPath())
		return nil
	},
}

// Top-level spellings kept for scripts written against earlier releases.
var (
	addTemplateCmd = &cobra.Command{
		Use:   "add-template <key>",
		Short: "Alias for 'template add'",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplateAdd,
	}
	removeTemplateCmd = &cobra.Command{
		Use:   "remove-template <key>",
		Short: "Alias for 'template remove'",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplateRemove,
	}
)

func init() {
	for _, c := range []*cobra.Command{templateAddCmd, templateEditCmd, addTemplateCmd} {
		c.Flags().BoolVar(&templateNoEdit, "no-edit", false, "Do not open an editor")
	}
	templateCmd.AddCommand(templateAddCmd, templateEditCmd, templateRemoveCmd, templatePathCmd, templateMigrateCmd)
	rootCmd.AddCommand(templateCmd, addTemplateCmd, removeTemplateCmd)
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	key := args[0]
	s := openStore()

	res, err := s.Add(key)
	if err != nil {
		return err
	}
	if res.Existing {
		fmt.Fprintf(cmd.OutOrStdout(), "Template '%s' already exists; opening %s\n", key, res.Path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created template '%s' in %s\n", key, res.Path)
	}
	return editLocalTemplates(cmd, s, res.Path)
}

func runTemplateRemove(cmd *cobra.Command, args []string) error {
	key := args[0]
	found, err := openStore().Remove(key)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed template '%s'\n", key)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Template '%s' not found in local templates\n", key)
	}
	return nil
}

// editLocalTemplates opens path in the editor and re-checks the file once
// the editor exits.
func editLocalTemplates(cmd *cobra.Command, s *store.Store, path string) error {
	if templateNoEdit {
		return nil
	}
	if err := openInEditor(path); err != nil {
		return err
	}

	local, err := s.Local()
	if err == nil {
		err = templates.ValidateSet(local)
	}
	if err != nil {
		style := ui.NewStyler(cmd.ErrOrStderr())
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s has problems: %v\n", style.Warn("[WARN]"), path, err)
		fmt.Fprintf(cmd.ErrOrStderr(), "       Fix the file or run '%s template edit' again.\n", branding.CLIName())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d user templates)\n", path, len(local))
	return nil
}

func printMigrationReport(w io.Writer, r store.MigrationReport, target string) {
	style := ui.NewStyler(w)
	for _, f := range r.Removed {
		fmt.Fprintf(w, "  %s migrated %s\n", style.OK("[ OK ]"), f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  %s %s is not a template file; left in place\n", style.Warn("[SKIP]"), f)
	}
	if !r.Migrated() {
		fmt.Fprintln(w, "Nothing to migrate.")
		return
	}
	fmt.Fprintf(w, "Migrated %d template(s) into %s\n", len(r.Keys), target)
}
