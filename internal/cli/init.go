package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/branding"
	"github.com/iamjuaness/ForgeArch/internal/userdata"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the forge config directory",
	Long: `Create the forge config directory, the user template directory and a
commented config.yaml. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := userdata.GetConfigRoot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s at %s\n", branding.DisplayName(), root)

		if err := userdata.InitGlobal(out); err != nil {
			return fmt.Errorf("initializing config directory: %w", err)
		}

		fmt.Fprintf(out, "\nDone. Run '%s template add <key>' to create your own template.\n", branding.CLIName())
		return nil
	},
}
