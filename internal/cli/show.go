package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/iamjuaness/ForgeArch/internal/templates"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print one resolved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openStore().Lookup(args[0])
		if err != nil {
			return err
		}

		data, err := renderTemplate(t, showFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "json", "Output format: json or yaml")
	rootCmd.AddCommand(showCmd)
}

func renderTemplate(t templates.Template, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return templates.MarshalTemplate(t)
	case "yaml", "yml":
		data, err := yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encoding template as YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
