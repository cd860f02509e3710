package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iamjuaness/ForgeArch/internal/store"
	"github.com/iamjuaness/ForgeArch/internal/templates"
	"github.com/iamjuaness/ForgeArch/internal/ui"
)

var (
	listSourceFilter string
	listKindFilter   string
	listJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List available architecture templates",
	Long: `List built-in and user templates after overrides are applied.

The optional query matches keys, names and descriptions (case-insensitive
substring). Use --source to show only built-in or local templates and --kind
to show templates that seed a file of the given kind.`,
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listSourceFilter, "source", "", "Filter by source (builtin, local)")
	listCmd.Flags().StringVar(&listKindFilter, "kind", "", "Filter by file kind (e.g. backend, python)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a resolved template for display.
type listEntry struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Kinds       []string `json:"kinds,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	res, err := openStore().ResolveDetailed()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, key := range res.Templates.Keys() {
		e := newListEntry(key, res.Templates[key], res.Origins[key])
		if matchesSearch(e, query, listSourceFilter, listKindFilter) {
			entries = append(entries, e)
		}
	}

	if listJSON {
		if entries == nil {
			entries = []listEntry{}
		}
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates match.")
		return nil
	}
	return printListTable(cmd, entries)
}

func newListEntry(key string, t templates.Template, origin store.Origin) listEntry {
	seen := map[string]bool{}
	var kinds []string
	for _, p := range t.FilePaths() {
		k := strings.ToLower(strings.TrimSpace(t.Files[p]))
		if k != "" && !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return listEntry{
		Key:         key,
		Name:        t.Name,
		Description: t.Description,
		Source:      string(origin),
		Kinds:       kinds,
	}
}

func matchesSearch(e listEntry, query, sourceFilter, kindFilter string) bool {
	// Filter by source (case-insensitive exact match).
	if sourceFilter != "" && !strings.EqualFold(e.Source, sourceFilter) {
		return false
	}

	// Filter by kind (matches if any file kind matches).
	if kindFilter != "" && !matchesAnyKind(e.Kinds, kindFilter) {
		return false
	}

	// Filter by query (substring match on key, name, or description).
	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(e.Key), q) &&
			!strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}

	return true
}

func matchesAnyKind(kinds []string, filter string) bool {
	for _, k := range kinds {
		if strings.EqualFold(k, filter) {
			return true
		}
	}
	return false
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	style := ui.NewStyler(cmd.OutOrStdout())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		// Every row styles the same cells so tabwriter widths stay aligned.
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", style.Key(e.Key), e.Name, e.Source, style.Dim(desc))
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
