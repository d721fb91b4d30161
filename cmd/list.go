package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/basset/internal/cachemap"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List cache map entries",
	Long: `List the persistent cache map: every internalized identifier and the
storage-relative path it resolved to. Presence-only entries (archives and
directories) show an empty value.

Examples:
  basset list                     # Table format
  basset list -f json             # Output as JSON
  basset list -f yaml             # Output as YAML`,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().VarP(newEnumValue(&listFormat, "table", "table", "json", "yaml"),
		"format", "f", "Output format (table|json|yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}

	if !ctx.cfg.CacheMap.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Cache map is disabled (cache_map.enabled: false)")

		return nil
	}

	entries := ctx.cache.Entries()

	switch listFormat {
	case "table":
		return listTable(cmd, entries)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(entries)
	case "yaml":
		out, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	default:
		return fmt.Errorf("unknown format %q (expected table, json or yaml)", listFormat)
	}
}

func listTable(cmd *cobra.Command, entries []cachemap.Entry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	title := cases.Title(language.English)
	fmt.Fprintf(w, "%s\t%s\n", title.String("identifier"), title.String("path"))

	for _, entry := range entries {
		value := entry.Value
		if value == "" {
			value = "(presence)"
		}
		fmt.Fprintf(w, "%s\t%s\n", entry.Key, value)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))

	return nil
}
