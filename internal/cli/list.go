package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/inventory"
	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/logfields"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List source materials",
	Long:  `List materials in the project materials directory and the global one, project first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		return listMaterials(cmd.OutOrStdout(), r, listJSON)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a material for JSON output.
type listEntry struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
	Path string `json:"path"`
	Size int64  `json:"size_bytes"`
}

func listMaterials(out io.Writer, roots lifecycle.RootSource, asJSON bool) error {
	candidates := roots.CandidateRoots()
	entries := inventoryOf(roots)

	if asJSON {
		list := make([]listEntry, 0, len(entries))
		for _, e := range entries {
			list = append(list, listEntry{Name: e.Name, Mode: e.Mode.String(), Path: e.Path, Size: e.Size})
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(candidates) == 0 {
		lifecycle.PrintNoRoots(out, roots.SearchedRoots())
		return nil
	}
	lifecycle.PrintList(out, entries, candidates)
	return nil
}

// inventoryOf lists entries across the candidate roots. Unreadable roots are
// skipped; inventory.List already warns about each one.
func inventoryOf(roots lifecycle.RootSource) []inventory.Entry {
	entries, err := inventory.List(roots.CandidateRoots())
	if err != nil {
		slog.Debug("Partial inventory", logfields.Error(err))
	}
	return entries
}
