package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/lifecycle"
)

type cleanOptions struct {
	list  bool
	all   bool
	force bool
}

var cleanOpts cleanOptions

var cleanCmd = &cobra.Command{
	Use:   "clean [name]",
	Short: "Delete source materials",
	Long: `Delete source materials from the project and global materials directories.

With no arguments, an interactive session lists every material and asks which
to delete. A name deletes that material, preferring the project copy. --all
deletes everything after typing '` + lifecycle.BulkPhrase + `'.`,
	Example: `  skillforge clean                # interactive
  skillforge clean --list         # list only
  skillforge clean react-docs     # delete one
  skillforge clean --all          # delete everything
  skillforge clean old-repo -f    # delete without confirmation`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		m := lifecycle.NewManager(r, newPrompter(cmd), cmd.OutOrStdout())
		return cleanMaterials(cmd.OutOrStdout(), m, name, cleanOpts)
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanOpts.list, "list", "l", false, "List materials without deleting")
	cleanCmd.Flags().BoolVarP(&cleanOpts.all, "all", "a", false, "Delete all materials")
	cleanCmd.Flags().BoolVarP(&cleanOpts.force, "force", "f", false, "Skip confirmation prompts")
	cleanCmd.MarkFlagsMutuallyExclusive("list", "all")
	rootCmd.AddCommand(cleanCmd)
}

func cleanMaterials(out io.Writer, m *lifecycle.Manager, name string, opts cleanOptions) error {
	if name != "" && (opts.list || opts.all) {
		return fmt.Errorf("a material name cannot be combined with --list or --all")
	}

	// A declined confirmation is (false, nil) and exits cleanly.
	if name != "" {
		_, err := m.DeleteByName(name, opts.force)
		return err
	}

	candidates := m.Roots.CandidateRoots()
	if len(candidates) == 0 {
		lifecycle.PrintNoRoots(out, m.Roots.SearchedRoots())
		return nil
	}

	switch {
	case opts.list:
		lifecycle.PrintList(out, inventoryOf(m.Roots), candidates)
		return nil
	case opts.all:
		result := m.DeleteAll(inventoryOf(m.Roots), opts.force)
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d of %d materials could not be deleted", len(result.Failed), result.Requested)
		}
		return nil
	default:
		_, err := lifecycle.NewSession(m, inventoryOf(m.Roots), candidates).Run()
		return err
	}
}
