package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/splitdocs"
)

var splitRules string

var splitCmd = &cobra.Command{
	Use:   "split <input-file> <output-dir>",
	Short: "Split an aggregated documentation file into sections",
	Long: `Split a documentation dump such as llms-full.txt into section files.

The rules file is a YAML list of {file, patterns}. Each "Source: <url>" line
starts a page that goes to the first rule with a matching pattern (a regular
expression). Pages matching no rule are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		rules, err := splitdocs.LoadRules(splitRules)
		if err != nil {
			return err
		}

		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer in.Close()

		sections, err := splitdocs.Split(in, rules, args[1])
		if err != nil {
			return err
		}
		for _, s := range sections {
			if s.Skipped {
				fmt.Fprintf(out, "⚠️  Skipping %s (no content found)\n", s.File)
				continue
			}
			fmt.Fprintf(out, "✅ Created %s (%.1f KB, %d lines)\n", s.File, float64(s.Bytes)/1024, s.Lines)
		}
		fmt.Fprintln(out, "\n✅ Documentation split complete!")
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitRules, "rules", "r", "", "YAML rules file (required)")
	_ = splitCmd.MarkFlagRequired("rules")
	rootCmd.AddCommand(splitCmd)
}
