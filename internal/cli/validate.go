package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/skill"
)

var validateCmd = &cobra.Command{
	Use:   "validate <skill-dir>",
	Short: "Validate a skill's SKILL.md frontmatter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		result, err := skill.Validate(args[0])
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(out, "✅ %s\n", result.Summary())
			return nil
		}

		fmt.Fprintf(out, "❌ %s has %d issue(s):\n", args[0], len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "  - %s: %s (%s)\n", issue.Path, issue.Message, issue.Keyword)
			} else {
				fmt.Fprintf(out, "  - %s (%s)\n", issue.Message, issue.Keyword)
			}
		}
		return fmt.Errorf("validation failed")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
