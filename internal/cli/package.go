package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/packager"
)

var packageCmd = &cobra.Command{
	Use:   "package <skill-dir> [output-dir]",
	Short: "Validate a skill and package it as a zip archive",
	Long: `Validate SKILL.md and write <output-dir>/<skill>.zip containing SKILL.md and the
scripts/, references/ and assets/ directories. Other files are reported as skipped.
Without an output directory the archive is written inside the skill directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		outDir := ""
		if len(args) == 2 {
			outDir = args[1]
		}

		fmt.Fprintf(out, "📦 Packaging skill: %s\n", args[0])
		if outDir != "" {
			fmt.Fprintf(out, "   Output directory: %s\n", outDir)
		}
		fmt.Fprintln(out)

		report, err := packager.New(out).Package(args[0], outDir)
		if err != nil {
			var ve *packager.ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintf(out, "❌ Validation failed: %s\n", ve.Result.Summary())
				fmt.Fprintln(out, "   Please fix the validation errors before packaging.")
			}
			return err
		}
		fmt.Fprintf(out, "\n✅ Successfully packaged skill to: %s\n", report.Archive)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packageCmd)
}
