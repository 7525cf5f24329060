package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/config"
	"github.com/skillforge-labs/skillforge/internal/llmstxt"
)

var (
	detectAll      bool
	detectDownload string
)

var detectCmd = &cobra.Command{
	Use:   "detect <url>",
	Short: "Check a documentation site for llms.txt",
	Long: `Probe the root of a documentation site for llms-full.txt, llms.txt and
llms-small.txt, in that order. See https://llmstxt.org/.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		d := llmstxt.NewDetector(config.HTTPTimeout())
		base := args[0]

		fmt.Fprintf(out, "🔍 Detecting llms.txt at: %s\n\n", base)

		if detectAll {
			hits, err := d.DetectAll(cmd.Context(), base)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(out, "❌ No llms.txt variants found")
				fmt.Fprintln(out, "\n💡 This site may not support the llms.txt standard.")
				return nil
			}
			fmt.Fprintf(out, "✅ Found %d variant(s):\n\n", len(hits))
			for _, h := range hits {
				fmt.Fprintf(out, "  %-8s → %s\n", h.Variant, h.URL)
			}
			return nil
		}

		hit, err := d.Detect(cmd.Context(), base)
		if err != nil {
			return err
		}
		if hit == nil {
			fmt.Fprintln(out, "❌ No llms.txt found")
			fmt.Fprintln(out, "\n💡 This site may not support the llms.txt standard.")
			fmt.Fprintln(out, "   You can still convert it with 'fetch --docs'.")
			return nil
		}
		fmt.Fprintf(out, "✅ Found: %s\n   Variant: %s\n", hit.URL, hit.Variant)

		if detectDownload != "" {
			if err := d.Download(cmd.Context(), hit.URL, detectDownload); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n📥 Saved to: %s\n", detectDownload)
			return nil
		}
		fmt.Fprintln(out, "\n💡 Use this URL for faster documentation extraction:")
		fmt.Fprintf(out, "   fetch --docs %s --name <name>\n", hit.URL)
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectAll, "all", false, "List every available variant")
	detectCmd.Flags().StringVar(&detectDownload, "download", "", "Save the first variant found to this file")
	detectCmd.MarkFlagsMutuallyExclusive("all", "download")
	rootCmd.AddCommand(detectCmd)
}
