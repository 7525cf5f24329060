package cli

import (
	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/clone"
	"github.com/skillforge-labs/skillforge/internal/config"
	"github.com/skillforge-labs/skillforge/internal/convert"
	"github.com/skillforge-labs/skillforge/internal/fetch"
	"github.com/skillforge-labs/skillforge/internal/llmstxt"
)

var fetchReq fetch.Request

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch source materials for a skill",
	Long: `Clone a git repository, convert a documentation source to Markdown, or both.

Materials are written to <project>/.claude/temp-materials/<name> inside a
project and to ~/skill-materials/<name> elsewhere, unless --output is given.
Documentation sources may be web pages, Markdown or text files, local or remote.`,
	Example: `  skillforge fetch --git https://github.com/user/awesome-tool --depth 1
  skillforge fetch --docs https://docs.example.com --name example
  skillforge fetch --git https://github.com/user/repo --docs https://docs.example.com --name combo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		req := fetchReq
		if !cmd.Flags().Changed("depth") {
			req.Depth = config.CloneDepth()
		}

		timeout := config.HTTPTimeout()
		f := &fetch.Fetcher{
			Targets:   r,
			Cloner:    clone.Default(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			Converter: convert.NewDocument(timeout),
			Detector:  llmstxt.NewDetector(timeout),
			Prompter:  newPrompter(cmd),
			Out:       cmd.OutOrStdout(),
			HomeDir:   r.HomeDir,
		}
		_, err = f.Run(cmd.Context(), req)
		return err
	},
}

func init() {
	fl := fetchCmd.Flags()
	fl.StringVar(&fetchReq.GitURL, "git", "", "Git repository URL to clone")
	fl.StringVar(&fetchReq.DocsSource, "docs", "", "Documentation URL or local file to convert")
	fl.StringVar(&fetchReq.Name, "name", "", "Material name (required with --docs)")
	fl.StringVarP(&fetchReq.Output, "output", "o", "", "Output directory (default: chosen from the current project)")
	fl.IntVar(&fetchReq.Depth, "depth", 0, "Git clone depth (default: full history)")
	fl.StringVarP(&fetchReq.Branch, "branch", "b", "", "Git branch to clone")
	fl.BoolVar(&fetchReq.SingleBranch, "single-branch", false, "Clone only a single branch")
	fl.BoolVar(&fetchReq.Clean, "clean", false, "Remove the output directory first if it exists")
	fetchCmd.MarkFlagsOneRequired("git", "docs")
	rootCmd.AddCommand(fetchCmd)
}
