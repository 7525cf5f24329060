package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/skillforge-labs/skillforge/internal/config"
	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` gathers source materials (git repositories, documentation sites,
local documents) for authoring skills, keeps track of them per project or globally,
cleans them up when they are no longer needed, and packages finished skills.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verbose)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func newResolver() (*locator.Resolver, error) {
	return locator.New("")
}

func newPrompter(cmd *cobra.Command) lifecycle.Prompter {
	return lifecycle.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
