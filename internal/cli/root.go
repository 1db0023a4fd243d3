package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version can be set via build flags: -ldflags "-X 'github.com/mikematt33/ghscope/internal/cli.Version=v1.0.0'"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ghscope [owner/repo]",
	Short: "Read-only analytics for GitHub repository PR and commit history",
	Long: `ghscope inspects a public GitHub repository's pull request and commit
history and reports on merge flow, contributor dynamics, review bottlenecks,
and project health. Run it with just a repository to get the scorecard
overview, or use a subcommand for one report in depth.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Example: `  ghscope golang/go
  ghscope triage golang/go --format=json
  ghscope assess golang/go`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runScorecard(cmd, args)
	}
}

// Flags shared by the report commands.
var (
	flagFormat  string
	flagJSON    bool
	flagLimit   int
	flagDays    int
	flagNoCache bool
	flagOffline bool
	flagVerbose bool
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFormat, "format", "f", "text", "Output format (text, json, csv, markdown)")
	pf.BoolVar(&flagJSON, "json", false, "Shorthand for --format json")
	pf.IntVarP(&flagLimit, "limit", "l", 0, "Max PRs to fetch per state (default from config)")
	pf.IntVarP(&flagDays, "days", "d", 90, "Lookback window in days for activity, bus factor, and first-timer metrics")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
	pf.BoolVar(&flagOffline, "offline", false, "Use cached data only, never call the API")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "csv", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})
}
