package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

var triageCmd = &cobra.Command{
	Use:   "triage owner/repo",
	Short: "Analyze merge flow: latency, batch merges, mergers, categories",
	Long: `Report on how pull requests move through the repository: merge rate and
latency quantiles, batch-merge sessions, who merges, and how different
change categories fare.`,
	Example: `  ghscope triage golang/go
  ghscope triage golang/go --format=csv`,
	Args: cobra.ExactArgs(1),
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)
}

func runTriage(cmd *cobra.Command, args []string) error {
	return runReport(cmd, args[0], "Analyzing merge flow...", func(s *session) ([]report.Table, any, error) {
		r, err := s.builder.Triage(s.ctx)
		if err != nil {
			return nil, nil, err
		}
		return report.TriageFrames(r), r, nil
	})
}
