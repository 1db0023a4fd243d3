package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

var contribsCmd = &cobra.Command{
	Use:   "contribs owner/repo",
	Short: "Analyze contributor dynamics, spam, and first-timer retention",
	Example: `  ghscope contribs golang/go
  ghscope contribs golang/go --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: runContribs,
}

func init() {
	rootCmd.AddCommand(contribsCmd)
}

func runContribs(cmd *cobra.Command, args []string) error {
	return runReport(cmd, args[0], "Analyzing contributors...", func(s *session) ([]report.Table, any, error) {
		r, err := s.builder.Contributors(s.ctx)
		if err != nil {
			return nil, nil, err
		}
		return report.ContribFrames(r), r, nil
	})
}
