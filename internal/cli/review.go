package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

var reviewCmd = &cobra.Command{
	Use:   "review owner/repo",
	Short: "Analyze review coverage, turnaround, and bottlenecks",
	Long: `Report on the review process: how many merges get reviewed at all, how
fast first reviews arrive, who does the reviewing, and which open PRs are
waiting without any attention.`,
	Example: `  ghscope review golang/go`,
	Args:    cobra.ExactArgs(1),
	RunE:    runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	return runReport(cmd, args[0], "Analyzing reviews...", func(s *session) ([]report.Table, any, error) {
		r, err := s.builder.Review(s.ctx)
		if err != nil {
			return nil, nil, err
		}
		return report.ReviewFrames(r), r, nil
	})
}
