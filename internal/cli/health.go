package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

var healthCmd = &cobra.Command{
	Use:   "health owner/repo",
	Short: "Analyze commit velocity, releases, issue response, bus factor",
	Example: `  ghscope health golang/go`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	return runReport(cmd, args[0], "Analyzing project health...", func(s *session) ([]report.Table, any, error) {
		r, err := s.builder.Health(s.ctx)
		if err != nil {
			return nil, nil, err
		}
		return report.HealthFrames(r), r, nil
	})
}
