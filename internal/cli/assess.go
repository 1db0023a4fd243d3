package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

var flagAssessUser string

var assessCmd = &cobra.Command{
	Use:   "assess owner/repo",
	Short: "Score your open PRs' merge chances against repo history",
	Long: `Estimate the merge probability of your open pull requests in the given
repository, with the factors behind each score and the most similar
previously merged and closed PRs. Defaults to the authenticated user;
pass --user to assess someone else's PRs.`,
	Example: `  ghscope assess golang/go
  ghscope assess golang/go --user octocat`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().StringVarP(&flagAssessUser, "user", "u", "", "GitHub login to assess (default: authenticated user)")
}

func runAssess(cmd *cobra.Command, args []string) error {
	return runReport(cmd, args[0], "Assessing open PRs...", func(s *session) ([]report.Table, any, error) {
		user := flagAssessUser
		if user == "" {
			var err error
			if user, err = s.client.Viewer(s.ctx); err != nil {
				return nil, nil, fmt.Errorf("could not resolve authenticated user (pass --user): %w", err)
			}
		}
		r, err := s.builder.Assess(s.ctx, user)
		if err != nil {
			return nil, nil, err
		}
		if len(r.Assessments) == 0 {
			fmt.Printf("No open PRs by %s in %s.\n", user, r.Repo)
		}
		return report.AssessFrames(r), r, nil
	})
}
