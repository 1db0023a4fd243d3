package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/report"
)

// runScorecard backs the default `ghscope owner/repo` invocation: every
// section at once, synthesized into one signal table.
func runScorecard(cmd *cobra.Command, args []string) error {
	s, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer s.close()

	stop := newSpinner("Building scorecard...")
	card, err := s.builder.Scorecard(s.ctx)
	stop()
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	switch format := outputFormat(); format {
	case report.FormatJSON:
		return report.WriteJSON(card, os.Stdout)
	case report.FormatText:
		report.RenderScorecardText(card, os.Stdout)
		return nil
	default:
		t := report.ScorecardTable(card)
		return report.NewRenderer(format).Render([]report.Table{t}, os.Stdout)
	}
}
