package reports

import (
	"context"
	"sort"

	"github.com/mikematt33/ghscope/internal/analysis"
	"github.com/mikematt33/ghscope/pkg/models"
)

// Assess scores the user's open PRs against the repository's merge
// history. Assessments come back ranked by probability, highest first.
func (b *Builder) Assess(ctx context.Context, user string) (*models.AssessmentReport, error) {
	rawUserPRs, err := b.Fetcher.UserOpenPRs(ctx, user)
	if err != nil {
		return nil, err
	}
	userPRs, err := analysis.NormalizeAll(rawUserPRs, models.StateOpen, b.AsOf)
	if err != nil {
		return nil, err
	}

	report := &models.AssessmentReport{
		Repo: b.Fetcher.Repo(),
		User: user,
	}
	if len(userPRs) == 0 {
		return report, nil
	}

	rawMerged, err := b.Fetcher.PullRequests(ctx, models.StateMerged)
	if err != nil {
		return nil, err
	}
	rawClosed, err := b.Fetcher.PullRequests(ctx, models.StateClosed)
	if err != nil {
		return nil, err
	}
	merged, err := analysis.NormalizeAll(rawMerged, models.StateMerged, b.AsOf)
	if err != nil {
		return nil, err
	}
	closed, err := analysis.NormalizeAll(rawClosed, models.StateClosed, b.AsOf)
	if err != nil {
		return nil, err
	}

	topN := b.Cfg.Analysis.SimilarResultCount
	if topN <= 0 {
		topN = analysis.DefaultSimilarCount
	}

	for _, pr := range userPRs {
		probability, factors := analysis.ComputeMergeProbability(pr, merged, closed)
		report.Assessments = append(report.Assessments, models.PRAssessment{
			PR:            pr,
			Probability:   probability,
			Factors:       factors,
			SimilarMerged: analysis.FindSimilarPRs(pr, merged, topN),
			SimilarClosed: analysis.FindSimilarPRs(pr, closed, topN),
		})
	}
	sort.SliceStable(report.Assessments, func(i, j int) bool {
		return report.Assessments[i].Probability > report.Assessments[j].Probability
	})
	return report, nil
}
