package reports

import (
	"context"

	"github.com/mikematt33/ghscope/internal/analysis"
	"github.com/mikematt33/ghscope/pkg/models"
)

// Review builds the review-bottleneck report from the review-detail
// queries for merged and open PRs.
func (b *Builder) Review(ctx context.Context) (*models.ReviewReport, error) {
	rawMerged, err := b.Fetcher.PullRequestsWithReviews(ctx, models.StateMerged)
	if err != nil {
		return nil, err
	}
	rawOpen, err := b.Fetcher.PullRequestsWithReviews(ctx, models.StateOpen)
	if err != nil {
		return nil, err
	}

	merged, err := analysis.NormalizeAll(rawMerged, models.StateMerged, b.AsOf)
	if err != nil {
		return nil, err
	}
	open, err := analysis.NormalizeAll(rawOpen, models.StateOpen, b.AsOf)
	if err != nil {
		return nil, err
	}

	staleDays := b.Cfg.Analysis.StaleReviewDays
	if staleDays <= 0 {
		staleDays = analysis.DefaultStaleReviewDays
	}

	report := analysis.ComputeReviewAnalysis(merged, open, b.Fetcher.Repo(), staleDays)
	return &report, nil
}
