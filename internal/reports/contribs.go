package reports

import (
	"context"
	"time"

	"github.com/mikematt33/ghscope/internal/analysis"
	"github.com/mikematt33/ghscope/pkg/models"
)

const topContributorCount = 10

// Contributors builds the contributor dynamics report: rollups per
// author, spam detection, and first-timer retention.
func (b *Builder) Contributors(ctx context.Context) (*models.ContributorReport, error) {
	rawMerged, err := b.Fetcher.PullRequests(ctx, models.StateMerged)
	if err != nil {
		return nil, err
	}
	rawClosed, err := b.Fetcher.PullRequests(ctx, models.StateClosed)
	if err != nil {
		return nil, err
	}
	rawOpen, err := b.Fetcher.PullRequests(ctx, models.StateOpen)
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
	open, err := analysis.NormalizeAll(rawOpen, models.StateOpen, b.AsOf)
	if err != nil {
		return nil, err
	}

	stats := analysis.ComputeContributorStats(merged, closed, open)

	repeat, oneTime := 0, 0
	for _, s := range stats {
		switch {
		case s.MergedCount >= 2:
			repeat++
		case s.MergedCount == 1:
			oneTime++
		}
	}

	top := stats
	if len(top) > topContributorCount {
		top = top[:topContributorCount]
	}

	// Spam detection looks at the whole population: the merged set
	// establishes which authors have any accepted work.
	all := make([]models.PullRequestSummary, 0, len(merged)+len(closed)+len(open))
	all = append(all, merged...)
	all = append(all, closed...)
	all = append(all, open...)

	closeWindow := time.Duration(b.Cfg.Analysis.SpamCloseMinutes) * time.Minute
	if closeWindow <= 0 {
		closeWindow = analysis.DefaultSpamCloseWindow
	}

	ftDays := b.Cfg.Analysis.FirstTimerWindowDays
	if ftDays <= 0 {
		ftDays = 90
	}
	ft := analysis.ComputeFirstTimerStats(stats, merged, ftDays, b.AsOf)

	return &models.ContributorReport{
		Repo:                       b.Fetcher.Repo(),
		TotalContributors:          len(stats),
		TopContributors:            top,
		RepeatContributors:         repeat,
		OneTimeContributors:        oneTime,
		SpamPRs:                    analysis.DetectSpamPRs(all, closeWindow),
		FirstTimers:                ft.FirstTimers,
		FirstTimerMergeRate:        ft.MergeRate,
		FirstTimerMedianMergeHours: ft.MedianMergeHours,
		RepeatMedianMergeHours:     ft.RepeatMedianHours,
		RetainedFirstTimers:        ft.Retained,
		RetentionRate:              ft.RetentionRate,
	}, nil
}
