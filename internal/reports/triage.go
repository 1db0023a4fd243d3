package reports

import (
	"context"
	"time"

	"github.com/mikematt33/ghscope/internal/analysis"
	"github.com/mikematt33/ghscope/pkg/models"
)

// Triage builds the merge-flow report: volume, latency quantiles, batch
// merges, and per-merger/per-category rollups.
func (b *Builder) Triage(ctx context.Context) (*models.TriageReport, error) {
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

	med, p25, p75 := analysis.ComputeMergeTimes(merged)

	mergeRate := 0.0
	if decided := len(merged) + len(closed); decided > 0 {
		mergeRate = round1(float64(len(merged)) / float64(decided) * 100)
	}

	window := time.Duration(b.Cfg.Analysis.BatchWindowMinutes) * time.Minute
	if window <= 0 {
		window = analysis.DefaultBatchWindow
	}

	return &models.TriageReport{
		Repo:              b.Fetcher.Repo(),
		TotalMerged:       len(merged),
		TotalClosed:       len(closed),
		TotalOpen:         len(open),
		MergeRate:         mergeRate,
		MedianMergeHours:  round1(med),
		P25MergeHours:     round1(p25),
		P75MergeHours:     round1(p75),
		MaintainerStats:   analysis.ComputeMaintainerStats(merged),
		BatchClusters:     analysis.DetectBatchMerges(merged, window),
		CategoryBreakdown: analysis.CategoryBreakdown(merged, closed),
	}, nil
}
