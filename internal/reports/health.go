package reports

import (
	"context"

	"github.com/mikematt33/ghscope/internal/analysis"
	"github.com/mikematt33/ghscope/pkg/models"
)

const topCommitterCount = 10

// Health builds the project-health report: commit velocity, release
// cadence, issue response time, and bus factor.
func (b *Builder) Health(ctx context.Context) (*models.HealthReport, error) {
	days := b.Cfg.Analysis.ActivityWindowDays
	if days <= 0 {
		days = 90
	}

	commits, err := b.Fetcher.Commits(ctx, days, b.AsOf)
	if err != nil {
		return nil, err
	}
	overview, err := b.Fetcher.Overview(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := b.Fetcher.Issues(ctx)
	if err != nil {
		return nil, err
	}
	rawMerged, err := b.Fetcher.PullRequests(ctx, models.StateMerged)
	if err != nil {
		return nil, err
	}
	merged, err := analysis.NormalizeAll(rawMerged, models.StateMerged, b.AsOf)
	if err != nil {
		return nil, err
	}

	perWeek, weekly := analysis.CommitVelocity(commits, days)

	var releases []models.RawRelease
	if overview != nil && overview.Releases != nil {
		releases = overview.Releases.Nodes
	}
	cadence, lastTag := analysis.ReleaseCadence(releases)

	busFactor, _ := analysis.ComputeBusFactor(merged, days, b.AsOf)

	return &models.HealthReport{
		Repo:                   b.Fetcher.Repo(),
		CommitsPerWeek:         round1(perWeek),
		ActiveContributors30d:  analysis.ActiveCommitters(commits, b.AsOf),
		ReleaseCadenceDays:     cadence,
		LastRelease:            lastTag,
		IssueResponseTimeHours: analysis.IssueResponseTime(issues),
		BusFactor:              busFactor,
		TopCommitters:          analysis.TopCommitters(commits, topCommitterCount),
		WeeklyCommits:          weekly,
	}, nil
}
