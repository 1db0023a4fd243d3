package analysis

import (
	"sort"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// ComputeContributorStats folds merged, closed, and open summaries into
// per-author rollups. FirstContribution is the minimum creation time
// seen across all three states (fold order is irrelevant to a minimum).
// Sorted descending by merged count.
func ComputeContributorStats(merged, closed, open []models.PullRequestSummary) []models.ContributorStats {
	type acc struct {
		merged, closed, open int
		first                time.Time
	}
	byAuthor := make(map[string]*acc)
	var order []string

	track := func(pr models.PullRequestSummary, bump func(*acc)) {
		a, ok := byAuthor[pr.Author]
		if !ok {
			a = &acc{first: pr.CreatedAt}
			byAuthor[pr.Author] = a
			order = append(order, pr.Author)
		}
		bump(a)
		if pr.CreatedAt.Before(a.first) {
			a.first = pr.CreatedAt
		}
	}

	for _, pr := range merged {
		track(pr, func(a *acc) { a.merged++ })
	}
	for _, pr := range closed {
		track(pr, func(a *acc) { a.closed++ })
	}
	for _, pr := range open {
		track(pr, func(a *acc) { a.open++ })
	}

	stats := make([]models.ContributorStats, 0, len(order))
	for _, login := range order {
		a := byAuthor[login]
		rate := 0.0
		if total := a.merged + a.closed; total > 0 {
			rate = float64(a.merged) / float64(total) * 100
		}
		stats = append(stats, models.ContributorStats{
			Login:             login,
			MergedCount:       a.merged,
			ClosedCount:       a.closed,
			OpenCount:         a.open,
			FirstContribution: a.first,
			MergeRate:         round1(rate),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MergedCount > stats[j].MergedCount
	})
	return stats
}

// FirstTimerStats is the newcomer cohort rollup for a lookback window.
type FirstTimerStats struct {
	FirstTimers       int
	MergeRate         float64 // percent over the cohort's merged+closed PRs
	MedianMergeHours  *float64
	RepeatMedianHours *float64 // repeat contributors (2+ merges), for contrast
	Retained          int      // first-timers with >= 2 merged PRs
	RetentionRate     float64
}

// ComputeFirstTimerStats identifies authors whose first contribution
// falls inside the lookback window ending at asOf, and compares their
// merge outcomes against established repeat contributors.
func ComputeFirstTimerStats(stats []models.ContributorStats, merged []models.PullRequestSummary, days int, asOf time.Time) FirstTimerStats {
	cutoff := asOf.AddDate(0, 0, -days)

	firstTimer := make(map[string]bool)
	repeat := make(map[string]bool)
	var cohortMerged, cohortClosed, retained int
	for _, c := range stats {
		if c.MergedCount >= 2 {
			repeat[c.Login] = true
		}
		if !c.FirstContribution.After(cutoff) {
			continue
		}
		firstTimer[c.Login] = true
		cohortMerged += c.MergedCount
		cohortClosed += c.ClosedCount
		if c.MergedCount >= 2 {
			retained++
		}
	}

	var cohortPRs, repeatPRs []models.PullRequestSummary
	for _, pr := range merged {
		if firstTimer[pr.Author] {
			cohortPRs = append(cohortPRs, pr)
		}
		if repeat[pr.Author] && !firstTimer[pr.Author] {
			repeatPRs = append(repeatPRs, pr)
		}
	}

	out := FirstTimerStats{
		FirstTimers:       len(firstTimer),
		MedianMergeHours:  mergeTimeMedian(cohortPRs),
		RepeatMedianHours: mergeTimeMedian(repeatPRs),
		Retained:          retained,
	}
	if total := cohortMerged + cohortClosed; total > 0 {
		out.MergeRate = round1(float64(cohortMerged) / float64(total) * 100)
	}
	if out.FirstTimers > 0 {
		out.RetentionRate = round1(float64(retained) / float64(out.FirstTimers) * 100)
	}
	return out
}
