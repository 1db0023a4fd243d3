package analysis

import (
	"sort"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// DefaultBatchWindow is the merge-proximity window for batch detection.
const DefaultBatchWindow = 30 * time.Minute

// DetectBatchMerges clusters merges by same-merger time proximity in a
// single left-to-right pass. A run extends while the next merge shares
// the run's merger and lands strictly within the window of the run's
// most recent merge; closed runs are never re-merged or re-split. Only
// runs of three or more become clusters, in chronological order of run
// start.
func DetectBatchMerges(prs []models.PullRequestSummary, window time.Duration) []models.BatchCluster {
	var merged []models.PullRequestSummary
	for _, pr := range prs {
		if pr.MergedAt != nil && pr.MergedBy != "" {
			merged = append(merged, pr)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.Before(*merged[j].MergedAt)
	})

	var clusters []models.BatchCluster
	if len(merged) == 0 {
		return clusters
	}

	flush := func(run []models.PullRequestSummary) {
		if len(run) < 3 {
			return
		}
		numbers := make([]int, len(run))
		for i, pr := range run {
			numbers[i] = pr.Number
		}
		clusters = append(clusters, models.BatchCluster{
			Merger:    run[0].MergedBy,
			Count:     len(run),
			StartTime: *run[0].MergedAt,
			EndTime:   *run[len(run)-1].MergedAt,
			PRs:       numbers,
		})
	}

	run := []models.PullRequestSummary{merged[0]}
	for _, pr := range merged[1:] {
		prev := run[len(run)-1]
		sameMerger := pr.MergedBy == prev.MergedBy
		withinWindow := pr.MergedAt.Sub(*prev.MergedAt) < window
		if sameMerger && withinWindow {
			run = append(run, pr)
		} else {
			flush(run)
			run = []models.PullRequestSummary{pr}
		}
	}
	flush(run)

	return clusters
}
