package analysis

import (
	"testing"

	"github.com/mikematt33/ghscope/pkg/models"
)

func TestComputeContributorStats(t *testing.T) {
	merged := []models.PullRequestSummary{
		mergedPR(1, "alice", "m", 1),
		mergedPR(2, "alice", "m", 2),
		mergedPR(3, "bob", "m", 3),
	}
	closed := []models.PullRequestSummary{closedPR(4, "alice", 1), closedPR(5, "carol", 1)}
	open := []models.PullRequestSummary{openPR(6, "bob", 1)}

	stats := ComputeContributorStats(merged, closed, open)
	if len(stats) != 3 {
		t.Fatalf("expected 3 contributors, got %d", len(stats))
	}
	if stats[0].Login != "alice" {
		t.Fatalf("top contributor = %q, want alice", stats[0].Login)
	}
	a := stats[0]
	if a.MergedCount != 2 || a.ClosedCount != 1 || a.OpenCount != 0 {
		t.Errorf("alice counts = %+v", a)
	}
	if a.MergeRate != 66.7 {
		t.Errorf("alice merge rate = %v, want 66.7", a.MergeRate)
	}

	for _, s := range stats {
		if s.Login == "carol" && s.MergeRate != 0 {
			t.Errorf("carol (closed only) rate = %v, want 0", s.MergeRate)
		}
	}
}

func TestComputeContributorStatsFirstContribution(t *testing.T) {
	early := mergedPR(1, "alice", "m", 1)
	early.CreatedAt = baseTime.AddDate(0, -6, 0)
	late := closedPR(2, "alice", 1)

	// Order of the folds must not matter for the minimum.
	stats := ComputeContributorStats([]models.PullRequestSummary{early}, []models.PullRequestSummary{late}, nil)
	if !stats[0].FirstContribution.Equal(early.CreatedAt) {
		t.Errorf("first contribution = %v, want %v", stats[0].FirstContribution, early.CreatedAt)
	}

	stats = ComputeContributorStats(nil, []models.PullRequestSummary{late}, nil)
	if !stats[0].FirstContribution.Equal(late.CreatedAt) {
		t.Errorf("single-state first contribution = %v", stats[0].FirstContribution)
	}
}

func TestComputeFirstTimerStats(t *testing.T) {
	asOf := baseTime.AddDate(0, 0, 40)

	// alice: veteran, 2 merges, first contribution long before cutoff.
	// newbie: inside the window, 1 merged 1 closed.
	// keeper: inside the window, 2 merged (retained).
	veteran1 := mergedPR(1, "alice", "m", 10)
	veteran1.CreatedAt = baseTime.AddDate(-1, 0, 0)
	veteran2 := mergedPR(2, "alice", "m", 20)
	veteran2.CreatedAt = baseTime.AddDate(-1, 0, 1)
	newbieMerged := mergedPR(3, "newbie", "m", 4)
	keeper1 := mergedPR(4, "keeper", "m", 6)
	keeper2 := mergedPR(5, "keeper", "m", 8)

	merged := []models.PullRequestSummary{veteran1, veteran2, newbieMerged, keeper1, keeper2}
	closed := []models.PullRequestSummary{closedPR(6, "newbie", 2)}

	stats := ComputeContributorStats(merged, closed, nil)
	ft := ComputeFirstTimerStats(stats, merged, 90, asOf)

	if ft.FirstTimers != 2 {
		t.Fatalf("first timers = %d, want 2", ft.FirstTimers)
	}
	// Cohort: newbie 1/2, keeper 2/2 -> 3 merged of 4 decided = 75%.
	if ft.MergeRate != 75 {
		t.Errorf("cohort merge rate = %v, want 75", ft.MergeRate)
	}
	if ft.Retained != 1 {
		t.Errorf("retained = %d, want 1", ft.Retained)
	}
	if ft.RetentionRate != 50 {
		t.Errorf("retention rate = %v, want 50", ft.RetentionRate)
	}
	// Cohort PRs: 4, 6, 8 hours -> median 6.
	if ft.MedianMergeHours == nil || *ft.MedianMergeHours != 6 {
		t.Errorf("cohort median = %v, want 6", ft.MedianMergeHours)
	}
	// Repeat (non-first-timer) PRs: alice's 10 and 20 -> 15.
	if ft.RepeatMedianHours == nil || *ft.RepeatMedianHours != 15 {
		t.Errorf("repeat median = %v, want 15", ft.RepeatMedianHours)
	}
}

func TestComputeFirstTimerStatsEmptyWindow(t *testing.T) {
	old := mergedPR(1, "alice", "m", 1)
	old.CreatedAt = baseTime.AddDate(-2, 0, 0)
	stats := ComputeContributorStats([]models.PullRequestSummary{old}, nil, nil)

	ft := ComputeFirstTimerStats(stats, []models.PullRequestSummary{old}, 90, baseTime)
	if ft.FirstTimers != 0 || ft.MergeRate != 0 || ft.RetentionRate != 0 {
		t.Errorf("no newcomers expected: %+v", ft)
	}
	if ft.MedianMergeHours != nil {
		t.Errorf("empty cohort median should be nil")
	}
}
