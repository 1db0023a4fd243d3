package analysis

import (
	"testing"

	"github.com/mikematt33/ghscope/pkg/models"
)

func TestComputeMaintainerStats(t *testing.T) {
	prs := []models.PullRequestSummary{
		mergedPR(1, "a", "carol", 10),
		mergedPR(2, "b", "carol", 30),
		mergedPR(3, "c", "dave", 4),
		openPR(4, "d", 1), // not merged, ignored
	}

	stats := ComputeMaintainerStats(prs)
	if len(stats) != 2 {
		t.Fatalf("expected 2 mergers, got %d", len(stats))
	}
	if stats[0].Login != "carol" || stats[0].MergeCount != 2 {
		t.Errorf("top merger = %+v, want carol with 2", stats[0])
	}
	if stats[0].AvgMergeTimeHours != 20 {
		t.Errorf("carol avg = %v, want 20", stats[0].AvgMergeTimeHours)
	}
	if stats[1].Login != "dave" || stats[1].AvgMergeTimeHours != 4 {
		t.Errorf("second merger = %+v", stats[1])
	}
}

func TestComputeMaintainerStatsNoLatency(t *testing.T) {
	pr := mergedPR(1, "a", "carol", 5)
	pr.TimeToMergeHours = nil
	stats := ComputeMaintainerStats([]models.PullRequestSummary{pr})
	if len(stats) != 1 || stats[0].AvgMergeTimeHours != 0 {
		t.Errorf("missing latency should average to 0, got %+v", stats)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	mkMerged := func(n int, cat string, hours float64) models.PullRequestSummary {
		pr := mergedPR(n, "a", "m", hours)
		pr.Category = cat
		return pr
	}
	mkClosed := func(n int, cat string) models.PullRequestSummary {
		pr := closedPR(n, "a", 1)
		pr.Category = cat
		return pr
	}

	merged := []models.PullRequestSummary{
		mkMerged(1, "fix", 10),
		mkMerged(2, "fix", 20),
		mkMerged(3, "feat", 5),
	}
	closed := []models.PullRequestSummary{
		mkClosed(4, "fix"),
		mkClosed(5, "docs"),
	}

	rows := CategoryBreakdown(merged, closed)
	if len(rows) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(rows))
	}
	// Sorted by name: docs, feat, fix.
	if rows[0].Category != "docs" || rows[1].Category != "feat" || rows[2].Category != "fix" {
		t.Fatalf("rows not sorted by category: %+v", rows)
	}

	fix := rows[2]
	if fix.Count != 3 || fix.Merged != 2 {
		t.Errorf("fix counts = %+v", fix)
	}
	if fix.MergeRate != 66.7 {
		t.Errorf("fix merge rate = %v, want 66.7", fix.MergeRate)
	}
	if fix.MedianHours != 15 {
		t.Errorf("fix median = %v, want 15", fix.MedianHours)
	}

	docs := rows[0]
	if docs.Merged != 0 || docs.MergeRate != 0 || docs.MedianHours != 0 {
		t.Errorf("closed-only category should zero out: %+v", docs)
	}
}
