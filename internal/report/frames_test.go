package report

import (
	"testing"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

var frameTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fptr(f float64) *float64 { return &f }

func samplePR(number int) models.PullRequestSummary {
	return models.PullRequestSummary{
		Number:    number,
		Title:     "fix: flaky test",
		Author:    "alice",
		State:     models.StateOpen,
		Category:  "fix",
		Size:      models.SizeS,
		CreatedAt: frameTime,
		AgeHours:  12,
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, "null"},
		{fptr(0.5), "30m"},
		{fptr(0.99), "59m"},
		{fptr(1), "1.0h"},
		{fptr(18.25), "18.2h"},
		{fptr(24), "1.0d"},
		{fptr(60), "2.5d"},
	}
	for _, tc := range cases {
		if got := FormatHours(tc.in); got != tc.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTriageFramesShape(t *testing.T) {
	r := &models.TriageReport{
		Repo:             "o/r",
		TotalMerged:      10,
		TotalClosed:      2,
		TotalOpen:        3,
		MergeRate:        83.3,
		MedianMergeHours: 20,
		MaintainerStats: []models.MaintainerStats{
			{Login: "carol", MergeCount: 7, AvgMergeTimeHours: 18.5},
		},
		BatchClusters: []models.BatchCluster{{
			Merger:    "carol",
			Count:     3,
			PRs:       []int{4, 5, 6},
			StartTime: frameTime,
			EndTime:   frameTime.Add(20 * time.Minute),
		}},
		CategoryBreakdown: []models.CategoryStats{
			{Category: "fix", Count: 5, Merged: 4, MergeRate: 80, MedianHours: 12},
		},
	}

	tables := TriageFrames(r)
	if len(tables) != 4 {
		t.Fatalf("tables = %d, want 4", len(tables))
	}
	if tables[0].Name != "summary" || len(tables[0].Rows) != 1 {
		t.Fatalf("summary = %+v", tables[0])
	}
	if got := tables[0].Rows[0][4]; got != "83.3" {
		t.Errorf("merge_rate cell = %q", got)
	}
	batch := tables[2]
	if batch.Name != "batch_merges" {
		t.Fatalf("batch table = %q", batch.Name)
	}
	if got := batch.Rows[0][4]; got != "#4 #5 #6" {
		t.Errorf("prs cell = %q", got)
	}
}

func TestTriageFramesOmitsEmptySections(t *testing.T) {
	tables := TriageFrames(&models.TriageReport{Repo: "o/r"})
	if len(tables) != 1 || tables[0].Name != "summary" {
		t.Errorf("tables = %+v, want summary only", tables)
	}
}

func TestAssessFrames(t *testing.T) {
	r := &models.AssessmentReport{Assessments: []models.PRAssessment{{
		PR:          samplePR(12),
		Probability: 61,
		Factors:     []string{"merge rate 80% (+9)", "size S (+5)"},
	}}}
	tables := AssessFrames(r)
	if len(tables) != 1 {
		t.Fatalf("tables = %d", len(tables))
	}
	row := tables[0].Rows[0]
	if row[0] != "12" || row[3] != "61" {
		t.Errorf("row = %v", row)
	}
	if row[8] != "merge rate 80% (+9); size S (+5)" {
		t.Errorf("factors cell = %q", row[8])
	}

	if got := AssessFrames(&models.AssessmentReport{}); got != nil {
		t.Errorf("empty report should yield no tables, got %v", got)
	}
}

func TestContribFramesNullableMedians(t *testing.T) {
	r := &models.ContributorReport{Repo: "o/r", FirstTimerMedianMergeHours: fptr(6.25)}
	tables := ContribFrames(r)
	row := tables[0].Rows[0]
	if row[6] != "6.2" {
		t.Errorf("first-timer median cell = %q", row[6])
	}
	if row[7] != "null" {
		t.Errorf("repeat median cell = %q, want null", row[7])
	}
}

func TestContribFramesSpamTable(t *testing.T) {
	r := &models.ContributorReport{
		Repo:    "o/r",
		SpamPRs: []models.PullRequestSummary{samplePR(99)},
	}
	tables := ContribFrames(r)
	last := tables[len(tables)-1]
	if last.Name != "spam_prs" || len(last.Columns) != 16 {
		t.Fatalf("spam table = %+v", last)
	}
	if last.Rows[0][0] != "99" || last.Rows[0][11] != "" {
		t.Errorf("spam row = %v", last.Rows[0])
	}
}

func TestReviewFrames(t *testing.T) {
	r := &models.ReviewReport{
		Repo:                   "o/r",
		TotalReviewedPRs:       8,
		ReviewCoverage:         80,
		MedianFirstReviewHours: fptr(3.456),
		ReviewerStats: []models.ReviewerStats{
			{Login: "rev", ReviewCount: 5, AvgTurnaroundHours: 2.5, ApprovalCount: 4},
		},
		UnreviewedOpenPRs: []models.PullRequestSummary{samplePR(7)},
	}
	tables := ReviewFrames(r)
	if len(tables) != 3 {
		t.Fatalf("tables = %d, want 3", len(tables))
	}
	summary := tables[0].Rows[0]
	if summary[4] != "3.46" {
		t.Errorf("first review median cell = %q", summary[4])
	}
	if summary[5] != "null" {
		t.Errorf("review-to-merge cell = %q", summary[5])
	}
	if tables[1].Rows[0][0] != "rev" || tables[2].Name != "unreviewed_open_prs" {
		t.Errorf("tables = %v, %v", tables[1], tables[2])
	}
}

func TestHealthFrames(t *testing.T) {
	r := &models.HealthReport{
		Repo:                  "o/r",
		CommitsPerWeek:        4.25,
		ActiveContributors30d: 3,
		BusFactor:             2,
		ReleaseCadenceDays:    fptr(21.4),
		LastRelease:           "v1.2.0",
		TopCommitters:         []models.CommitterCount{{Login: "alice", Commits: 12}},
		WeeklyCommits:         []models.WeekCount{{Week: "05/20", Commits: 6}},
	}
	tables := HealthFrames(r)
	if len(tables) != 3 {
		t.Fatalf("tables = %d", len(tables))
	}
	summary := tables[0].Rows[0]
	if summary[1] != "4.2" || summary[4] != "21" || summary[5] != "v1.2.0" {
		t.Errorf("summary = %v", summary)
	}
	if summary[6] != "null" {
		t.Errorf("issue response cell = %q", summary[6])
	}
}

func TestHealthFramesNilCadence(t *testing.T) {
	tables := HealthFrames(&models.HealthReport{Repo: "o/r"})
	if got := tables[0].Rows[0][4]; got != "null" {
		t.Errorf("cadence cell = %q", got)
	}
}
