// Package report converts report aggregates into named tables and
// renders them as text, markdown, CSV, or JSON.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// Table is a named grid of pre-formatted cells. The "summary" table of
// each report is single-row and gets unpivoted by the text renderer.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func f1(v float64) string { return fmt.Sprintf("%.1f", v) }

func optF(v *float64, decimals int) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func optTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// FormatHours renders an hour count at human granularity: minutes under
// an hour, hours under a day, days beyond.
func FormatHours(h *float64) string {
	if h == nil {
		return "null"
	}
	switch {
	case *h < 1:
		return fmt.Sprintf("%.0fm", *h*60)
	case *h < 24:
		return fmt.Sprintf("%.1fh", *h)
	default:
		return fmt.Sprintf("%.1fd", *h/24)
	}
}

var prColumns = []string{
	"number", "title", "author", "state", "category", "size",
	"additions", "deletions", "changed_files", "review_count",
	"created_at", "merged_at", "closed_at", "merged_by",
	"age_hours", "time_to_merge_hours",
}

func prRow(pr models.PullRequestSummary) []string {
	ttm := "null"
	if pr.TimeToMergeHours != nil {
		ttm = f1(*pr.TimeToMergeHours)
	}
	return []string{
		fmt.Sprintf("%d", pr.Number),
		pr.Title,
		pr.Author,
		pr.State,
		pr.Category,
		pr.Size,
		fmt.Sprintf("%d", pr.Additions),
		fmt.Sprintf("%d", pr.Deletions),
		fmt.Sprintf("%d", pr.ChangedFiles),
		fmt.Sprintf("%d", pr.ReviewCount),
		pr.CreatedAt.Format(time.RFC3339),
		optTime(pr.MergedAt),
		optTime(pr.ClosedAt),
		pr.MergedBy,
		f1(pr.AgeHours),
		ttm,
	}
}

func prTable(name string, prs []models.PullRequestSummary) *Table {
	if len(prs) == 0 {
		return nil
	}
	t := &Table{Name: name, Columns: prColumns}
	for _, pr := range prs {
		t.Rows = append(t.Rows, prRow(pr))
	}
	return t
}

func appendTable(tables []Table, t *Table) []Table {
	if t == nil {
		return tables
	}
	return append(tables, *t)
}

// TriageFrames flattens a triage report into summary, maintainer,
// batch-merge, and category tables.
func TriageFrames(r *models.TriageReport) []Table {
	tables := []Table{{
		Name: "summary",
		Columns: []string{
			"repo", "total_merged", "total_closed", "total_open",
			"merge_rate", "median_merge_hours", "p25_merge_hours", "p75_merge_hours",
		},
		Rows: [][]string{{
			r.Repo,
			fmt.Sprintf("%d", r.TotalMerged),
			fmt.Sprintf("%d", r.TotalClosed),
			fmt.Sprintf("%d", r.TotalOpen),
			f1(r.MergeRate),
			f1(r.MedianMergeHours),
			f1(r.P25MergeHours),
			f1(r.P75MergeHours),
		}},
	}}

	if len(r.MaintainerStats) > 0 {
		t := Table{Name: "maintainers", Columns: []string{"login", "merge_count", "avg_merge_time_hours"}}
		for _, m := range r.MaintainerStats {
			t.Rows = append(t.Rows, []string{m.Login, fmt.Sprintf("%d", m.MergeCount), f1(m.AvgMergeTimeHours)})
		}
		tables = append(tables, t)
	}

	if len(r.BatchClusters) > 0 {
		t := Table{Name: "batch_merges", Columns: []string{"merger", "count", "start_time", "end_time", "prs"}}
		for _, c := range r.BatchClusters {
			nums := make([]string, len(c.PRs))
			for i, n := range c.PRs {
				nums[i] = fmt.Sprintf("#%d", n)
			}
			t.Rows = append(t.Rows, []string{
				c.Merger,
				fmt.Sprintf("%d", c.Count),
				c.StartTime.Format(time.RFC3339),
				c.EndTime.Format(time.RFC3339),
				strings.Join(nums, " "),
			})
		}
		tables = append(tables, t)
	}

	if len(r.CategoryBreakdown) > 0 {
		t := Table{Name: "categories", Columns: []string{"category", "count", "merged", "merge_rate", "median_hours"}}
		for _, c := range r.CategoryBreakdown {
			t.Rows = append(t.Rows, []string{
				c.Category,
				fmt.Sprintf("%d", c.Count),
				fmt.Sprintf("%d", c.Merged),
				f1(c.MergeRate),
				f1(c.MedianHours),
			})
		}
		tables = append(tables, t)
	}

	return tables
}

// AssessFrames flattens an assessment report into one ranked table.
func AssessFrames(r *models.AssessmentReport) []Table {
	if len(r.Assessments) == 0 {
		return nil
	}
	t := Table{
		Name: "assessments",
		Columns: []string{
			"pr_number", "pr_title", "author", "probability",
			"size", "category", "review_count", "age_hours", "factors",
		},
	}
	for _, a := range r.Assessments {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", a.PR.Number),
			a.PR.Title,
			a.PR.Author,
			fmt.Sprintf("%d", a.Probability),
			a.PR.Size,
			a.PR.Category,
			fmt.Sprintf("%d", a.PR.ReviewCount),
			f1(a.PR.AgeHours),
			strings.Join(a.Factors, "; "),
		})
	}
	return []Table{t}
}

// ContribFrames flattens a contributor report into summary, contributor,
// and spam tables.
func ContribFrames(r *models.ContributorReport) []Table {
	tables := []Table{{
		Name: "summary",
		Columns: []string{
			"repo", "total_contributors", "repeat_contributors", "one_time_contributors",
			"first_timers", "first_timer_merge_rate", "first_timer_median_merge_hours",
			"repeat_median_merge_hours", "retained_first_timers", "retention_rate",
		},
		Rows: [][]string{{
			r.Repo,
			fmt.Sprintf("%d", r.TotalContributors),
			fmt.Sprintf("%d", r.RepeatContributors),
			fmt.Sprintf("%d", r.OneTimeContributors),
			fmt.Sprintf("%d", r.FirstTimers),
			f1(r.FirstTimerMergeRate),
			optF(r.FirstTimerMedianMergeHours, 1),
			optF(r.RepeatMedianMergeHours, 1),
			fmt.Sprintf("%d", r.RetainedFirstTimers),
			f1(r.RetentionRate),
		}},
	}}

	if len(r.TopContributors) > 0 {
		t := Table{Name: "contributors", Columns: []string{
			"login", "merged_count", "closed_count", "open_count", "first_contribution", "merge_rate",
		}}
		for _, c := range r.TopContributors {
			t.Rows = append(t.Rows, []string{
				c.Login,
				fmt.Sprintf("%d", c.MergedCount),
				fmt.Sprintf("%d", c.ClosedCount),
				fmt.Sprintf("%d", c.OpenCount),
				c.FirstContribution.Format(time.RFC3339),
				f1(c.MergeRate),
			})
		}
		tables = append(tables, t)
	}

	return appendTable(tables, prTable("spam_prs", r.SpamPRs))
}

// ReviewFrames flattens a review report into summary, reviewer,
// unreviewed, and stale tables.
func ReviewFrames(r *models.ReviewReport) []Table {
	tables := []Table{{
		Name: "summary",
		Columns: []string{
			"repo", "total_reviewed_prs", "total_unreviewed_merged", "review_coverage",
			"median_first_review_hours", "median_review_to_merge_hours", "reviewer_concentration",
		},
		Rows: [][]string{{
			r.Repo,
			fmt.Sprintf("%d", r.TotalReviewedPRs),
			fmt.Sprintf("%d", r.TotalUnreviewedMerged),
			f1(r.ReviewCoverage),
			optF(r.MedianFirstReviewHours, 2),
			optF(r.MedianReviewToMergeHours, 2),
			fmt.Sprintf("%d", r.ReviewerConcentration),
		}},
	}}

	if len(r.ReviewerStats) > 0 {
		t := Table{Name: "reviewers", Columns: []string{
			"login", "review_count", "avg_turnaround_hours",
			"approval_count", "changes_requested_count", "comment_only_count",
		}}
		for _, s := range r.ReviewerStats {
			t.Rows = append(t.Rows, []string{
				s.Login,
				fmt.Sprintf("%d", s.ReviewCount),
				f1(s.AvgTurnaroundHours),
				fmt.Sprintf("%d", s.ApprovalCount),
				fmt.Sprintf("%d", s.ChangesRequestedCount),
				fmt.Sprintf("%d", s.CommentOnlyCount),
			})
		}
		tables = append(tables, t)
	}

	tables = appendTable(tables, prTable("unreviewed_open_prs", r.UnreviewedOpenPRs))
	return appendTable(tables, prTable("stale_prs", r.StaleReviewPRs))
}

// HealthFrames flattens a health report into summary, top-committer, and
// weekly-commit tables.
func HealthFrames(r *models.HealthReport) []Table {
	cadence := "null"
	if r.ReleaseCadenceDays != nil {
		cadence = fmt.Sprintf("%.0f", *r.ReleaseCadenceDays)
	}
	tables := []Table{{
		Name: "summary",
		Columns: []string{
			"repo", "commits_per_week", "active_contributors_30d", "bus_factor",
			"release_cadence_days", "last_release", "issue_response_time_hours",
		},
		Rows: [][]string{{
			r.Repo,
			f1(r.CommitsPerWeek),
			fmt.Sprintf("%d", r.ActiveContributors30d),
			fmt.Sprintf("%d", r.BusFactor),
			cadence,
			r.LastRelease,
			optF(r.IssueResponseTimeHours, 1),
		}},
	}}

	if len(r.TopCommitters) > 0 {
		t := Table{Name: "top_committers", Columns: []string{"login", "commits"}}
		for _, c := range r.TopCommitters {
			t.Rows = append(t.Rows, []string{c.Login, fmt.Sprintf("%d", c.Commits)})
		}
		tables = append(tables, t)
	}

	if len(r.WeeklyCommits) > 0 {
		t := Table{Name: "weekly_commits", Columns: []string{"week", "commits"}}
		for _, wk := range r.WeeklyCommits {
			t.Rows = append(t.Rows, []string{wk.Week, fmt.Sprintf("%d", wk.Commits)})
		}
		tables = append(tables, t)
	}

	return tables
}
