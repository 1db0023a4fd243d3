package analysis

import (
	"sort"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// DefaultStaleReviewDays is how long an open PR may wait with zero
// reviews before it counts as stale.
const DefaultStaleReviewDays = 7

// ComputeReviewAnalysis composes the review-bottleneck report from
// merged and open summaries that carry review events: per-reviewer
// turnaround and verdict tallies, coverage over merged PRs, reviewer
// concentration, first-review and review-to-merge latencies, and the
// unreviewed/stale open PR flags. Open-PR ages were fixed at
// normalization time, so no as-of instant is needed here.
func ComputeReviewAnalysis(merged, open []models.PullRequestSummary, repo string, staleDays int) models.ReviewReport {
	report := models.ReviewReport{Repo: repo}

	type reviewerAcc struct {
		reviews          int
		turnaroundSum    float64
		turnaroundCount  int
		approvals        int
		changesRequested int
		comments         int
	}
	byReviewer := make(map[string]*reviewerAcc)
	reviewer := func(login string) *reviewerAcc {
		a, ok := byReviewer[login]
		if !ok {
			a = &reviewerAcc{}
			byReviewer[login] = a
		}
		return a
	}

	var firstReviewHours []float64
	var reviewToMergeHours []float64

	tally := func(pr models.PullRequestSummary) {
		// Turnaround is measured on each reviewer's first review of the PR.
		firstByReviewer := make(map[string]time.Time)
		for _, r := range pr.Reviews {
			a := reviewer(r.Author)
			a.reviews++
			switch r.State {
			case "APPROVED":
				a.approvals++
			case "CHANGES_REQUESTED":
				a.changesRequested++
			default:
				a.comments++
			}
			if prev, ok := firstByReviewer[r.Author]; !ok || r.SubmittedAt.Before(prev) {
				firstByReviewer[r.Author] = r.SubmittedAt
			}
		}
		for login, first := range firstByReviewer {
			if hours := first.Sub(pr.CreatedAt).Hours(); hours >= 0 {
				a := byReviewer[login]
				a.turnaroundSum += hours
				a.turnaroundCount++
			}
		}
	}

	for _, pr := range merged {
		tally(pr)
		if pr.ReviewCount > 0 {
			report.TotalReviewedPRs++
		} else {
			report.TotalUnreviewedMerged++
		}
		if len(pr.Reviews) > 0 {
			first := pr.Reviews[0].SubmittedAt
			for _, r := range pr.Reviews[1:] {
				if r.SubmittedAt.Before(first) {
					first = r.SubmittedAt
				}
			}
			if hours := first.Sub(pr.CreatedAt).Hours(); hours >= 0 {
				firstReviewHours = append(firstReviewHours, hours)
			}
			if pr.MergedAt != nil {
				if hours := pr.MergedAt.Sub(first).Hours(); hours >= 0 {
					reviewToMergeHours = append(reviewToMergeHours, hours)
				}
			}
		}
	}
	for _, pr := range open {
		tally(pr)
	}

	if totalMerged := len(merged); totalMerged > 0 {
		report.ReviewCoverage = float64(report.TotalReviewedPRs) / float64(totalMerged) * 100
	}
	report.MedianFirstReviewHours = medianOrNil(firstReviewHours)
	report.MedianReviewToMergeHours = medianOrNil(reviewToMergeHours)

	for login, a := range byReviewer {
		avg := 0.0
		if a.turnaroundCount > 0 {
			avg = a.turnaroundSum / float64(a.turnaroundCount)
		}
		report.ReviewerStats = append(report.ReviewerStats, models.ReviewerStats{
			Login:                 login,
			ReviewCount:           a.reviews,
			AvgTurnaroundHours:    avg,
			ApprovalCount:         a.approvals,
			ChangesRequestedCount: a.changesRequested,
			CommentOnlyCount:      a.comments,
		})
	}
	sort.Slice(report.ReviewerStats, func(i, j int) bool {
		if report.ReviewerStats[i].ReviewCount != report.ReviewerStats[j].ReviewCount {
			return report.ReviewerStats[i].ReviewCount > report.ReviewerStats[j].ReviewCount
		}
		return report.ReviewerStats[i].Login < report.ReviewerStats[j].Login
	})

	volumes := make([]models.CommitterCount, len(report.ReviewerStats))
	for i, r := range report.ReviewerStats {
		volumes[i] = models.CommitterCount{Login: r.Login, Commits: r.ReviewCount}
	}
	report.ReviewerConcentration = coveringSetSize(volumes)

	staleCutoff := float64(staleDays) * 24
	for _, pr := range open {
		if pr.ReviewCount != 0 {
			continue
		}
		report.UnreviewedOpenPRs = append(report.UnreviewedOpenPRs, pr)
		if pr.AgeHours > staleCutoff {
			report.StaleReviewPRs = append(report.StaleReviewPRs, pr)
		}
	}

	return report
}

func medianOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := median(values)
	return &m
}
