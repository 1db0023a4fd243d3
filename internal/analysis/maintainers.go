package analysis

import (
	"math"
	"sort"

	"github.com/mikematt33/ghscope/pkg/models"
)

// ComputeMaintainerStats rolls merged PRs up by merger: merge count and
// arithmetic-mean merge time (0 when no PR has a defined latency),
// sorted descending by count. Tie order among equal counts is not a
// contract.
func ComputeMaintainerStats(prs []models.PullRequestSummary) []models.MaintainerStats {
	byMerger := make(map[string][]models.PullRequestSummary)
	var order []string
	for _, pr := range prs {
		if pr.MergedBy == "" || pr.State != models.StateMerged {
			continue
		}
		if _, seen := byMerger[pr.MergedBy]; !seen {
			order = append(order, pr.MergedBy)
		}
		byMerger[pr.MergedBy] = append(byMerger[pr.MergedBy], pr)
	}

	stats := make([]models.MaintainerStats, 0, len(order))
	for _, login := range order {
		mergedPRs := byMerger[login]
		var sum float64
		var n int
		for _, pr := range mergedPRs {
			if pr.TimeToMergeHours != nil {
				sum += *pr.TimeToMergeHours
				n++
			}
		}
		avg := 0.0
		if n > 0 {
			avg = sum / float64(n)
		}
		stats = append(stats, models.MaintainerStats{
			Login:             login,
			MergeCount:        len(mergedPRs),
			AvgMergeTimeHours: avg,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MergeCount > stats[j].MergeCount
	})
	return stats
}

// CategoryBreakdown rolls merged and closed PRs up by category: total
// count, merge rate as a percentage, and median merge latency. Rows come
// back sorted by category name for deterministic output.
func CategoryBreakdown(merged, closed []models.PullRequestSummary) []models.CategoryStats {
	mergedByCat := make(map[string][]models.PullRequestSummary)
	closedByCat := make(map[string]int)

	for _, pr := range merged {
		mergedByCat[pr.Category] = append(mergedByCat[pr.Category], pr)
	}
	for _, pr := range closed {
		closedByCat[pr.Category]++
	}

	seen := make(map[string]bool)
	var names []string
	for cat := range mergedByCat {
		if !seen[cat] {
			seen[cat] = true
			names = append(names, cat)
		}
	}
	for cat := range closedByCat {
		if !seen[cat] {
			seen[cat] = true
			names = append(names, cat)
		}
	}
	sort.Strings(names)

	rows := make([]models.CategoryStats, 0, len(names))
	for _, cat := range names {
		mList := mergedByCat[cat]
		total := len(mList) + closedByCat[cat]
		rate := 0.0
		if total > 0 {
			rate = float64(len(mList)) / float64(total) * 100
		}
		med := 0.0
		if m := mergeTimeMedian(mList); m != nil {
			med = *m
		}
		rows = append(rows, models.CategoryStats{
			Category:    cat,
			Count:       total,
			Merged:      len(mList),
			MergeRate:   round1(rate),
			MedianHours: round1(med),
		})
	}
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
