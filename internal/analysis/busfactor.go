package analysis

import (
	"sort"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// coveringSetSize returns how many of the top entries (sorted descending
// by count) are needed before their cumulative count reaches half the
// total. Shared between bus factor (merge counts) and reviewer
// concentration (review counts).
func coveringSetSize(counts []models.CommitterCount) int {
	total := 0
	for _, c := range counts {
		total += c.Commits
	}
	if total == 0 {
		return 0
	}
	cumulative := 0
	size := 0
	for _, c := range counts {
		cumulative += c.Commits
		size++
		if float64(cumulative)/float64(total) >= 0.5 {
			break
		}
	}
	return size
}

// sortedCounts turns a counter map into a descending count list with a
// deterministic tie-break on login.
func sortedCounts(counter map[string]int) []models.CommitterCount {
	out := make([]models.CommitterCount, 0, len(counter))
	for login, n := range counter {
		out = append(out, models.CommitterCount{Login: login, Commits: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Login < out[j].Login
	})
	return out
}

// ComputeBusFactor counts merges per merger inside the lookback window
// ending at asOf and returns the minimal number of people covering at
// least half of them, plus the top ten mergers. No qualifying merges
// yields (0, empty) rather than an error.
func ComputeBusFactor(prs []models.PullRequestSummary, days int, asOf time.Time) (int, []models.CommitterCount) {
	cutoff := asOf.AddDate(0, 0, -days)

	counter := make(map[string]int)
	for _, pr := range prs {
		if pr.MergedAt != nil && pr.MergedBy != "" && pr.MergedAt.After(cutoff) {
			counter[pr.MergedBy]++
		}
	}
	if len(counter) == 0 {
		return 0, nil
	}

	counts := sortedCounts(counter)
	busFactor := coveringSetSize(counts)
	if len(counts) > 10 {
		counts = counts[:10]
	}
	return busFactor, counts
}
