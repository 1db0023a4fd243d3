package analysis

import (
	"sort"

	"github.com/mikematt33/ghscope/pkg/models"
)

// median of a non-empty slice; for even n the mean of the middle two.
func median(values []float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// quartiles returns the 25th and 75th percentiles using the
// exclusive-method linear interpolation (n+1 positions, four
// equal-probability regions). Callers must pass len >= 2.
func quartiles(values []float64) (p25, p75 float64) {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	m := n + 1
	cut := func(i int) float64 {
		j := i * m / 4
		if j < 1 {
			j = 1
		}
		if j > n-1 {
			j = n - 1
		}
		delta := float64(i*m - j*4)
		return (s[j-1]*(4-delta) + s[j]*delta) / 4
	}
	return cut(1), cut(3)
}

// ComputeMergeTimes returns (median, p25, p75) merge latency in hours
// over PRs with a defined time-to-merge. Degenerate inputs never error:
// empty yields zeros, a single value repeats, and fewer than four values
// fall back to (median, min, max) since quartile interpolation needs at
// least four points to mean anything.
func ComputeMergeTimes(prs []models.PullRequestSummary) (med, p25, p75 float64) {
	var times []float64
	for _, pr := range prs {
		if pr.TimeToMergeHours != nil {
			times = append(times, *pr.TimeToMergeHours)
		}
	}
	switch {
	case len(times) == 0:
		return 0, 0, 0
	case len(times) == 1:
		return times[0], times[0], times[0]
	}
	med = median(times)
	if len(times) < 4 {
		lo, hi := times[0], times[0]
		for _, t := range times[1:] {
			if t < lo {
				lo = t
			}
			if t > hi {
				hi = t
			}
		}
		return med, lo, hi
	}
	p25, p75 = quartiles(times)
	return med, p25, p75
}

// mergeTimeMedian is the nil-able median over merged PRs, shared by the
// contributor and review analyzers.
func mergeTimeMedian(prs []models.PullRequestSummary) *float64 {
	var times []float64
	for _, pr := range prs {
		if pr.TimeToMergeHours != nil {
			times = append(times, *pr.TimeToMergeHours)
		}
	}
	if len(times) == 0 {
		return nil
	}
	m := median(times)
	return &m
}
