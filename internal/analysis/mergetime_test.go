package analysis

import (
	"math"
	"testing"

	"github.com/mikematt33/ghscope/pkg/models"
)

func prsWithTimes(times ...float64) []models.PullRequestSummary {
	prs := make([]models.PullRequestSummary, len(times))
	for i, h := range times {
		prs[i] = mergedPR(i+1, "alice", "bob", h)
	}
	return prs
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeMergeTimesEmpty(t *testing.T) {
	med, p25, p75 := ComputeMergeTimes(nil)
	if med != 0 || p25 != 0 || p75 != 0 {
		t.Errorf("expected zeros for empty input, got (%v, %v, %v)", med, p25, p75)
	}
}

func TestComputeMergeTimesSingle(t *testing.T) {
	med, p25, p75 := ComputeMergeTimes(prsWithTimes(12.5))
	if med != 12.5 || p25 != 12.5 || p75 != 12.5 {
		t.Errorf("single value should repeat, got (%v, %v, %v)", med, p25, p75)
	}
}

func TestComputeMergeTimesSmallFallback(t *testing.T) {
	// Fewer than four samples fall back to (median, min, max).
	med, p25, p75 := ComputeMergeTimes(prsWithTimes(30, 10, 20))
	if med != 20 || p25 != 10 || p75 != 30 {
		t.Errorf("got (%v, %v, %v), want (20, 10, 30)", med, p25, p75)
	}
}

func TestComputeMergeTimesQuartiles(t *testing.T) {
	tests := []struct {
		name          string
		times         []float64
		med, p25, p75 float64
	}{
		{"four values", []float64{1, 2, 3, 4}, 2.5, 1.25, 3.75},
		{"eight values", []float64{8, 7, 6, 5, 4, 3, 2, 1}, 4.5, 2.25, 6.75},
		{"odd count", []float64{1, 2, 3, 4, 5}, 3, 1.5, 4.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			med, p25, p75 := ComputeMergeTimes(prsWithTimes(tt.times...))
			if !almostEqual(med, tt.med) || !almostEqual(p25, tt.p25) || !almostEqual(p75, tt.p75) {
				t.Errorf("got (%v, %v, %v), want (%v, %v, %v)",
					med, p25, p75, tt.med, tt.p25, tt.p75)
			}
		})
	}
}

func TestComputeMergeTimesMedianBetweenQuartiles(t *testing.T) {
	times := []float64{0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89}
	med, p25, p75 := ComputeMergeTimes(prsWithTimes(times...))
	if p25 > med || med > p75 {
		t.Errorf("ordering violated: p25=%v med=%v p75=%v", p25, med, p75)
	}
}

func TestComputeMergeTimesSkipsMissingLatency(t *testing.T) {
	prs := prsWithTimes(10, 20, 30)
	prs = append(prs, models.PullRequestSummary{Number: 99, State: models.StateMerged})
	med, _, _ := ComputeMergeTimes(prs)
	if med != 20 {
		t.Errorf("nil latencies should be ignored, got median %v", med)
	}
}
