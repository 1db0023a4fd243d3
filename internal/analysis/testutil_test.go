package analysis

import (
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// baseTime anchors every fixture so tests never read the wall clock.
var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func hoursAfter(h float64) time.Time {
	return baseTime.Add(time.Duration(h * float64(time.Hour)))
}

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// mergedPR builds a merged summary with the given latency in hours.
func mergedPR(number int, author, mergedBy string, mergeHours float64) models.PullRequestSummary {
	mergedAt := hoursAfter(mergeHours)
	return models.PullRequestSummary{
		Number:           number,
		Title:            "change something",
		Author:           author,
		State:            models.StateMerged,
		CreatedAt:        baseTime,
		MergedAt:         timePtr(mergedAt),
		MergedBy:         mergedBy,
		TimeToMergeHours: floatPtr(mergeHours),
		AgeHours:         mergeHours,
	}
}

func closedPR(number int, author string, openForHours float64) models.PullRequestSummary {
	closedAt := hoursAfter(openForHours)
	return models.PullRequestSummary{
		Number:    number,
		Title:     "change something",
		Author:    author,
		State:     models.StateClosed,
		CreatedAt: baseTime,
		ClosedAt:  timePtr(closedAt),
		AgeHours:  openForHours,
	}
}

func openPR(number int, author string, ageHours float64) models.PullRequestSummary {
	return models.PullRequestSummary{
		Number:    number,
		Title:     "change something",
		Author:    author,
		State:     models.StateOpen,
		CreatedAt: baseTime,
		AgeHours:  ageHours,
	}
}
