package analysis

import (
	"fmt"

	"github.com/mikematt33/ghscope/pkg/models"
)

var sizeBonus = map[string]float64{
	models.SizeXS: 8,
	models.SizeS:  5,
	models.SizeM:  0,
	models.SizeL:  -5,
	models.SizeXL: -10,
}

// ComputeMergeProbability scores an open PR's likelihood of merging
// against the repository's merged and closed history. The score is a
// pure additive sum off a base of 50, truncated and clamped to [0,100].
// The factor strings echo the exact values each adjustment used, in
// evaluation order, so the derivation can be audited from the report.
func ComputeMergeProbability(target models.PullRequestSummary, merged, closed []models.PullRequestSummary) (int, []string) {
	var factors []string
	score := 50.0

	// 1. Overall historical merge rate.
	total := len(merged) + len(closed)
	if total > 0 {
		baseRate := float64(len(merged)) / float64(total)
		score += (baseRate - 0.5) * 30
		factors = append(factors, fmt.Sprintf("Base merge rate: %.0f%%", baseRate*100))
	}

	// 2. Category-specific rate, only with enough history to mean anything.
	var catMerged, catClosed int
	for _, pr := range merged {
		if pr.Category == target.Category {
			catMerged++
		}
	}
	for _, pr := range closed {
		if pr.Category == target.Category {
			catClosed++
		}
	}
	if catTotal := catMerged + catClosed; catTotal >= 3 {
		catRate := float64(catMerged) / float64(catTotal)
		score += (catRate - 0.5) * 15
		factors = append(factors, fmt.Sprintf("%s merge rate: %.0f%%", target.Category, catRate*100))
	}

	// 3. Author history. Both sides apply independently.
	var authorMerged, authorClosed int
	for _, pr := range merged {
		if pr.Author == target.Author {
			authorMerged++
		}
	}
	for _, pr := range closed {
		if pr.Author == target.Author {
			authorClosed++
		}
	}
	if authorMerged > 0 {
		factors = append(factors, fmt.Sprintf("Author has %d merged PR(s)", authorMerged))
		score += minf(float64(authorMerged)*3, 15)
	}
	if authorClosed > 0 {
		score -= minf(float64(authorClosed)*2, 10)
	}

	// 4. Size: smaller PRs merge more often.
	score += sizeBonus[target.Size]
	factors = append(factors, fmt.Sprintf("Size: %s (%d+/%d-)", target.Size, target.Additions, target.Deletions))

	// 5. Reviews.
	if target.ReviewCount > 0 {
		score += 10
		factors = append(factors, fmt.Sprintf("Has %d review(s)", target.ReviewCount))
	} else {
		score -= 5
		factors = append(factors, "No reviews yet")
	}

	// 6. Age. 7-30 days gets neither an adjustment nor a note.
	ageDays := target.AgeHours / 24
	switch {
	case ageDays > 60:
		score -= 15
		factors = append(factors, fmt.Sprintf("Open for %.0f days (stale)", ageDays))
	case ageDays > 30:
		score -= 8
		factors = append(factors, fmt.Sprintf("Open for %.0f days", ageDays))
	case ageDays < 7:
		factors = append(factors, fmt.Sprintf("Open for %.1f days (recent)", ageDays))
	}

	// Truncation toward zero, then clamp.
	final := int(score)
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return final, factors
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
