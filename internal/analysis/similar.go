package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mikematt33/ghscope/pkg/models"
)

// DefaultSimilarCount is how many nearest neighbors FindSimilarPRs
// returns by default.
const DefaultSimilarCount = 3

var tokenPattern = regexp.MustCompile(`\w+`)

func titleTokens(title string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range tokenPattern.FindAllString(strings.ToLower(title), -1) {
		tokens[t] = true
	}
	return tokens
}

// FindSimilarPRs ranks candidates by Jaccard similarity of title tokens,
// plus 0.2 for a matching category and 0.1 for a matching size bucket.
// Ties keep the original candidate order. No stemming, no stopwords.
func FindSimilarPRs(target models.PullRequestSummary, candidates []models.PullRequestSummary, topN int) []models.PullRequestSummary {
	targetTokens := titleTokens(target.Title)

	type scored struct {
		score float64
		pr    models.PullRequestSummary
	}
	ranked := make([]scored, 0, len(candidates))
	for _, pr := range candidates {
		prTokens := titleTokens(pr.Title)
		jaccard := 0.0
		if len(targetTokens) > 0 && len(prTokens) > 0 {
			var inter int
			for t := range targetTokens {
				if prTokens[t] {
					inter++
				}
			}
			union := len(targetTokens) + len(prTokens) - inter
			jaccard = float64(inter) / float64(union)
		}
		bonus := 0.0
		if pr.Category == target.Category {
			bonus += 0.2
		}
		if pr.Size == target.Size {
			bonus += 0.1
		}
		ranked = append(ranked, scored{score: jaccard + bonus, pr: pr})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	out := make([]models.PullRequestSummary, 0, topN)
	for _, s := range ranked[:topN] {
		out = append(out, s.pr)
	}
	return out
}
