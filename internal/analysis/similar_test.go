package analysis

import (
	"testing"

	"github.com/mikematt33/ghscope/pkg/models"
)

func titled(n int, title, category, size string) models.PullRequestSummary {
	return models.PullRequestSummary{Number: n, Title: title, Category: category, Size: size}
}

func TestFindSimilarPRsRanksByOverlap(t *testing.T) {
	tgt := titled(0, "fix panic in parser", "fix", models.SizeS)
	candidates := []models.PullRequestSummary{
		titled(1, "update readme", "docs", models.SizeXS),
		titled(2, "fix panic in lexer", "fix", models.SizeS),
		titled(3, "fix typo", "fix", models.SizeXS),
	}

	got := FindSimilarPRs(tgt, candidates, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Number != 2 {
		t.Errorf("best match = #%d, want #2", got[0].Number)
	}
	if got[1].Number != 3 {
		t.Errorf("second match = #%d, want #3", got[1].Number)
	}
}

func TestFindSimilarPRsEmptyCandidates(t *testing.T) {
	got := FindSimilarPRs(titled(0, "anything", "other", models.SizeM), nil, 3)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFindSimilarPRsTopNClamped(t *testing.T) {
	tgt := titled(0, "a b c", "other", models.SizeM)
	candidates := []models.PullRequestSummary{titled(1, "a", "other", models.SizeM)}
	if got := FindSimilarPRs(tgt, candidates, 5); len(got) != 1 {
		t.Errorf("topN beyond candidates must clamp, got %d", len(got))
	}
}

func TestFindSimilarPRsStableTies(t *testing.T) {
	// All candidates score identically; input order must survive.
	tgt := titled(0, "zzz", "fix", models.SizeM)
	candidates := []models.PullRequestSummary{
		titled(1, "aaa", "fix", models.SizeM),
		titled(2, "bbb", "fix", models.SizeM),
		titled(3, "ccc", "fix", models.SizeM),
	}
	got := FindSimilarPRs(tgt, candidates, 3)
	for i, want := range []int{1, 2, 3} {
		if got[i].Number != want {
			t.Fatalf("tie order broken: %v", got)
		}
	}
}

func TestFindSimilarPRsCategoryAndSizeBonus(t *testing.T) {
	// Identical titles; category and size bonuses decide the order.
	tgt := titled(0, "same title", "fix", models.SizeS)
	candidates := []models.PullRequestSummary{
		titled(1, "same title", "docs", models.SizeXL),
		titled(2, "same title", "fix", models.SizeS),
		titled(3, "same title", "fix", models.SizeXL),
	}
	got := FindSimilarPRs(tgt, candidates, 3)
	if got[0].Number != 2 || got[1].Number != 3 || got[2].Number != 1 {
		t.Errorf("bonus ordering wrong: %v", []int{got[0].Number, got[1].Number, got[2].Number})
	}
}
