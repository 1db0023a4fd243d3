package analysis

import (
	"regexp"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// DefaultSpamCloseWindow is how quickly a close marks a PR as suspect.
const DefaultSpamCloseWindow = 5 * time.Minute

var genericTitle = regexp.MustCompile(`(?i)^(update|edit|patch|change)\s+(readme|file|code)`)

// DetectSpamPRs flags likely low-effort PRs among the CLOSED subset of
// the population: closed within the quick-close window, or carrying a
// generic title, in both cases by an author with zero merged PRs.
//
// The zero-merge check runs over the entire combined population up
// front, including merges that happened after a candidate was closed:
// an author's later accepted work retroactively clears their earlier
// quick-closes.
func DetectSpamPRs(prs []models.PullRequestSummary, closeWindow time.Duration) []models.PullRequestSummary {
	mergedAuthors := make(map[string]bool)
	for _, pr := range prs {
		if pr.State == models.StateMerged {
			mergedAuthors[pr.Author] = true
		}
	}

	var spam []models.PullRequestSummary
	for _, pr := range prs {
		if pr.State != models.StateClosed {
			continue
		}
		if pr.ClosedAt != nil && pr.ClosedAt.Sub(pr.CreatedAt) < closeWindow && !mergedAuthors[pr.Author] {
			spam = append(spam, pr)
			continue
		}
		if genericTitle.MatchString(pr.Title) && !mergedAuthors[pr.Author] {
			spam = append(spam, pr)
		}
	}
	return spam
}
