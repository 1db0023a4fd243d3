// Package analysis holds the pure analysis core: normalization of raw
// GraphQL nodes into canonical summaries and the derived statistics
// built on top of them. Nothing here performs I/O or reads the wall
// clock; every time-dependent computation takes an explicit as-of
// timestamp so results are deterministic.
package analysis

import (
	"fmt"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// Ghost is the author sentinel for deleted accounts.
const Ghost = "ghost"

// FieldError marks an upstream contract violation: a raw node missing a
// field the data source is required to provide. It is fatal for that
// record and must not be coerced into a default.
type FieldError struct {
	Field string
	Cause error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pull request node: invalid %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("pull request node: missing required field %s", e.Field)
}

func (e *FieldError) Unwrap() error { return e.Cause }

// ParseTime parses a GitHub ISO-8601 timestamp ("2024-01-15T10:30:00Z").
// A nil or empty input yields nil without error; a present but malformed
// value is an error, which normalization treats as fatal for the record.
func ParseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	u := t.UTC()
	return &u, nil
}

// NormalizePR converts one raw pull request node fetched under a state
// filter into a canonical summary. asOf anchors AgeHours for records
// with no terminal timestamp.
func NormalizePR(raw models.RawPullRequest, state string, asOf time.Time) (models.PullRequestSummary, error) {
	var pr models.PullRequestSummary

	if raw.Number == nil {
		return pr, &FieldError{Field: "number"}
	}
	if raw.Title == nil {
		return pr, &FieldError{Field: "title"}
	}
	if raw.CreatedAt == nil || *raw.CreatedAt == "" {
		return pr, &FieldError{Field: "createdAt"}
	}

	created, err := ParseTime(raw.CreatedAt)
	if err != nil {
		return pr, &FieldError{Field: "createdAt", Cause: err}
	}
	merged, err := ParseTime(raw.MergedAt)
	if err != nil {
		return pr, &FieldError{Field: "mergedAt", Cause: err}
	}
	closed, err := ParseTime(raw.ClosedAt)
	if err != nil {
		return pr, &FieldError{Field: "closedAt", Cause: err}
	}

	author := Ghost
	if raw.Author != nil && raw.Author.Login != "" {
		author = raw.Author.Login
	}

	var labels []string
	if raw.Labels != nil {
		for _, l := range raw.Labels.Nodes {
			labels = append(labels, l.Name)
		}
	}

	pr = models.PullRequestSummary{
		Number:       *raw.Number,
		Title:        *raw.Title,
		Author:       author,
		State:        state,
		CreatedAt:    *created,
		MergedAt:     merged,
		ClosedAt:     closed,
		Labels:       labels,
		Additions:    raw.Additions,
		Deletions:    raw.Deletions,
		ChangedFiles: raw.ChangedFiles,
	}
	if raw.MergedBy != nil {
		pr.MergedBy = raw.MergedBy.Login
	}
	if raw.Reviews != nil {
		pr.ReviewCount = raw.Reviews.TotalCount
		for _, r := range raw.Reviews.Nodes {
			sub, err := ParseTime(r.SubmittedAt)
			if err != nil || sub == nil {
				continue // pending reviews have no submission time
			}
			login := Ghost
			if r.Author != nil && r.Author.Login != "" {
				login = r.Author.Login
			}
			pr.Reviews = append(pr.Reviews, models.Review{
				Author:      login,
				State:       r.State,
				SubmittedAt: *sub,
			})
		}
	}

	pr.Category = Categorize(pr.Title, pr.Labels)
	pr.Size = sizeBucket(pr.Additions + pr.Deletions)
	pr.AgeHours = ageHours(pr, asOf)
	if pr.State == models.StateMerged && pr.MergedAt != nil {
		ttm := pr.MergedAt.Sub(pr.CreatedAt).Hours()
		pr.TimeToMergeHours = &ttm
	}
	return pr, nil
}

func sizeBucket(total int) string {
	switch {
	case total <= 10:
		return models.SizeXS
	case total <= 50:
		return models.SizeS
	case total <= 200:
		return models.SizeM
	case total <= 500:
		return models.SizeL
	default:
		return models.SizeXL
	}
}

// ageHours measures from creation to the terminal timestamp, or to asOf
// for records that are still open.
func ageHours(pr models.PullRequestSummary, asOf time.Time) float64 {
	end := asOf
	if pr.MergedAt != nil {
		end = *pr.MergedAt
	} else if pr.ClosedAt != nil {
		end = *pr.ClosedAt
	}
	return end.Sub(pr.CreatedAt).Hours()
}

// NormalizeAll converts a page of raw nodes, failing on the first
// contract-violating record.
func NormalizeAll(nodes []models.RawPullRequest, state string, asOf time.Time) ([]models.PullRequestSummary, error) {
	out := make([]models.PullRequestSummary, 0, len(nodes))
	for i, n := range nodes {
		pr, err := NormalizePR(n, state, asOf)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		out = append(out, pr)
	}
	return out, nil
}
