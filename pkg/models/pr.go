package models

import "time"

// PR states as reported by the GitHub GraphQL API.
const (
	StateMerged = "MERGED"
	StateClosed = "CLOSED"
	StateOpen   = "OPEN"
)

// Size buckets derived from additions+deletions.
const (
	SizeXS = "XS" // <= 10
	SizeS  = "S"  // <= 50
	SizeM  = "M"  // <= 200
	SizeL  = "L"  // <= 500
	SizeXL = "XL" // > 500
)

// Review is a normalized review event on a pull request.
type Review struct {
	Author      string    `json:"author"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PullRequestSummary is the canonical in-memory record every analyzer
// consumes. It is immutable once built: the derived fields (Category,
// Size, AgeHours, TimeToMergeHours) are computed a single time at
// normalization against an explicit as-of timestamp, so the same raw
// node always normalizes to the same summary.
type PullRequestSummary struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
	MergedAt     *time.Time `json:"merged_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	MergedBy     string    `json:"merged_by,omitempty"`
	Labels       []string  `json:"labels,omitempty"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
	ReviewCount  int       `json:"review_count"`
	Reviews      []Review  `json:"reviews,omitempty"`

	Category         string   `json:"category"`
	Size             string   `json:"size"`
	AgeHours         float64  `json:"age_hours"`
	TimeToMergeHours *float64 `json:"time_to_merge_hours,omitempty"`
}
