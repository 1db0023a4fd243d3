package models

import "time"

// Report aggregates are plain value objects: built once per invocation,
// never mutated afterwards, never cached (only raw upstream nodes are).

// MaintainerStats is the per-merger rollup.
type MaintainerStats struct {
	Login             string  `json:"login"`
	MergeCount        int     `json:"merge_count"`
	AvgMergeTimeHours float64 `json:"avg_merge_time_hours"`
}

// BatchCluster is a contiguous run of >=3 merges by one actor within a
// sliding time window. Ephemeral; identity is its contents.
type BatchCluster struct {
	Merger    string    `json:"merger"`
	Count     int       `json:"count"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	PRs       []int     `json:"prs"` // numbers, ordered by merge time
}

// CategoryStats is one row of the per-category rollup.
type CategoryStats struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"` // merged + closed
	Merged      int     `json:"merged"`
	MergeRate   float64 `json:"merge_rate"` // percent
	MedianHours float64 `json:"median_hours"`
}

// TriageReport covers PR volume, merge latency, batch merges, and
// per-merger/per-category breakdowns.
type TriageReport struct {
	Repo              string            `json:"repo"`
	TotalMerged       int               `json:"total_merged"`
	TotalClosed       int               `json:"total_closed"`
	TotalOpen         int               `json:"total_open"`
	MergeRate         float64           `json:"merge_rate"`
	MedianMergeHours  float64           `json:"median_merge_hours"`
	P25MergeHours     float64           `json:"p25_merge_hours"`
	P75MergeHours     float64           `json:"p75_merge_hours"`
	MaintainerStats   []MaintainerStats `json:"maintainer_stats"`
	BatchClusters     []BatchCluster    `json:"batch_clusters"`
	CategoryBreakdown []CategoryStats   `json:"category_breakdown"`
}

// PRAssessment is the scored outlook for a single open PR.
type PRAssessment struct {
	PR            PullRequestSummary   `json:"pr"`
	Probability   int                  `json:"probability"` // 0-100
	Factors       []string             `json:"factors"`
	SimilarMerged []PullRequestSummary `json:"similar_merged"`
	SimilarClosed []PullRequestSummary `json:"similar_closed"`
}

// AssessmentReport holds the viewer's open PRs ranked by merge probability.
type AssessmentReport struct {
	Repo        string         `json:"repo"`
	User        string         `json:"user"`
	Assessments []PRAssessment `json:"assessments"`
}

// ContributorStats is the per-author rollup across all three PR states.
type ContributorStats struct {
	Login             string    `json:"login"`
	MergedCount       int       `json:"merged_count"`
	ClosedCount       int       `json:"closed_count"`
	OpenCount         int       `json:"open_count"`
	FirstContribution time.Time `json:"first_contribution"`
	MergeRate         float64   `json:"merge_rate"` // percent, 1 decimal
}

// ContributorReport covers contributor dynamics, spam, and first-timer
// retention.
type ContributorReport struct {
	Repo                       string               `json:"repo"`
	TotalContributors          int                  `json:"total_contributors"`
	TopContributors            []ContributorStats   `json:"top_contributors"`
	RepeatContributors         int                  `json:"repeat_contributors"` // 2+ merged
	OneTimeContributors        int                  `json:"one_time_contributors"`
	SpamPRs                    []PullRequestSummary `json:"spam_prs"`
	FirstTimers                int                  `json:"first_timers"`
	FirstTimerMergeRate        float64              `json:"first_timer_merge_rate"`
	FirstTimerMedianMergeHours *float64             `json:"first_timer_median_merge_hours,omitempty"`
	RepeatMedianMergeHours     *float64             `json:"repeat_median_merge_hours,omitempty"`
	RetainedFirstTimers        int                  `json:"retained_first_timers"`
	RetentionRate              float64              `json:"retention_rate"`
}

// ReviewerStats is the per-reviewer rollup.
type ReviewerStats struct {
	Login                 string  `json:"login"`
	ReviewCount           int     `json:"review_count"`
	AvgTurnaroundHours    float64 `json:"avg_turnaround_hours"`
	ApprovalCount         int     `json:"approval_count"`
	ChangesRequestedCount int     `json:"changes_requested_count"`
	CommentOnlyCount      int     `json:"comment_only_count"`
}

// ReviewReport covers review coverage, turnaround, concentration, and
// unreviewed/stale open PRs.
type ReviewReport struct {
	Repo                     string               `json:"repo"`
	TotalReviewedPRs         int                  `json:"total_reviewed_prs"`
	TotalUnreviewedMerged    int                  `json:"total_unreviewed_merged"`
	ReviewCoverage           float64              `json:"review_coverage"` // % merged with >=1 review
	MedianFirstReviewHours   *float64             `json:"median_first_review_hours,omitempty"`
	MedianReviewToMergeHours *float64             `json:"median_review_to_merge_hours,omitempty"`
	ReviewerStats            []ReviewerStats      `json:"reviewer_stats"`
	ReviewerConcentration    int                  `json:"reviewer_concentration"` // reviewers covering 50% of reviews
	UnreviewedOpenPRs        []PullRequestSummary `json:"unreviewed_open_prs"`
	StaleReviewPRs           []PullRequestSummary `json:"stale_review_prs"`
}

// CommitterCount pairs a committer login with a commit count.
type CommitterCount struct {
	Login   string `json:"login"`
	Commits int    `json:"commits"`
}

// WeekCount is one weekly commit bucket.
type WeekCount struct {
	Week    string `json:"week"` // MM/DD label
	Commits int    `json:"commits"`
}

// HealthReport covers commit velocity, release cadence, issue response,
// and bus factor.
type HealthReport struct {
	Repo                   string           `json:"repo"`
	CommitsPerWeek         float64          `json:"commits_per_week"`
	ActiveContributors30d  int              `json:"active_contributors_30d"`
	ReleaseCadenceDays     *float64         `json:"release_cadence_days,omitempty"`
	LastRelease            string           `json:"last_release,omitempty"`
	IssueResponseTimeHours *float64         `json:"issue_response_time_hours,omitempty"`
	BusFactor              int              `json:"bus_factor"`
	TopCommitters          []CommitterCount `json:"top_committers"`
	WeeklyCommits          []WeekCount      `json:"weekly_commits"`
}

// Scorecard bundles the independent report sections the overview
// synthesizes. Sections are computed concurrently and fail independently:
// a nil section with an entry in Failures means that section's fetch
// failed, never that the whole run aborted.
type Scorecard struct {
	Repo     string             `json:"repo"`
	Overview *RawOverview       `json:"overview,omitempty"`
	Triage   *TriageReport      `json:"triage,omitempty"`
	Contribs *ContributorReport `json:"contribs,omitempty"`
	Review   *ReviewReport      `json:"review,omitempty"`
	Health   *HealthReport      `json:"health,omitempty"`
	Failures map[string]string  `json:"failures,omitempty"` // section -> reason
}
