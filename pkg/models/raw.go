package models

// Raw node shapes as returned by the GitHub GraphQL API. Pointer fields
// distinguish "absent" from a zero value; the normalizer treats a missing
// number, title, or createdAt as an upstream contract violation.

// RawActor is a GraphQL actor reference. A nil actor means the account
// was deleted ("ghost").
type RawActor struct {
	Login string `json:"login"`
}

// RawLabel is a label node; only the name survives normalization.
type RawLabel struct {
	Name string `json:"name"`
}

// RawLabelConnection wraps the labels(first: N) connection.
type RawLabelConnection struct {
	Nodes []RawLabel `json:"nodes"`
}

// RawReview is a single submitted review event.
type RawReview struct {
	Author      *RawActor `json:"author"`
	State       string    `json:"state"` // APPROVED, CHANGES_REQUESTED, COMMENTED, ...
	SubmittedAt *string   `json:"submittedAt"`
}

// RawReviewConnection wraps the reviews connection. Nodes are only
// populated by the review-detail queries; TotalCount is always present.
type RawReviewConnection struct {
	Nodes      []RawReview `json:"nodes"`
	TotalCount int         `json:"totalCount"`
}

// RawPullRequest is one pull request node from any of the PR page queries.
type RawPullRequest struct {
	Number       *int                 `json:"number"`
	Title        *string              `json:"title"`
	Author       *RawActor            `json:"author"`
	MergedBy     *RawActor            `json:"mergedBy"`
	CreatedAt    *string              `json:"createdAt"`
	MergedAt     *string              `json:"mergedAt"`
	ClosedAt     *string              `json:"closedAt"`
	Labels       *RawLabelConnection  `json:"labels"`
	Additions    int                  `json:"additions"`
	Deletions    int                  `json:"deletions"`
	ChangedFiles int                  `json:"changedFiles"`
	Reviews      *RawReviewConnection `json:"reviews"`
}

// RawCommit is one commit node from the default-branch history query.
type RawCommit struct {
	CommittedDate *string `json:"committedDate"`
	Author        *struct {
		User *RawActor `json:"user"`
	} `json:"author"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// RawComment is an issue comment node.
type RawComment struct {
	CreatedAt *string   `json:"createdAt"`
	Author    *RawActor `json:"author"`
}

// RawIssue is one issue node with its first comment, used for
// first-response latency.
type RawIssue struct {
	Number    *int      `json:"number"`
	CreatedAt *string   `json:"createdAt"`
	ClosedAt  *string   `json:"closedAt"`
	Author    *RawActor `json:"author"`
	Comments  *struct {
		Nodes []RawComment `json:"nodes"`
	} `json:"comments"`
}

// RawRelease is a release node from the overview query.
type RawRelease struct {
	TagName   string  `json:"tagName"`
	CreatedAt *string `json:"createdAt"`
}

// RawCount wraps a bare totalCount field.
type RawCount struct {
	TotalCount int `json:"totalCount"`
}

// RawOverview is the repository overview query result.
type RawOverview struct {
	Name             string    `json:"name"`
	Owner            *RawActor `json:"owner"`
	Description      string    `json:"description"`
	StargazerCount   int       `json:"stargazerCount"`
	ForkCount        int       `json:"forkCount"`
	IsArchived       bool      `json:"isArchived"`
	CreatedAt        *string   `json:"createdAt"`
	PushedAt         *string   `json:"pushedAt"`
	DefaultBranchRef *struct {
		Name string `json:"name"`
	} `json:"defaultBranchRef"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	LicenseInfo *struct {
		SpdxID string `json:"spdxId"`
	} `json:"licenseInfo"`
	OpenIssues   RawCount `json:"openIssues"`
	ClosedIssues RawCount `json:"closedIssues"`
	OpenPRs      RawCount `json:"openPRs"`
	MergedPRs    RawCount `json:"mergedPRs"`
	ClosedPRs    RawCount `json:"closedPRs"`
	Releases     *struct {
		Nodes []RawRelease `json:"nodes"`
	} `json:"releases"`
}
