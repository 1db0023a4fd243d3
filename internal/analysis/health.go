package analysis

import (
	"sort"
	"time"

	"github.com/mikematt33/ghscope/pkg/models"
)

// CommitVelocity returns commits per week over the lookback window and
// the weekly commit buckets in chronological order. Bucket labels use
// the MM/DD of the commit date.
func CommitVelocity(commits []models.RawCommit, days int) (float64, []models.WeekCount) {
	perWeek := 0.0
	if weeks := float64(days) / 7; weeks > 0 {
		perWeek = float64(len(commits)) / weeks
	}

	buckets := make(map[string]int)
	for _, c := range commits {
		dt, err := ParseTime(c.CommittedDate)
		if err != nil || dt == nil {
			continue
		}
		buckets[dt.Format("01/02")]++
	}
	var labels []string
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	weekly := make([]models.WeekCount, 0, len(labels))
	for _, l := range labels {
		weekly = append(weekly, models.WeekCount{Week: l, Commits: buckets[l]})
	}
	return perWeek, weekly
}

// ActiveCommitters counts distinct committer logins within the last 30
// days before asOf. Commits with no resolvable user are skipped.
func ActiveCommitters(commits []models.RawCommit, asOf time.Time) int {
	cutoff := asOf.AddDate(0, 0, -30)
	active := make(map[string]bool)
	for _, c := range commits {
		dt, err := ParseTime(c.CommittedDate)
		if err != nil || dt == nil || !dt.After(cutoff) {
			continue
		}
		if c.Author != nil && c.Author.User != nil && c.Author.User.Login != "" {
			active[c.Author.User.Login] = true
		}
	}
	return len(active)
}

// TopCommitters tallies commits per login, descending, top n. Commits
// with no resolvable user are attributed to "unknown".
func TopCommitters(commits []models.RawCommit, n int) []models.CommitterCount {
	counter := make(map[string]int)
	for _, c := range commits {
		login := "unknown"
		if c.Author != nil && c.Author.User != nil && c.Author.User.Login != "" {
			login = c.Author.User.Login
		}
		counter[login]++
	}
	counts := sortedCounts(counter)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// ReleaseCadence returns the median gap, in days, between consecutive
// releases (listed newest first) and the latest tag name. Nil cadence
// when fewer than two releases exist.
func ReleaseCadence(releases []models.RawRelease) (*float64, string) {
	if len(releases) == 0 {
		return nil, ""
	}
	last := releases[0].TagName
	if len(releases) < 2 {
		return nil, last
	}

	var deltas []float64
	for i := 0; i < len(releases)-1; i++ {
		a, errA := ParseTime(releases[i].CreatedAt)
		b, errB := ParseTime(releases[i+1].CreatedAt)
		if errA != nil || errB != nil || a == nil || b == nil {
			continue
		}
		// Whole days, matching the coarse granularity cadence is read at.
		deltas = append(deltas, float64(int(a.Sub(*b).Hours()/24)))
	}
	if len(deltas) == 0 {
		return nil, last
	}
	m := median(deltas)
	return &m, last
}

// IssueResponseTime returns the median hours from issue creation to its
// first comment, counting only issues whose first comment came from
// someone other than the issue author. An issue whose author replied to
// themselves first contributes nothing.
func IssueResponseTime(issues []models.RawIssue) *float64 {
	var hours []float64
	for _, issue := range issues {
		created, err := ParseTime(issue.CreatedAt)
		if err != nil || created == nil || issue.Comments == nil || len(issue.Comments.Nodes) == 0 {
			continue
		}
		first := issue.Comments.Nodes[0]
		responded, err := ParseTime(first.CreatedAt)
		if err != nil || responded == nil {
			continue
		}
		issueAuthor := ""
		if issue.Author != nil {
			issueAuthor = issue.Author.Login
		}
		commentAuthor := ""
		if first.Author != nil {
			commentAuthor = first.Author.Login
		}
		if commentAuthor == issueAuthor {
			continue
		}
		if h := responded.Sub(*created).Hours(); h >= 0 {
			hours = append(hours, h)
		}
	}
	return medianOrNil(hours)
}
