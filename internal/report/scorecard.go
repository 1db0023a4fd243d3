package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mikematt33/ghscope/pkg/models"
)

// ScorecardTable synthesizes whichever sections a scorecard carries into
// a single signal/value/read table. Missing sections simply contribute
// no rows.
func ScorecardTable(card *models.Scorecard) Table {
	t := Table{Name: "scorecard", Columns: []string{"signal", "value", "read"}}
	add := func(signal, value, read string) {
		t.Rows = append(t.Rows, []string{signal, value, read})
	}

	if review := card.Review; review != nil {
		cov := review.ReviewCoverage
		total := review.TotalReviewedPRs + review.TotalUnreviewedMerged
		var read string
		switch {
		case cov < 30:
			read = fmt.Sprintf("%d/%d merges go in blind", review.TotalUnreviewedMerged, total)
		case cov < 70:
			read = "partial coverage — room to improve"
		default:
			read = "most PRs reviewed before merge"
		}
		add("review_coverage", fmt.Sprintf("%.0f%%", cov), read)

		if len(review.ReviewerStats) > 0 {
			top := review.ReviewerStats[0]
			n := review.ReviewerConcentration
			if n <= 1 {
				turnaround := top.AvgTurnaroundHours
				read = fmt.Sprintf("sole gatekeeper · %s avg turnaround", FormatHours(&turnaround))
			} else {
				read = fmt.Sprintf("%d reviewers cover 50%%+ of reviews", n)
			}
			add("reviewer_spread", fmt.Sprintf("%d (%s)", n, top.Login), read)
		}
	}

	if health := card.Health; health != nil {
		if health.ActiveContributors30d <= 1 {
			add("active_contributors", fmt.Sprintf("%d", health.ActiveContributors30d),
				"only 1 person active in last 30d")
		} else {
			add("active_contributors", fmt.Sprintf("%d", health.ActiveContributors30d),
				fmt.Sprintf("%d people active in last 30d", health.ActiveContributors30d))
		}

		var read string
		switch {
		case health.BusFactor == 0:
			read = "no merges in lookback · can't compute"
		case health.BusFactor == 1:
			read = "single point of failure"
		default:
			read = fmt.Sprintf("%d people cover 50%%+ of merges", health.BusFactor)
		}
		add("bus_factor", fmt.Sprintf("%d", health.BusFactor), read)

		if len(health.TopCommitters) > 0 {
			top := health.TopCommitters[0]
			total := 0
			for _, c := range health.TopCommitters {
				total += c.Commits
			}
			pct := 0
			if total > 0 {
				pct = int(float64(top.Commits)/float64(total)*100 + 0.5)
			}
			read = fmt.Sprintf("%s dominates (%d/%d, %d%%)", top.Login, top.Commits, total, pct)
		} else {
			read = "no commit data"
		}
		add("commit_velocity", fmt.Sprintf("%.1f/wk", health.CommitsPerWeek), read)

		if health.ReleaseCadenceDays != nil {
			read = "has releases"
			if health.LastRelease != "" {
				read = "last: " + health.LastRelease
			}
			add("release_cadence", fmt.Sprintf("%.0fd", *health.ReleaseCadenceDays), read)
		} else if health.LastRelease == "" {
			add("release_cadence", "—", "no releases ever")
		} else {
			add("release_cadence", "—", "only 1 release: "+health.LastRelease)
		}

		if h := health.IssueResponseTimeHours; h != nil {
			var qual string
			switch {
			case *h < 24:
				qual = "fast · under 24h"
			case *h < 168:
				qual = "slow · over a day"
			default:
				qual = "very slow · over a week"
			}
			add("issue_response", FormatHours(h), qual)
		} else {
			add("issue_response", "—", "no issue responses to measure")
		}
	}

	if triage := card.Triage; triage != nil {
		med, p75 := triage.MedianMergeHours, triage.P75MergeHours
		add("merge_rate", fmt.Sprintf("%.1f%%", triage.MergeRate),
			fmt.Sprintf("median %s · p75 %s", FormatHours(&med), FormatHours(&p75)))

		if len(triage.MaintainerStats) > 0 {
			top := triage.MaintainerStats[0]
			read := fmt.Sprintf("%s leads · %d merges", top.Login, top.MergeCount)
			if len(triage.MaintainerStats) == 1 {
				read = fmt.Sprintf("%s is the sole merger", top.Login)
			}
			add("top_merger", fmt.Sprintf("%s (%d)", top.Login, top.MergeCount), read)
		}
	}

	if contribs := card.Contribs; contribs != nil {
		read := "zero new contributors in window"
		if contribs.FirstTimers > 0 {
			read = fmt.Sprintf("%.0f%% merge rate · %.0f%% retention",
				contribs.FirstTimerMergeRate, contribs.RetentionRate)
		}
		add("first_timers", fmt.Sprintf("%d", contribs.FirstTimers), read)

		if len(contribs.TopContributors) > 0 {
			top := contribs.TopContributors[0]
			add("top_contributor", fmt.Sprintf("%s (%d)", top.Login, top.MergedCount),
				fmt.Sprintf("%.0f%% merge rate", top.MergeRate))
		}
	}

	if review := card.Review; review != nil && len(review.UnreviewedOpenPRs) > 0 {
		oldest := 0.0
		for _, pr := range review.UnreviewedOpenPRs {
			if pr.AgeHours > oldest {
				oldest = pr.AgeHours
			}
		}
		add("unreviewed_prs", fmt.Sprintf("%d", len(review.UnreviewedOpenPRs)),
			fmt.Sprintf("%d stale · oldest waiting %s", len(review.StaleReviewPRs), FormatHours(&oldest)))
	}

	return t
}

// RenderScorecardText prints the scorecard as aligned columns with one
// signal per line, then any section failures.
func RenderScorecardText(card *models.Scorecard, w io.Writer) {
	t := ScorecardTable(card)

	sigW, valW := 0, 0
	for _, row := range t.Rows {
		if len(row[0]) > sigW {
			sigW = len(row[0])
		}
		if len(row[1]) > valW {
			valW = len(row[1])
		}
	}

	_, _ = fmt.Fprintf(w, "\n  %s by the numbers\n", card.Repo)
	_, _ = fmt.Fprintf(w, "  %s\n\n", strings.Repeat("─", sigW+valW+30))
	for _, row := range t.Rows {
		_, _ = fmt.Fprintf(w, "  %-*s  %*s  │ %s\n", sigW, row[0], valW, row[1], row[2])
	}
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "  no data")
	}
	_, _ = fmt.Fprintln(w)

	if len(card.Failures) > 0 {
		sections := make([]string, 0, len(card.Failures))
		for section := range card.Failures {
			sections = append(sections, section)
		}
		sort.Strings(sections)
		for _, section := range sections {
			_, _ = fmt.Fprintf(w, "  ⚠️ %s unavailable: %s\n", section, card.Failures[section])
		}
		_, _ = fmt.Fprintln(w)
	}
}
