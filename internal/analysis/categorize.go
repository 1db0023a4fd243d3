package analysis

import (
	"regexp"
	"strings"
)

// prefixRule maps a title prefix to a category. Table order is the
// tie-break: the first matching prefix wins, so narrower rules like
// "chore(deps)" must precede "chore".
type prefixRule struct {
	prefix   string
	category string
}

var prefixRules = []prefixRule{
	{"fix", "fix"}, {"bug", "fix"},
	{"feat", "feat"}, {"feature", "feat"},
	{"doc", "docs"}, {"readme", "docs"},
	{"dep", "deps"}, {"bump", "deps"}, {"upgrade", "deps"}, {"chore(deps)", "deps"},
	{"refactor", "refactor"}, {"cleanup", "refactor"}, {"clean up", "refactor"},
	{"test", "test"}, {"ci", "ci"}, {"chore", "chore"},
}

var labelRules = []struct {
	substrings []string
	category   string
}{
	{[]string{"bug", "fix"}, "fix"},
	{[]string{"feature", "enhancement"}, "feat"},
	{[]string{"documentation", "docs"}, "docs"},
	{[]string{"dependencies", "deps"}, "deps"},
}

var (
	depsKeywords = regexp.MustCompile(`\bdependabot\b|\brenovate\b|\bbump\b`)
	fixKeywords  = regexp.MustCompile(`\bfix(es|ed)?\b`)
	featKeywords = regexp.MustCompile(`\badd(s|ed)?\b|\bimplement\b`)
)

// Categorize classifies a PR into the fixed taxonomy. Priority order is
// deliberate and must stay: title prefixes beat labels beat title
// keywords, with "other" as the fallback.
func Categorize(title string, labels []string) string {
	t := strings.TrimSpace(strings.ToLower(title))

	for _, r := range prefixRules {
		if strings.HasPrefix(t, r.prefix) {
			return r.category
		}
	}

	for _, label := range labels {
		l := strings.ToLower(label)
		for _, rule := range labelRules {
			for _, sub := range rule.substrings {
				if strings.Contains(l, sub) {
					return rule.category
				}
			}
		}
	}

	switch {
	case depsKeywords.MatchString(t):
		return "deps"
	case fixKeywords.MatchString(t):
		return "fix"
	case featKeywords.MatchString(t):
		return "feat"
	}
	return "other"
}
