package analysis

import "testing"

func TestCategorizeTitlePrefixes(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"fix: resolve crash on startup", "fix"},
		{"Bugfix for login flow", "fix"},
		{"feat: add retry logic", "feat"},
		{"Feature: dark mode", "feat"},
		{"docs: update usage section", "docs"},
		{"README tweaks", "docs"},
		{"deps: bump lodash", "deps"},
		{"Bump golang.org/x/net to v0.20", "deps"},
		{"upgrade to v2 API", "deps"},
		{"chore(deps): update actions", "deps"},
		{"refactor storage layer", "refactor"},
		{"cleanup unused vars", "refactor"},
		{"clean up imports", "refactor"},
		{"test: cover edge cases", "test"},
		{"ci: cache modules", "ci"},
		{"chore: regenerate mocks", "chore"},
		{"something unclassifiable", "other"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.title, nil); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestCategorizeOrderedPrefixTable(t *testing.T) {
	// "chore(deps): ..." must hit deps, not chore, even though both
	// prefixes match.
	if got := Categorize("chore(deps): bump serde", nil); got != "deps" {
		t.Errorf("chore(deps) prefix resolved to %q, want deps", got)
	}
}

func TestCategorizeLabels(t *testing.T) {
	tests := []struct {
		title  string
		labels []string
		want   string
	}{
		{"resolve the thing", []string{"bug"}, "fix"},
		{"new dashboard", []string{"enhancement"}, "feat"},
		{"clarity pass", []string{"documentation"}, "docs"},
		{"routine maintenance", []string{"dependencies"}, "deps"},
		{"resolve the thing", []string{"kind/bug"}, "fix"}, // substring match
	}
	for _, tt := range tests {
		if got := Categorize(tt.title, tt.labels); got != tt.want {
			t.Errorf("Categorize(%q, %v) = %q, want %q", tt.title, tt.labels, got, tt.want)
		}
	}
}

func TestCategorizePrefixBeatsLabel(t *testing.T) {
	// A "fix" prefix wins even when labels say docs.
	if got := Categorize("fix typo in guide", []string{"documentation"}); got != "fix" {
		t.Errorf("got %q, want fix", got)
	}
}

func TestCategorizeKeywordsAreWordBounded(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"rely on dependabot for updates", "deps"},
		{"this fixes the race", "fix"},
		{"also adds new endpoint", "feat"},
		{"implement new parser", "feat"},
		// "prefix" contains "fix" but must not match \bfix\b.
		{"handle prefix collisions", "other"},
		// "address" contains "add".
		{"wrong address in header", "other"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.title, nil); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
