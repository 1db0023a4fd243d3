package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// isolate points every config search path at empty temp directories so
// tests never see the developer's real config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 4, cfg.Global.Concurrency)
	assert.Equal(t, 60, cfg.Global.CacheTTL)
	assert.Equal(t, 200, cfg.Global.PRLimit)
	assert.Equal(t, 30, cfg.Analysis.BatchWindowMinutes)
	assert.Equal(t, 7, cfg.Analysis.StaleReviewDays)
	assert.Equal(t, 5, cfg.Analysis.SpamCloseMinutes)
	assert.Equal(t, 90, cfg.Analysis.FirstTimerWindowDays)
	assert.Equal(t, 90, cfg.Analysis.ActivityWindowDays)
	assert.Equal(t, 3, cfg.Analysis.SimilarResultCount)
}

func TestLoadLocalFileWins(t *testing.T) {
	dir := isolate(t)

	userPath := filepath.Join(dir, "xdg", "ghscope", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userPath, []byte("global:\n  pr_limit: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	local := "global:\n  pr_limit: 50\nanalysis:\n  batch_window_minutes: 15\n"
	if err := os.WriteFile("ghscope.yaml", []byte(local), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 50, cfg.Global.PRLimit, "local ghscope.yaml should win")
	assert.Equal(t, 15, cfg.Analysis.BatchWindowMinutes)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Global.Concurrency)
}

func TestLoadUserConfig(t *testing.T) {
	dir := isolate(t)

	userPath := filepath.Join(dir, "xdg", "ghscope", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "global:\n  github_token: tok123\nanalysis:\n  stale_review_days: 14\n"
	if err := os.WriteFile(userPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "tok123", cfg.Global.GitHubToken)
	assert.Equal(t, 14, cfg.Analysis.StaleReviewDays)
}

func TestLoadMalformedYAML(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("ghscope.yaml", []byte("global: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load()
	assert.Error(t, err)
}

func TestSaveRoundtrip(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	assert.NoError(t, err)
	cfg.Global.GitHubToken = "saved-token"
	cfg.Analysis.SimilarResultCount = 5

	assert.NoError(t, Save(cfg))

	path, err := GetConfigPath()
	assert.NoError(t, err)
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "saved-token", got.Global.GitHubToken)
	assert.Equal(t, 5, got.Analysis.SimilarResultCount)
}

func TestGetConfigPathRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	p, err := GetConfigPath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "ghscope", "config.yaml"), p)
}
