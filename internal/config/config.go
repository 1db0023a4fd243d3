package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

type Config struct {
	Global   GlobalConfig   `yaml:"global"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type GlobalConfig struct {
	GitHubToken string `yaml:"github_token,omitempty"`
	Concurrency int    `yaml:"concurrency"`
	CacheTTL    int    `yaml:"cache_ttl_minutes"`
	PRLimit     int    `yaml:"pr_limit"`
}

type AnalysisConfig struct {
	BatchWindowMinutes   int `yaml:"batch_window_minutes"`
	StaleReviewDays      int `yaml:"stale_review_days"`
	SpamCloseMinutes     int `yaml:"spam_close_minutes"`
	FirstTimerWindowDays int `yaml:"first_timer_window_days"`
	ActivityWindowDays   int `yaml:"activity_window_days"`
	SimilarResultCount   int `yaml:"similar_result_count"`
}

func GetConfigPath() (string, error) {
	// Respect XDG_CONFIG_HOME if set (useful for testing and Linux users)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ghscope", "config.yaml"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ghscope", "config.yaml"), nil
}

func Load() (*Config, error) {
	// A local .env can carry GITHUB_TOKEN during development.
	_ = godotenv.Load()

	cfg := &Config{
		Global: GlobalConfig{
			Concurrency: 4,
			CacheTTL:    60,
			PRLimit:     200,
		},
		Analysis: AnalysisConfig{
			BatchWindowMinutes:   30,
			StaleReviewDays:      7,
			SpamCloseMinutes:     5,
			FirstTimerWindowDays: 90,
			ActivityWindowDays:   90,
			SimilarResultCount:   3,
		},
	}

	// Priorities: ./ghscope.yaml, $XDG_CONFIG_HOME/ghscope/config.yaml, $HOME/.ghscope.yaml
	paths := []string{"ghscope.yaml"} // Local override

	if p, err := GetConfigPath(); err == nil {
		paths = append(paths, p)
	}

	// Legacy fallback
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".ghscope.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, err
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing %s: %w", p, err)
			}
			return cfg, nil
		}
	}

	return cfg, nil
}

// Save writes the configuration to the user's config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("error getting config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
