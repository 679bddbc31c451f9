// Package config loads the site and feed configuration. The pipeline itself
// never reads it; only the edges (feed sources, renderer, CLI) do.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Site            SiteConfig   `json:"site"`
	DefaultCurrency string       `json:"default_currency"`
	Feeds           []FeedConfig `json:"feeds"`
	Output          OutputConfig `json:"output"`
}

type SiteConfig struct {
	Title   string `json:"title"`
	BaseURL string `json:"base_url"`
}

// FeedConfig names one feed source. URL wins over Path when both are set.
// Encoding is empty for UTF-8 or "windows-1251" for legacy exports.
type FeedConfig struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

type OutputConfig struct {
	Dir string `json:"dir"`
}

// Load reads the JSON config file and applies env overrides on top. A missing
// file is fine; env and defaults carry a minimal setup.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Site: SiteConfig{
			Title:   "Price Compare",
			BaseURL: "https://example.invalid/",
		},
		DefaultCurrency: "RUB",
		Output:          OutputConfig{Dir: "site"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Site.Title = getEnvOrDefault("SITE_TITLE", cfg.Site.Title)
	cfg.Site.BaseURL = getEnvOrDefault("SITE_BASE_URL", cfg.Site.BaseURL)
	cfg.DefaultCurrency = strings.ToUpper(getEnvOrDefault("DEFAULT_CURRENCY", cfg.DefaultCurrency))
	cfg.Output.Dir = getEnvOrDefault("OUTPUT_DIR", cfg.Output.Dir)

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
