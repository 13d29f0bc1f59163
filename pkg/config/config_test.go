package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://localhost:3001" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.BookInterval != 5*time.Second {
		t.Errorf("BookInterval = %s", cfg.BookInterval)
	}
	if cfg.OrdersInterval != 10*time.Second || cfg.MatchesInterval != 10*time.Second || cfg.HistoryInterval != 10*time.Second {
		t.Errorf("list intervals = %s/%s/%s", cfg.OrdersInterval, cfg.MatchesInterval, cfg.HistoryInterval)
	}
	if cfg.StatsInterval != 30*time.Second {
		t.Errorf("StatsInterval = %s", cfg.StatsInterval)
	}
	if cfg.ItemsPerPage != 10 || cfg.PageWindow != 5 {
		t.Errorf("pagination = %d/%d", cfg.ItemsPerPage, cfg.PageWindow)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("api_base_url: http://file:9999\npoll:\n  book_seconds: 2\nitems_per_page: 25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BITDESK_API_URL", "http://env:8888")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://env:8888" {
		t.Errorf("env did not win: %q", cfg.APIBaseURL)
	}
	if cfg.BookInterval != 2*time.Second {
		t.Errorf("file value ignored: %s", cfg.BookInterval)
	}
	if cfg.ItemsPerPage != 25 {
		t.Errorf("ItemsPerPage = %d", cfg.ItemsPerPage)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIBaseURL:      "http://localhost:3001",
			BookInterval:    time.Second,
			OrdersInterval:  time.Second,
			MatchesInterval: time.Second,
			HistoryInterval: time.Second,
			StatsInterval:   time.Second,
			ItemsPerPage:    10,
			PageWindow:      5,
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c := base()
	c.APIBaseURL = "  "
	if err := c.Validate(); err == nil {
		t.Error("empty base url accepted")
	}

	c = base()
	c.ItemsPerPage = 0
	if err := c.Validate(); err == nil {
		t.Error("zero items per page accepted")
	}

	c = base()
	c.PageWindow = 2
	if err := c.Validate(); err == nil {
		t.Error("window below 3 accepted")
	}

	c = base()
	c.StatsInterval = 0
	if err := c.Validate(); err == nil {
		t.Error("zero interval accepted")
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("BITDESK_TEST_INT", "42")
	if got := parseIntEnv("BITDESK_TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
	t.Setenv("BITDESK_TEST_INT", "not-a-number")
	if got := parseIntEnv("BITDESK_TEST_INT", 7); got != 7 {
		t.Errorf("bad value did not fall back: %d", got)
	}
	if got := parseIntEnv("BITDESK_TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("missing value did not fall back: %d", got)
	}
}
