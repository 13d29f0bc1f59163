package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// APIBaseURL is the exchange backend base URL, e.g. http://localhost:3001.
	APIBaseURL string

	// Poll intervals per view. These are fixed-period timers: the next
	// cycle fires relative to when the previous one started.
	BookInterval    time.Duration
	OrdersInterval  time.Duration
	MatchesInterval time.Duration
	HistoryInterval time.Duration
	StatsInterval   time.Duration

	ItemsPerPage int // rows per page in list views
	PageWindow   int // max page buttons in the page selector

	// CredentialsDir is where the badger credential store lives.
	CredentialsDir string

	LogLevel string
	LogFile  string
}

// File is the YAML layout of an optional config file.
type File struct {
	APIBaseURL string `yaml:"api_base_url"`
	Poll       struct {
		BookSeconds    int `yaml:"book_seconds"`
		OrdersSeconds  int `yaml:"orders_seconds"`
		MatchesSeconds int `yaml:"matches_seconds"`
		HistorySeconds int `yaml:"history_seconds"`
		StatsSeconds   int `yaml:"stats_seconds"`
	} `yaml:"poll"`
	ItemsPerPage   int    `yaml:"items_per_page"`
	PageWindow     int    `yaml:"page_window"`
	CredentialsDir string `yaml:"credentials_dir"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// Load builds the configuration from an optional YAML file plus
// environment overrides. An empty path skips the file entirely.
// Precedence: env var > config file > default.
func Load(path string) (*Config, error) {
	var file *File
	if path != "" {
		f, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
		file = f
	}

	cfg := &Config{
		APIBaseURL:      pickString(getEnv("BITDESK_API_URL", ""), fileString(file, func(f *File) string { return f.APIBaseURL }), "http://localhost:3001"),
		BookInterval:    pickSeconds(parseIntEnv("BITDESK_BOOK_INTERVAL", 0), fileInt(file, func(f *File) int { return f.Poll.BookSeconds }), 5),
		OrdersInterval:  pickSeconds(parseIntEnv("BITDESK_ORDERS_INTERVAL", 0), fileInt(file, func(f *File) int { return f.Poll.OrdersSeconds }), 10),
		MatchesInterval: pickSeconds(parseIntEnv("BITDESK_MATCHES_INTERVAL", 0), fileInt(file, func(f *File) int { return f.Poll.MatchesSeconds }), 10),
		HistoryInterval: pickSeconds(parseIntEnv("BITDESK_HISTORY_INTERVAL", 0), fileInt(file, func(f *File) int { return f.Poll.HistorySeconds }), 10),
		StatsInterval:   pickSeconds(parseIntEnv("BITDESK_STATS_INTERVAL", 0), fileInt(file, func(f *File) int { return f.Poll.StatsSeconds }), 30),
		ItemsPerPage:    pickInt(parseIntEnv("BITDESK_ITEMS_PER_PAGE", 0), fileInt(file, func(f *File) int { return f.ItemsPerPage }), 10),
		PageWindow:      pickInt(parseIntEnv("BITDESK_PAGE_WINDOW", 0), fileInt(file, func(f *File) int { return f.PageWindow }), 5),
		CredentialsDir:  pickString(getEnv("BITDESK_CREDENTIALS_DIR", ""), fileString(file, func(f *File) string { return f.CredentialsDir }), defaultCredentialsDir()),
		LogLevel:        pickString(getEnv("LOG_LEVEL", ""), fileString(file, func(f *File) string { return f.LogLevel }), "info"),
		LogFile:         pickString(getEnv("LOG_FILE", ""), fileString(file, func(f *File) string { return f.LogFile }), "logs/bitdesk.log"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pollers and pager cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("items_per_page must be > 0, got %d", c.ItemsPerPage)
	}
	if c.PageWindow < 3 {
		return fmt.Errorf("page_window must be >= 3, got %d", c.PageWindow)
	}
	for _, iv := range []time.Duration{c.BookInterval, c.OrdersInterval, c.MatchesInterval, c.HistoryInterval, c.StatsInterval} {
		if iv <= 0 {
			return fmt.Errorf("poll intervals must be > 0")
		}
	}
	return nil
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &f, nil
}

func defaultCredentialsDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bitdesk", "credentials")
	}
	return filepath.Join(".bitdesk", "credentials")
}

func fileString(f *File, get func(*File) string) string {
	if f == nil {
		return ""
	}
	return get(f)
}

func fileInt(f *File, get func(*File) int) int {
	if f == nil {
		return 0
	}
	return get(f)
}

func pickString(env, file, def string) string {
	if env != "" {
		return env
	}
	if file != "" {
		return file
	}
	return def
}

func pickInt(env, file, def int) int {
	if env > 0 {
		return env
	}
	if file > 0 {
		return file
	}
	return def
}

func pickSeconds(env, file, def int) time.Duration {
	return time.Duration(pickInt(env, file, def)) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
