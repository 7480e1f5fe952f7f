package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Data layout
	DataDir      string // state files (history, engagement ledger)
	SaveDir      string // generated images and sidecars
	DatabasePath string // series manifest

	// Browser automation
	ProfileDir string
	Headless   bool

	// Series generation
	SeriesSize      int
	SeriesMinViable int

	// Posting
	PostingPlatform string
	DailyPostCap    int

	// Engagement
	RescrapeInterval time.Duration

	// Logging
	LogLevel string

	// Scheduler settings
	SeriesInterval     time.Duration
	EngagementInterval time.Duration
	PostCheckInterval  time.Duration
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:         getEnv("DATA_DIR", "data"),
		SaveDir:         getEnv("SAVE_DIR", "art"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/artforge.db"),
		ProfileDir:      getEnv("PROFILE_DIR", "data/chrome-profile"),
		PostingPlatform: getEnv("POSTING_PLATFORM", "instagram"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.Headless, err = parseBool("HEADLESS", "false")
	if err != nil {
		return nil, err
	}

	cfg.SeriesSize, err = parseInt("SERIES_SIZE", "3")
	if err != nil {
		return nil, err
	}
	cfg.SeriesMinViable, err = parseInt("SERIES_MIN_VIABLE", "2")
	if err != nil {
		return nil, err
	}
	cfg.DailyPostCap, err = parseInt("DAILY_POST_CAP", "3")
	if err != nil {
		return nil, err
	}

	cfg.RescrapeInterval, err = parseDuration("RESCRAPE_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}
	cfg.SeriesInterval, err = parseDuration("SERIES_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	cfg.EngagementInterval, err = parseDuration("ENGAGEMENT_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}
	cfg.PostCheckInterval, err = parseDuration("POST_CHECK_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// HistoryPath is where the prompt repeat-avoidance window lives.
func (c *Config) HistoryPath() string {
	return c.DataDir + "/prompt_history.json"
}

// LedgerPath is where the engagement ledger lives.
func (c *Config) LedgerPath() string {
	return c.DataDir + "/engagement.json"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForSeries checks configuration needed for series generation.
func (c *Config) ValidateForSeries() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SaveDir == "" {
		return fmt.Errorf("SAVE_DIR is required for generation")
	}
	if c.ProfileDir == "" {
		return fmt.Errorf("PROFILE_DIR is required for generation")
	}
	if c.SeriesSize < 1 {
		return fmt.Errorf("SERIES_SIZE must be at least 1")
	}
	if c.SeriesMinViable < 1 {
		return fmt.Errorf("SERIES_MIN_VIABLE must be at least 1")
	}
	return nil
}

// ValidateForPosting checks configuration needed for posting.
func (c *Config) ValidateForPosting() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ProfileDir == "" {
		return fmt.Errorf("PROFILE_DIR is required for posting")
	}
	if c.PostingPlatform != "instagram" {
		return fmt.Errorf("unsupported POSTING_PLATFORM: %s", c.PostingPlatform)
	}
	if c.DailyPostCap < 1 {
		return fmt.Errorf("DAILY_POST_CAP must be at least 1")
	}
	return nil
}

// ValidateForScraping checks configuration needed for engagement scraping.
func (c *Config) ValidateForScraping() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ProfileDir == "" {
		return fmt.Errorf("PROFILE_DIR is required for scraping")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForSeries(); err != nil {
		return err
	}
	if err := c.ValidateForPosting(); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseInt(key, defaultVal string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseBool(key, defaultVal string) (bool, error) {
	b, err := strconv.ParseBool(getEnv(key, defaultVal))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func parseDuration(key, defaultVal string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
