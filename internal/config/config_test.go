package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "art", cfg.SaveDir)
		assert.Equal(t, "data/artforge.db", cfg.DatabasePath)
		assert.Equal(t, "data/chrome-profile", cfg.ProfileDir)
		assert.False(t, cfg.Headless)
		assert.Equal(t, 3, cfg.SeriesSize)
		assert.Equal(t, 2, cfg.SeriesMinViable)
		assert.Equal(t, 3, cfg.DailyPostCap)
		assert.Equal(t, 6*time.Hour, cfg.RescrapeInterval)
		assert.Equal(t, time.Hour, cfg.SeriesInterval)
		assert.Equal(t, 10*time.Minute, cfg.PostCheckInterval)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATA_DIR", "/var/lib/artforge")
		os.Setenv("HEADLESS", "true")
		os.Setenv("SERIES_SIZE", "5")
		os.Setenv("SERIES_INTERVAL", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/artforge", cfg.DataDir)
		assert.True(t, cfg.Headless)
		assert.Equal(t, 5, cfg.SeriesSize)
		assert.Equal(t, 2*time.Hour, cfg.SeriesInterval)
		assert.Equal(t, "/var/lib/artforge/prompt_history.json", cfg.HistoryPath())
		assert.Equal(t, "/var/lib/artforge/engagement.json", cfg.LedgerPath())
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SERIES_INTERVAL", "invalid")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid int", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SERIES_SIZE", "many")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataDir:         "data",
			SaveDir:         "art",
			DatabasePath:    "data/artforge.db",
			ProfileDir:      "data/chrome-profile",
			PostingPlatform: "instagram",
			SeriesSize:      3,
			SeriesMinViable: 2,
			DailyPostCap:    3,
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
		assert.NoError(t, cfg.ValidateForSeries())
		assert.NoError(t, cfg.ValidateForPosting())
		assert.NoError(t, cfg.ValidateForScraping())
		assert.NoError(t, cfg.ValidateForServe())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := valid()
		cfg.DatabasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("series needs save dir", func(t *testing.T) {
		cfg := valid()
		cfg.SaveDir = ""
		assert.NoError(t, cfg.Validate())
		assert.Error(t, cfg.ValidateForSeries())
	})

	t.Run("posting needs supported platform", func(t *testing.T) {
		cfg := valid()
		cfg.PostingPlatform = "myspace"
		assert.Error(t, cfg.ValidateForPosting())
	})

	t.Run("zero viability threshold rejected", func(t *testing.T) {
		cfg := valid()
		cfg.SeriesMinViable = 0
		assert.Error(t, cfg.ValidateForSeries())
	})
}
