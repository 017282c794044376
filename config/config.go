// Package config loads the engine's tunable heuristics from the
// environment, falling back to the shipped defaults.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/jordanlucero/scanclean/analysis"
	"github.com/jordanlucero/scanclean/session"
)

type Config struct {
	// Detection heuristics.
	HeaderScanLines int
	GapTolerance    int
	MinHeaderRun    int

	// Idle delay before an analysis pass runs.
	IdleDelay time.Duration

	// Directory for the file-backed blob store, when used.
	CacheDir string
}

func Load() Config {
	cfg := Config{
		HeaderScanLines: envInt("SCANCLEAN_HEADER_SCAN_LINES", 3),
		GapTolerance:    envInt("SCANCLEAN_GAP_TOLERANCE", 2),
		MinHeaderRun:    envInt("SCANCLEAN_MIN_HEADER_RUN", 3),
		IdleDelay:       envDuration("SCANCLEAN_IDLE_DELAY", session.DefaultIdleDelay),
		CacheDir:        envOr("SCANCLEAN_CACHE_DIR", ".scanclean"),
	}

	if cfg.HeaderScanLines <= 0 {
		cfg.HeaderScanLines = 3
	}
	if cfg.GapTolerance <= 0 {
		cfg.GapTolerance = 2
	}
	if cfg.MinHeaderRun <= 0 {
		cfg.MinHeaderRun = 3
	}
	if cfg.IdleDelay <= 0 {
		cfg.IdleDelay = session.DefaultIdleDelay
	}

	return cfg
}

// Analysis returns the detection configuration slice of the config.
func (c Config) Analysis() analysis.Config {
	return analysis.Config{
		HeaderScanLines: c.HeaderScanLines,
		GapTolerance:    c.GapTolerance,
		MinRun:          c.MinHeaderRun,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
