// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Catalog database
	DBPath string

	// Region boundaries
	BoundariesPath string         // GeoJSON FeatureCollection, optional
	DefaultRadiiKm map[string]int // per-region search radius defaults

	// Search engine
	SearchTimeout time.Duration
	CacheTTL      time.Duration

	// Logging
	LogLevel string // "debug", "info", "warn", "error"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath:         "", // resolved to ~/.neighbourhood/catalog.db by the server
		DefaultRadiiKm: map[string]int{},
		SearchTimeout:  5 * time.Second,
		CacheTTL:       5 * time.Minute,
		LogLevel:       "info",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("NEIGHBOURHOOD_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("NEIGHBOURHOOD_BOUNDARIES"); v != "" {
		c.BoundariesPath = v
	}
	if v := os.Getenv("NEIGHBOURHOOD_REGION_RADII"); v != "" {
		c.DefaultRadiiKm = parseRadii(v)
	}
	if v := os.Getenv("NEIGHBOURHOOD_SEARCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.SearchTimeout = d
		}
	}
	if v := os.Getenv("NEIGHBOURHOOD_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.CacheTTL = d
		}
	}
	if v := os.Getenv("NEIGHBOURHOOD_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// parseRadii parses "Rivers=40,Abia=60" into a region→km map. Malformed
// entries are skipped.
func parseRadii(s string) map[string]int {
	radii := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		km, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || name == "" || km <= 0 {
			continue
		}
		radii[name] = km
	}
	return radii
}
