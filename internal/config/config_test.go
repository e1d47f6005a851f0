package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DefaultRadiiKm)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NEIGHBOURHOOD_DB", "/tmp/catalog.db")
	t.Setenv("NEIGHBOURHOOD_BOUNDARIES", "/tmp/states.geojson")
	t.Setenv("NEIGHBOURHOOD_REGION_RADII", "Rivers=40, Abia=60")
	t.Setenv("NEIGHBOURHOOD_SEARCH_TIMEOUT", "2s")
	t.Setenv("NEIGHBOURHOOD_CACHE_TTL", "1m")
	t.Setenv("NEIGHBOURHOOD_LOG_LEVEL", "DEBUG")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "/tmp/catalog.db", cfg.DBPath)
	assert.Equal(t, "/tmp/states.geojson", cfg.BoundariesPath)
	assert.Equal(t, map[string]int{"Rivers": 40, "Abia": 60}, cfg.DefaultRadiiKm)
	assert.Equal(t, 2*time.Second, cfg.SearchTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseRadiiSkipsMalformedEntries(t *testing.T) {
	radii := parseRadii("Rivers=40,nonsense,Abia=abc,=10,Lagos=0,Enugu=25")
	assert.Equal(t, map[string]int{"Rivers": 40, "Enugu": 25}, radii)
}
