package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-sync/internal/gaps"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://example.test/tariffs
  timeout_seconds: 10
dataset:
  path: /var/data/prices.csv
sync:
  historical_floor: "2015-06-01"
  floor_policy: year-start
  include_today: true
  close_internal_gaps: true
server:
  port: 9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/tariffs", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "/var/data/prices.csv", cfg.Dataset.Path)
	assert.Equal(t, time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), cfg.Floor())
	assert.True(t, cfg.Sync.IncludeToday)
	assert.True(t, cfg.Sync.CloseInternalGaps)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
dataset:
  path: ./prices.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, "2012-01-01", cfg.Sync.HistoricalFloor)
	assert.Equal(t, string(gaps.FloorFixed), cfg.Sync.FloorPolicy)
	assert.Equal(t, "./prices.csv", cfg.Dataset.Path)
}

func TestLoad_BadFloorDate(t *testing.T) {
	path := writeConfig(t, `
sync:
  historical_floor: "01/01/2012"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "historical_floor")
}

func TestLoad_BadFloorPolicy(t *testing.T) {
	path := writeConfig(t, `
sync:
  floor_policy: sideways
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor_policy")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAnalyzer(t *testing.T) {
	cfg := Default()
	cfg.Sync.FloorPolicy = string(gaps.FloorYearStart)
	cfg.Sync.IncludeToday = true

	a := cfg.Analyzer()
	assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), a.Floor)
	assert.Equal(t, gaps.FloorYearStart, a.Policy)
	assert.True(t, a.IncludeToday)
}
