package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "trh-intelligence", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, 100, cfg.Service.BatchSize)
	assert.Equal(t, 200, cfg.Service.IngestRPS)
	assert.Equal(t, "17 3 * * *", cfg.Service.EvictionCron)
	assert.Equal(t, 30*time.Second, cfg.Service.ReadTimeout)
	assert.Equal(t, "./data/intelligence.db", cfg.Store.Path)
	assert.Equal(t, 14, cfg.Store.ExpiryDays)
	assert.Equal(t, "./configs/taxonomy.yaml", cfg.Taxonomy.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
service:
  port: 9999
  batch_size: 25
store:
  path: /tmp/other.db
  expiry_days: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Service.Port)
	assert.Equal(t, 25, cfg.Service.BatchSize)
	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.Equal(t, 30, cfg.Store.ExpiryDays)
	// Untouched values keep their defaults.
	assert.Equal(t, 200, cfg.Service.IngestRPS)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
store:
  path: /tmp/from-file.db
`)

	t.Setenv("INTEL_STORE_PATH", "/tmp/from-env.db")
	t.Setenv("INTEL_PORT", "7001")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.db", cfg.Store.Path)
	assert.Equal(t, 7001, cfg.Service.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsNegativeExpiry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
store:
  expiry_days: -3
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiry_days")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "service: [broken")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadTaxonomy(t *testing.T) {
	full := `
skill_patterns:
  python: ['\bpython\b']
benefits_keywords:
  meal_vouchers: [stravenky]
work_model_keywords:
  remote_keywords: [remote]
toxicity_keywords: [práce pod tlakem]
tech_modern: [kubernetes]
tech_legacy: [cobol]
`

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "taxonomy.yaml", full)
		tax, err := LoadTaxonomy(path)
		require.NoError(t, err)
		assert.Contains(t, tax.SkillPatterns, "python")
		assert.Equal(t, []string{"kubernetes"}, tax.TechModern)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("incomplete taxonomy names missing domains", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "taxonomy.yaml", "skill_patterns:\n  python: ['x']\n")
		_, err := LoadTaxonomy(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "benefits_keywords")
		assert.Contains(t, err.Error(), "tech_legacy")
	})
}

func TestLoadRates(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		rates, err := LoadRates(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.InDelta(t, 25.0, rates["EUR"], 0.001)
	})

	t.Run("file overrides and extends defaults", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "rates.yaml", "EUR: 24.5\nNOK: 2.2\n")
		rates, err := LoadRates(path)
		require.NoError(t, err)
		assert.InDelta(t, 24.5, rates["EUR"], 0.001)
		assert.InDelta(t, 2.2, rates["NOK"], 0.001)
		assert.InDelta(t, 23.0, rates["USD"], 0.001, "unlisted codes keep defaults")
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "rates.yaml", "EUR: -1\n")
		_, err := LoadRates(path)
		require.Error(t, err)
	})

	t.Run("malformed file is rejected", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "rates.yaml", "EUR: [oops")
		_, err := LoadRates(path)
		require.Error(t, err)
	})
}
