package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgeteer/internal/severity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "DB_DRIVER", "LATEST_LIMIT", "PAGE_SIZE", "SEVERITY_BANDS_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.LatestLimit)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, severity.DefaultBands(), cfg.SeverityBands)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEVERITY_BANDS_FILE", "")

	t.Run("bad_driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DRIVER")
	})

	t.Run("bad_latest_limit", func(t *testing.T) {
		t.Setenv("LATEST_LIMIT", "ten")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LATEST_LIMIT")
	})

	t.Run("bad_port", func(t *testing.T) {
		t.Setenv("PORT", "99999")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})
}

func TestLoad_SeverityBandsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bands.yaml")
	content := `bands:
  - threshold: "1.25"
    label: critical
  - threshold: 0.9
    label: warning
  - threshold: "0"
    label: ok
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SEVERITY_BANDS_FILE", path)
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.SeverityBands, 3)
	assert.Equal(t, "critical", cfg.SeverityBands[0].Label)
	assert.True(t, cfg.SeverityBands[0].Threshold.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, cfg.SeverityBands[1].Threshold.Equal(decimal.RequireFromString("0.9")))
	assert.Equal(t, "ok", cfg.SeverityBands[2].Label)
}

func TestLoadSeverityBands_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadSeverityBands(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty_table", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bands: []\n"), 0o600))
		_, err := LoadSeverityBands(path)
		assert.Error(t, err)
	})

	t.Run("missing_label", func(t *testing.T) {
		path := filepath.Join(dir, "nolabel.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bands:\n  - threshold: 1\n"), 0o600))
		_, err := LoadSeverityBands(path)
		assert.Error(t, err)
	})
}
