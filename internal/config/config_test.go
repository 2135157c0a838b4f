package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceXLSX, cfg.Data.Source)
	assert.Equal(t, "kospi_asset_rank_04-24.xlsx", cfg.Data.Path)
	assert.Equal(t, 0, cfg.Data.SheetIndex)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "억원", cfg.Dashboard.Unit)
	assert.Equal(t, 10, cfg.Dashboard.TopN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  path: data/ranking.xlsx
  sheet: Data
server:
  port: 9090
dashboard:
  unit: KRW 100M
  top_n: 5
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/ranking.xlsx", cfg.Data.Path)
	assert.Equal(t, "Data", cfg.Data.Sheet)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "KRW 100M", cfg.Dashboard.Unit)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, SourceXLSX, cfg.Data.Source)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("PORT", "7070")
	t.Setenv("DASHBOARD_DATA_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ranking")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.Equal(t, "postgres://localhost/ranking", cfg.Database.URL)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Data:      DataConfig{Source: SourceXLSX, Path: "x.xlsx"},
			Dashboard: DashboardConfig{TopN: 10},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Data.Path = ""
	assert.ErrorContains(t, cfg.Validate(), "data.path")

	cfg = base()
	cfg.Data.Source = SourcePostgres
	assert.ErrorContains(t, cfg.Validate(), "database.url")

	cfg = base()
	cfg.Data.Source = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "unknown data.source")

	cfg = base()
	cfg.Dashboard.TopN = 0
	assert.ErrorContains(t, cfg.Validate(), "top_n")
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}
