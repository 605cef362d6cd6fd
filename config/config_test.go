package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DEBTREPORT_SOURCE", "DEBTREPORT_TABLE", "DEBTREPORT_FORMAT", "DEBTREPORT_TIMEOUT", "DEBTREPORT_VERBOSE", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, Config{
		Table:   "international_debt",
		Format:  "text",
		Timeout: 30 * time.Second,
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBTREPORT_SOURCE", "debt.csv")
	t.Setenv("DEBTREPORT_FORMAT", "json")
	t.Setenv("DEBTREPORT_TIMEOUT", "5s")
	t.Setenv("DEBTREPORT_VERBOSE", "true")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "debt.csv", cfg.Source)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadDatabaseURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/debt")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/debt", cfg.Source)

	t.Setenv("DEBTREPORT_SOURCE", "debt.yaml")
	cfg, err = Load(New())
	require.NoError(t, err)
	assert.Equal(t, "debt.yaml", cfg.Source)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "debtreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: sqlite://debt.db\ntable: reports.debt\ntimeout: 1m\n"), 0o644))

	v := New()
	v.SetConfigFile(path)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "sqlite://debt.db", cfg.Source)
	assert.Equal(t, "reports.debt", cfg.Table)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBTREPORT_TIMEOUT", "-1s")

	_, err := Load(New())
	assert.ErrorContains(t, err, "timeout must be positive")
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set.
	require.NoError(t, os.Unsetenv("DEBTREPORT_FORMAT"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEBTREPORT_FORMAT=csv\n"), 0o644))

	assert.False(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.True(t, LoadEnv(path))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format)
}
