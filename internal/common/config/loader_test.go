package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: score-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "score-test", cfg.App.Name)
	assert.Equal(t, DefaultScoringTimeout, cfg.Scoring.Timeout)
	assert.Equal(t, 10*time.Second, GetDuration(cfg.Scoring.Timeout))
	assert.Equal(t, DefaultSecretsFile, cfg.Scoring.SecretsFile)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Scoring.MaxBodyBytes)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("SCORE_SECRETS_PATH", "/run/secrets/scoring.toml")
	path := writeConfig(t, "scoring:\n  secrets_file: ${SCORE_SECRETS_PATH}\n  timeout: 2500\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/run/secrets/scoring.toml", cfg.Scoring.SecretsFile)
	assert.Equal(t, 2500, cfg.Scoring.Timeout)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	path := writeConfig(t, "workers:\n  credit-score:\n    enabled: true\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	wc := GetWorkerConfig(cfg, "credit-score")
	assert.True(t, wc.Enabled)
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.Equal(t, 30000, wc.Timeout)

	missing := GetWorkerConfig(cfg, "unknown")
	assert.True(t, missing.Enabled)
}

func TestLoadFromFile_CamundaRequiresBroker(t *testing.T) {
	path := writeConfig(t, "camunda:\n  enabled: true\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camunda.broker_address")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
