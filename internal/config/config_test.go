package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  admin_token: "secret"
  cors_origins:
    - "https://bigbackliving.com"

database:
  path: "/data/reviews.db"

static_data:
  mode: "snapshot"
  path: "/data/static.json"
  refresh: "10m"

notify:
  slack_webhook: "https://hooks.slack.com/services/X"

logging:
  level: "debug"
  format: "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Server.AdminToken)
	assert.Equal(t, "./bigback.db", cfg.Database.Path)
	assert.Equal(t, "live", cfg.StaticData.Mode)
	assert.Zero(t, cfg.StaticData.ParseRefresh())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.AdminToken)
	assert.Equal(t, []string{"https://bigbackliving.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/data/reviews.db", cfg.Database.Path)
	assert.Equal(t, "snapshot", cfg.StaticData.Mode)
	assert.Equal(t, 10*time.Minute, cfg.StaticData.ParseRefresh())
	assert.Equal(t, "https://hooks.slack.com/services/X", cfg.Notify.SlackWebhook)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a map"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BIGBACK_PORT", "7070")
	t.Setenv("BIGBACK_DB_PATH", "/tmp/override.db")
	t.Setenv("BIGBACK_ADMIN_TOKEN", "env-token")
	t.Setenv("BIGBACK_STATIC_REFRESH", "5m")
	t.Setenv("BIGBACK_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "env beats file")
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "env-token", cfg.Server.AdminToken)
	assert.Equal(t, 5*time.Minute, cfg.StaticData.ParseRefresh())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverrideBadPortIgnored(t *testing.T) {
	t.Setenv("BIGBACK_PORT", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestParseRefreshInvalid(t *testing.T) {
	assert.Zero(t, StaticDataConfig{Refresh: "soon"}.ParseRefresh())
	assert.Zero(t, StaticDataConfig{}.ParseRefresh())
}
