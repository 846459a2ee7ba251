package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sample = `
[server]
http_port = 8085

[database]
host = "db"
port = 5432
user = "app"
password = "secret"
dbname = "reservations"

[restaurant]
timezone = "Europe/Madrid"

[notifications]
sink = "log"
workers = 3

[cache]
settings_ttl = 10
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout, "default kept for missing keys")
	assert.Equal(t, 3, cfg.Notifications.Workers)
	assert.Equal(t, 10*time.Second, cfg.Cache.TTL())
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=reservations sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DASHBOARD_TOKEN", "staff")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "staff", cfg.Security.DashboardToken)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv("DB_PORT", "abc")

	_, err := Load(writeConfig(t, sample))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"no db name", func(c *Config) { c.Database.DBName = "" }},
		{"bad timezone", func(c *Config) { c.Restaurant.Timezone = "Mars/Olympus" }},
		{"rabbitmq without url", func(c *Config) { c.Notifications.Sink = SinkRabbitMQ }},
		{"webhook without url", func(c *Config) { c.Notifications.Sink = SinkWebhook }},
		{"unknown sink", func(c *Config) { c.Notifications.Sink = "pigeon" }},
		{"no workers", func(c *Config) { c.Notifications.Workers = 0 }},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }},
		{"negative ttl", func(c *Config) { c.Cache.SettingsTTL = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DBName = "reservations"
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
