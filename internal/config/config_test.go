package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thepass/internal/database"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	for _, env := range []string{EnvAuthSecret, EnvOpenAIKey, EnvNATSURL} {
		t.Setenv(env, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.MetricsConfig.Port)
	assert.False(t, cfg.LLMEnabled())
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
database:
  driver: postgres
  dsn: host=localhost dbname=thepass sslmode=disable
metrics:
  enabled: true
  port: 9100
llm:
  enabled: true
  openai_key: sk-file
nats:
  url: nats://localhost:4222
recipes_file: recipes.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 9100, cfg.MetricsConfig.Port)
	assert.Equal(t, "/metrics", cfg.MetricsConfig.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "thepass", cfg.NATS.SubjectPrefix)
	assert.Equal(t, "recipes.yaml", cfg.RecipesFile)
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv(EnvAuthSecret, "env-secret")
	t.Setenv(EnvOpenAIKey, "sk-env")

	path := writeConfig(t, "auth:\n  secret: file-secret\nllm:\n  openai_key: sk-file\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAIKey)
	assert.False(t, cfg.LLMEnabled(), "a key alone does not turn commentary on")
}

func TestLoadRejectsBadConfig(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  driver: mongodb\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log_level: [unclosed\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "metrics:\n  enabled: true\n  port: 0\n"))
	assert.Error(t, err)
}
