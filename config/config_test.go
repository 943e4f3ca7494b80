package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Equal(t, 0, cfg.Run.MaxTurns)
	assert.True(t, cfg.Run.ExecuteTools)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentswarm.yaml")
	content := []byte(`
log:
  level: debug
  format: text
model:
  provider: anthropic
  name: claude-3-5-sonnet-20241022
run:
  max_turns: 5
  stream: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Model.Name)
	assert.Equal(t, 5, cfg.Run.MaxTurns)
	assert.True(t, cfg.Run.Stream)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Run.ExecuteTools)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentswarm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  provider: anthropic\n"), 0o600))

	t.Setenv("AGENTSWARM_MODEL_PROVIDER", "openai")
	t.Setenv("AGENTSWARM_MODEL_NAME", "gpt-4o-mini")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
}

func TestLoad_EnvMultiWordKeys(t *testing.T) {
	t.Setenv("AGENTSWARM_RUN_MAX_TURNS", "7")
	t.Setenv("AGENTSWARM_MODEL_API_KEY", "sk-test")
	t.Setenv("AGENTSWARM_MODEL_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("AGENTSWARM_RUN_EXECUTE_TOOLS", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Run.MaxTurns)
	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Model.BaseURL)
	assert.False(t, cfg.Run.ExecuteTools)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Model.Provider = "bedrock"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Run.MaxTurns = -1
	assert.Error(t, cfg.Validate())
}
