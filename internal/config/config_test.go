package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WORKSPACE_PATH", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.WorkspacePath)
	assert.Equal(t, "localhost:3000", cfg.Addr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKSPACE_PATH", "/srv/workspace")

	cfg := Load()

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/srv/workspace", cfg.WorkspacePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}
