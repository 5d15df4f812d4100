package config

import (
	"os"
)

// Config carries the server's environment-driven settings.
type Config struct {
	Host          string
	Port          string
	WorkspacePath string
	LogLevel      string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config. WORKSPACE_PATH defaults to
// the current working directory, matching a server started from inside the
// workspace it serves.
func Load() *Config {
	workspace := os.Getenv("WORKSPACE_PATH")
	if workspace == "" {
		if wd, err := os.Getwd(); err == nil {
			workspace = wd
		} else {
			workspace = "."
		}
	}

	return &Config{
		Host:          getEnv("HOST", "localhost"),
		Port:          getEnv("PORT", "3000"),
		WorkspacePath: workspace,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
