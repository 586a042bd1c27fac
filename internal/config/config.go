package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend address used when FOODCOURT_API_URL is unset.
const DefaultAPIURL = "http://localhost:8081"

// Config aggregates runtime configuration for the client.
type Config struct {
	APIURL             string
	StateDir           string
	LogLevel           string
	HTTPTimeoutSeconds int
}

// Load reads configuration from the environment and an optional .env file
// in the working directory. Values already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	stateDir := os.Getenv("FOODCOURT_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: get home dir: %w", err)
		}
		stateDir = filepath.Join(home, ".foodcourt")
	}

	return &Config{
		APIURL:             strings.TrimRight(getEnv("FOODCOURT_API_URL", DefaultAPIURL), "/"),
		StateDir:           stateDir,
		LogLevel:           getEnv("FOODCOURT_LOG_LEVEL", "info"),
		HTTPTimeoutSeconds: getEnvAsInt("FOODCOURT_HTTP_TIMEOUT_SECONDS", 30),
	}, nil
}

// SessionPath returns the file holding the stored credential.
func (c *Config) SessionPath() string {
	return filepath.Join(c.StateDir, "session.json")
}

// LogPath returns the file the logger writes to.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "foodcourt.log")
}

// HTTPTimeout returns the per-request timeout. Zero disables it.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
