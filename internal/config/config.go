// ABOUTME: Configuration loader for the marketplace client
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/oauth"
	"github.com/campusmarket/market-cli/internal/session"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAPIURL       = "MARKET_API_URL"
	EnvConfigDir    = "MARKET_CONFIG_DIR"
	EnvCallbackAddr = "MARKET_CALLBACK_ADDR"
	EnvHTTPTimeout  = "MARKET_HTTP_TIMEOUT"
	EnvLoginTimeout = "MARKET_LOGIN_TIMEOUT"
	EnvLogLevel     = "MARKET_LOG_LEVEL"
	EnvLogFormat    = "MARKET_LOG_FORMAT"
)

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout time.Duration // zero means no client-side timeout

	// Local state
	ConfigDir string

	// Login
	CallbackAddr string
	LoginTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env files (if present) and the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		slog.Debug("Ignoring unreadable env file", "error", err)
	}

	return &Config{
		APIURL:       strings.TrimRight(getEnv(EnvAPIURL, client.DefaultBaseURL), "/"),
		HTTPTimeout:  getEnvDuration(EnvHTTPTimeout, 0),
		ConfigDir:    getEnv(EnvConfigDir, session.DefaultConfigDir()),
		CallbackAddr: getEnv(EnvCallbackAddr, oauth.DefaultCallbackAddr),
		LoginTimeout: getEnvDuration(EnvLoginTimeout, 5*time.Minute),
		LogLevel:     getEnv(EnvLogLevel, "warn"),
		LogFormat:    getEnv(EnvLogFormat, "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("Invalid duration, using default", "key", key, "value", value, "default", defaultValue)
	return defaultValue
}
