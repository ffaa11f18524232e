package config

import (
	"strconv"
)

// BrowserConfig holds configuration for the driver-controlled browser
type BrowserConfig struct {
	Headless       bool
	SlowMoMillis   float64
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	UserAgent      string
	VideoDir       string
	TimeoutMillis  float64
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) BrowserConfig {
	config := BrowserConfig{
		Headless:       envBool(getenv, "STORECHECK_HEADLESS", true),
		SlowMoMillis:   float64(envInt(getenv, "STORECHECK_SLOWMO_MS", 0)),
		ViewportWidth:  envInt(getenv, "STORECHECK_VIEWPORT_WIDTH", 1920),
		ViewportHeight: envInt(getenv, "STORECHECK_VIEWPORT_HEIGHT", 1080),
		Locale:         getenv("STORECHECK_LOCALE"),
		UserAgent:      getenv("STORECHECK_USER_AGENT"),
		VideoDir:       getenv("STORECHECK_VIDEO_DIR"),
		TimeoutMillis:  float64(envInt(getenv, "STORECHECK_TIMEOUT_MS", 30000)),
	}

	if config.Locale == "" {
		config.Locale = "tr-TR"
	}
	if config.UserAgent == "" {
		config.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	return config
}

// envBool reads a boolean variable, falling back on parse failure or absence
func envBool(getenv func(string) string, key string, fallback bool) bool {
	raw := getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

// envInt reads an integer variable, falling back on parse failure or absence
func envInt(getenv func(string) string, key string, fallback int) int {
	raw := getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
