package config

import "os"

// DefaultBaseURL is the storefront the journeys run against when no
// override is configured.
const DefaultBaseURL = "https://www.trendyol.com"

// TargetConfig holds configuration for the storefront under test
type TargetConfig struct {
	BaseURL       string
	SearchKeyword string
}

// LoadTargetConfig loads target configuration from environment variables
func LoadTargetConfig() TargetConfig {
	config := TargetConfig{
		BaseURL:       os.Getenv("STORECHECK_BASE_URL"),
		SearchKeyword: os.Getenv("STORECHECK_SEARCH_KEYWORD"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.SearchKeyword == "" {
		config.SearchKeyword = "laptop"
	}

	return config
}
