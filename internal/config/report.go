package config

// ReportConfig holds configuration for run reporting and failure artifacts
type ReportConfig struct {
	ScreenshotDir       string
	ScreenshotOnFailure bool
	ResultsFile         string
	WebhookURL          string
	LogLevel            string
}

// LoadReportConfig loads reporting configuration from environment variables
func LoadReportConfig(getenv func(string) string) ReportConfig {
	config := ReportConfig{
		ScreenshotDir:       getenv("STORECHECK_SCREENSHOT_DIR"),
		ScreenshotOnFailure: envBool(getenv, "STORECHECK_SCREENSHOT_ON_FAILURE", true),
		ResultsFile:         getenv("STORECHECK_RESULTS_FILE"),
		WebhookURL:          getenv("STORECHECK_WEBHOOK_URL"),
		LogLevel:            getenv("STORECHECK_LOG_LEVEL"),
	}

	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "test-results/screenshots"
	}
	if config.ResultsFile == "" {
		config.ResultsFile = "test-results/runs.jsonl"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config
}
