// Package screenshot writes failure artifacts for journeys and tests.
package screenshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// Capture writes a full-page PNG into dir and returns its path. The file
// name carries the label, a timestamp and a short unique suffix so parallel
// runs never clobber each other.
func Capture(page playwright.Page, dir, label string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.png",
		sanitize(label),
		time.Now().Format("2006-01-02_15-04-05"),
		uuid.NewString()[:8],
	)
	path := filepath.Join(dir, name)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}

	return path, nil
}

// sanitize keeps file names portable: anything outside letters, digits,
// dashes and underscores becomes an underscore.
func sanitize(label string) string {
	if label == "" {
		return "screenshot"
	}
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
