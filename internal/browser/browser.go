// Package browser provisions the driver-controlled browser and tracks the
// tabs a journey opens.
package browser

import (
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/trendops/storecheck/internal/config"
)

// launchArgs mirrors the flags the storefront tolerates best: no automation
// banner, no sandbox surprises in CI and the Turkish UI.
var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-gpu",
	"--disable-extensions",
	"--disable-notifications",
	"--lang=tr-TR",
}

// Session owns one driver process, browser, context and the current page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// Launch installs the driver browsers when needed, starts the driver and
// opens a configured context with one page.
func Launch(cfg config.BrowserConfig) (*Session, error) {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{
			Browsers: []string{"chromium"},
		}); err != nil {
			return nil, fmt.Errorf("failed to install browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start driver: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMoMillis),
		Args:     launchArgs,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
		Locale:    playwright.String(cfg.Locale),
		UserAgent: playwright.String(cfg.UserAgent),
	}
	if cfg.VideoDir != "" {
		contextOptions.RecordVideo = &playwright.RecordVideo{
			Dir: cfg.VideoDir,
		}
	}

	context, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	context.SetDefaultTimeout(cfg.TimeoutMillis)

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.Info().
		Bool("headless", cfg.Headless).
		Str("locale", cfg.Locale).
		Int("viewport_width", cfg.ViewportWidth).
		Int("viewport_height", cfg.ViewportHeight).
		Msg("browser session ready")

	return &Session{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
	}, nil
}

// Page returns the session's current page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Context returns the browser context all tabs share.
func (s *Session) Context() playwright.BrowserContext {
	return s.context
}

// Tabs returns the tab tracker for this session's context.
func (s *Session) Tabs() *Tabs {
	return &Tabs{context: s.context}
}

// NewPage opens a fresh tab and makes it the session's current page.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	s.page = page
	return page, nil
}

// SetCurrent records the page a tab switch landed on.
func (s *Session) SetCurrent(page playwright.Page) {
	s.page = page
}

// Close tears the session down page-first. Teardown keeps going past
// individual failures so a dead page cannot leak the driver process.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close page")
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser context")
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser")
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Warn().Err(err).Msg("failed to stop driver")
		}
	}
}
