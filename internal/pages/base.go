package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/trendops/storecheck/internal/interact"
	"github.com/trendops/storecheck/internal/wait"
)

// Overlay selectors shared across the storefront. The gender modal shows up
// right after the first navigation, the cookie banner a moment later.
const (
	genderModalSelector      = ".gender-modal-section"
	genderModalCloseSelector = ".modal-section-close"
	cookieBannerSelector     = "#onetrust-banner-sdk"
	cookieAcceptSelector     = "#onetrust-accept-btn-handler"
	cookieRejectSelector     = "#onetrust-reject-all-handler"
)

// Base carries the page handle and the behaviors every storefront page
// shares: navigation, scrolling and overlay dismissal.
type Base struct {
	page    playwright.Page
	baseURL string
}

// Page exposes the underlying playwright page for callers that need it,
// such as screenshot capture on failure.
func (b *Base) Page() playwright.Page {
	return b.page
}

// BaseURL returns the storefront root this page object navigates against.
func (b *Base) BaseURL() string {
	return b.baseURL
}

// CurrentURL returns the address currently loaded in the page.
func (b *Base) CurrentURL() string {
	return b.page.URL()
}

// Title returns the document title.
func (b *Base) Title() (string, error) {
	title, err := b.page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

// Refresh reloads the current page and waits for it to settle.
func (b *Base) Refresh() error {
	if _, err := b.page.Reload(); err != nil {
		return fmt.Errorf("failed to refresh page: %w", err)
	}
	return wait.ForPageReady(b.page, wait.PageLoad)
}

// Back navigates one entry back in the tab history.
func (b *Base) Back() error {
	if _, err := b.page.GoBack(); err != nil {
		return fmt.Errorf("failed to navigate back: %w", err)
	}
	return wait.ForPageReady(b.page, wait.PageLoad)
}

// Forward navigates one entry forward in the tab history.
func (b *Base) Forward() error {
	if _, err := b.page.GoForward(); err != nil {
		return fmt.Errorf("failed to navigate forward: %w", err)
	}
	return wait.ForPageReady(b.page, wait.PageLoad)
}

// ScrollToBottom scrolls the page to its bottom and lets lazy content load.
func (b *Base) ScrollToBottom() error {
	return interact.ScrollToBottom(b.page)
}

// ScrollToTop scrolls the page back to the top.
func (b *Base) ScrollToTop() error {
	return interact.ScrollToTop(b.page)
}

// DismissPopups clears the overlays that block clicks after the first
// navigation. Both dismissals are fail safe: a popup that never shows up,
// or that disappears on its own, is not an error.
func (b *Base) DismissPopups() {
	b.CloseGenderModal()
	b.AcceptCookies()
}

// CloseGenderModal closes the gender selection modal if it appears within
// its usual window.
func (b *Base) CloseGenderModal() {
	modal := b.page.Locator(genderModalSelector)
	if err := wait.ForVisible(modal, wait.Modal); err != nil {
		return
	}
	if err := interact.Click(b.page.Locator(genderModalCloseSelector)); err != nil {
		log.Debug().Err(err).Msg("gender modal close click failed")
		return
	}
	if err := wait.ForHidden(modal, wait.Invisible); err != nil {
		log.Debug().Err(err).Msg("gender modal still visible after close")
	}
}

// AcceptCookies accepts the cookie consent banner if it appears. The banner
// renders with a delay, so this waits a little longer than the modal.
func (b *Base) AcceptCookies() {
	b.answerCookieBanner(cookieAcceptSelector)
}

// RejectCookies rejects the cookie consent banner if it appears.
func (b *Base) RejectCookies() {
	b.answerCookieBanner(cookieRejectSelector)
}

// GenderModalShown reports whether the gender selection modal is on screen.
func (b *Base) GenderModalShown() bool {
	return interact.IsDisplayed(b.page.Locator(genderModalSelector))
}

// CookieBannerShown reports whether the cookie consent banner is on screen.
func (b *Base) CookieBannerShown() bool {
	return interact.IsDisplayed(b.page.Locator(cookieBannerSelector))
}

func (b *Base) answerCookieBanner(buttonSelector string) {
	banner := b.page.Locator(cookieBannerSelector)
	if err := wait.ForVisible(banner, wait.Promo); err != nil {
		return
	}
	if err := interact.Click(b.page.Locator(buttonSelector)); err != nil {
		log.Debug().Err(err).Msg("cookie banner click failed")
		return
	}
	if err := wait.ForHidden(banner, wait.Invisible); err != nil {
		log.Debug().Err(err).Msg("cookie banner still visible after answer")
	}
}
