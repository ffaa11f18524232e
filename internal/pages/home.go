package pages

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/trendops/storecheck/internal/interact"
	"github.com/trendops/storecheck/internal/turkish"
	"github.com/trendops/storecheck/internal/wait"
)

const (
	searchBoxSelector      = "input[data-testid='suggestion']"
	searchIconSelector     = "i[data-testid='search-icon']"
	siteLogoSelector       = "a.logo"
	categoryHeaderSelector = "a.category-header"
)

// Home models the storefront landing page: the search box, the category
// navigation and the overlays that greet a fresh session.
type Home struct {
	Base
}

// NewHome binds a Home page object to an open browser page.
func NewHome(page playwright.Page, baseURL string) *Home {
	return &Home{Base{page: page, baseURL: baseURL}}
}

// Open navigates to the storefront root, waits for the document to settle
// and dismisses the session overlays.
func (h *Home) Open() error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(wait.PageLoad.Milliseconds())),
	}
	if _, err := h.page.Goto(h.baseURL, opts); err != nil {
		return fmt.Errorf("failed to open storefront %s: %w", h.baseURL, err)
	}
	if err := wait.ForPageReady(h.page, wait.PageLoad); err != nil {
		return err
	}
	h.DismissPopups()
	return nil
}

// IsLoaded reports whether the landing page rendered its header: the logo
// and a usable search box, on the expected host.
func (h *Home) IsLoaded() bool {
	if !h.onBaseHost() {
		return false
	}
	return interact.IsDisplayed(h.page.Locator(siteLogoSelector)) &&
		interact.IsDisplayed(h.page.Locator(searchBoxSelector))
}

// Search types a query, submits it and hands back the results page once it
// has loaded.
func (h *Home) Search(query string) (*SearchResults, error) {
	if err := h.TypeSearch(query); err != nil {
		return nil, err
	}
	if err := h.SubmitSearch(); err != nil {
		return nil, err
	}
	results := NewSearchResults(h.page, h.baseURL)
	if err := wait.ForURLContains(h.page, searchPath, wait.SearchResults); err != nil {
		return nil, fmt.Errorf("search for %q did not reach results: %w", query, err)
	}
	if err := wait.ForPageReady(h.page, wait.PageLoad); err != nil {
		return nil, err
	}
	return results, nil
}

// TypeSearch clears the search box and types a query into it.
func (h *Home) TypeSearch(query string) error {
	if err := interact.Fill(h.page.Locator(searchBoxSelector), query); err != nil {
		return fmt.Errorf("failed to type search query %q: %w", query, err)
	}
	return nil
}

// SubmitSearch clicks the magnifier icon. The suggestion dropdown covers
// the icon while it is open, so the click is dispatched from script.
func (h *Home) SubmitSearch() error {
	icon := h.page.Locator(searchIconSelector)
	if err := wait.ForAttached(icon, wait.ElementVisible); err != nil {
		return fmt.Errorf("search icon missing: %w", err)
	}
	if err := interact.ClickByScript(icon); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	return nil
}

// SearchBoxValue returns what the header search box currently holds. The
// header persists across storefront pages, so this also works after a
// search has navigated away from the landing page.
func (h *Home) SearchBoxValue() (string, error) {
	value, err := h.page.Locator(searchBoxSelector).InputValue()
	if err != nil {
		return "", fmt.Errorf("failed to read search box value: %w", err)
	}
	return value, nil
}

// SearchPlaceholder returns the hint text shown in the empty search box.
func (h *Home) SearchPlaceholder() string {
	return interact.Attr(h.page.Locator(searchBoxSelector), "placeholder")
}

// OpenCategory clicks the top navigation entry whose label matches name
// under Turkish case folding, then waits for the category page to load.
func (h *Home) OpenCategory(name string) error {
	headers := h.page.Locator(categoryHeaderSelector)
	count := interact.Count(headers)
	for i := 0; i < count; i++ {
		entry := headers.Nth(i)
		if !turkish.FuzzyEqual(interact.Text(entry), name) {
			continue
		}
		if err := interact.Click(entry); err != nil {
			return fmt.Errorf("failed to open category %q: %w", name, err)
		}
		return wait.ForPageReady(h.page, wait.PageLoad)
	}
	return fmt.Errorf("category %q not found among %d navigation entries", name, count)
}

// CategoryNames lists the labels of the top navigation entries.
func (h *Home) CategoryNames() []string {
	headers := h.page.Locator(categoryHeaderSelector)
	count := interact.Count(headers)
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if name := interact.Text(headers.Nth(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (h *Home) onBaseHost() bool {
	base, err := url.Parse(h.baseURL)
	if err != nil || base.Host == "" {
		return strings.Contains(h.CurrentURL(), h.baseURL)
	}
	current, err := url.Parse(h.CurrentURL())
	if err != nil {
		return false
	}
	return current.Host == base.Host
}
