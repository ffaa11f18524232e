package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/trendops/storecheck/internal/wait"
)

// Tabs exposes the context's pages in creation order. Product cards open
// detail pages in new tabs, so journeys hop between the original results
// tab and the newest one.
type Tabs struct {
	context playwright.BrowserContext
}

// Count returns the number of open tabs.
func (t *Tabs) Count() int {
	return len(t.context.Pages())
}

// WaitForCount waits until at least n tabs are open.
func (t *Tabs) WaitForCount(n int, timeout time.Duration) error {
	return wait.For(func() (bool, error) {
		return len(t.context.Pages()) >= n, nil
	}, timeout, fmt.Sprintf("%d open tabs", n))
}

// First returns the original tab, nil when the context has none.
func (t *Tabs) First() playwright.Page {
	pages := t.context.Pages()
	if len(pages) == 0 {
		return nil
	}
	return pages[0]
}

// Latest returns the most recently opened tab, nil when the context has
// none.
func (t *Tabs) Latest() playwright.Page {
	pages := t.context.Pages()
	if len(pages) == 0 {
		return nil
	}
	return pages[len(pages)-1]
}

// SwitchToLatest brings the newest tab to the front and returns it.
func (t *Tabs) SwitchToLatest() (playwright.Page, error) {
	page := t.Latest()
	if page == nil {
		return nil, fmt.Errorf("no open tabs")
	}
	if err := page.BringToFront(); err != nil {
		return nil, fmt.Errorf("failed to switch to latest tab: %w", err)
	}
	return page, nil
}

// SwitchToFirst brings the original tab to the front and returns it.
func (t *Tabs) SwitchToFirst() (playwright.Page, error) {
	page := t.First()
	if page == nil {
		return nil, fmt.Errorf("no open tabs")
	}
	if err := page.BringToFront(); err != nil {
		return nil, fmt.Errorf("failed to switch to first tab: %w", err)
	}
	return page, nil
}

// CloseCurrentAndReturn closes the given tab and lands back on the original
// one.
func (t *Tabs) CloseCurrentAndReturn(current playwright.Page) (playwright.Page, error) {
	if err := current.Close(); err != nil {
		return nil, fmt.Errorf("failed to close tab: %w", err)
	}
	return t.SwitchToFirst()
}
