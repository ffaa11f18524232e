// Package wait provides bounded polling predicates over driver pages and
// locators. Every wait has an explicit budget; none of them sleeps for a
// fixed duration and hopes.
package wait

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// probeMillis bounds the individual driver calls made inside poll loops so a
// single probe can never consume the whole budget.
const probeMillis = 1000

// For polls cond until it returns true or the budget runs out. Errors from
// cond are treated as a not-yet: transient DOM churn must not fail a wait
// early. The last error is carried in the timeout failure.
func For(cond func() (bool, error), timeout time.Duration, describe string) error {
	return poll(cond, timeout, PollInterval, describe)
}

func poll(cond func() (bool, error), timeout, interval time.Duration, describe string) error {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for {
		ok, err := cond()
		if err != nil {
			lastErr = err
		} else if ok {
			return nil
		}

		if time.Now().After(deadline) {
			if lastErr != nil {
				return fmt.Errorf("timed out after %s waiting for %s: %w", timeout, describe, lastErr)
			}
			return fmt.Errorf("timed out after %s waiting for %s", timeout, describe)
		}

		time.Sleep(interval)
	}
}

// ForVisible waits until the element is visible.
func ForVisible(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	})
}

// ForHidden waits until the element is invisible or gone from the DOM.
func ForHidden(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(millis(timeout)),
	})
}

// ForAttached waits until the element is present in the DOM, visible or not.
func ForAttached(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(millis(timeout)),
	})
}

// ForClickable waits until the element is both visible and enabled.
func ForClickable(loc playwright.Locator, timeout time.Duration) error {
	return For(func() (bool, error) {
		visible, err := loc.IsVisible()
		if err != nil || !visible {
			return false, err
		}
		enabled, err := loc.IsEnabled()
		if err != nil {
			return false, err
		}
		return enabled, nil
	}, timeout, "element clickable")
}

// ForText waits until the element's rendered text contains substr.
func ForText(loc playwright.Locator, substr string, timeout time.Duration) error {
	return For(func() (bool, error) {
		text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(probeMillis),
		})
		if err != nil {
			return false, err
		}
		return strings.Contains(text, substr), nil
	}, timeout, fmt.Sprintf("text containing %q", substr))
}

// ForCountAtLeast waits until the locator matches at least n elements.
func ForCountAtLeast(loc playwright.Locator, n int, timeout time.Duration) error {
	return For(func() (bool, error) {
		count, err := loc.Count()
		if err != nil {
			return false, err
		}
		return count >= n, nil
	}, timeout, fmt.Sprintf("at least %d matching elements", n))
}

// ForURLContains waits until the page URL contains fragment.
func ForURLContains(page playwright.Page, fragment string, timeout time.Duration) error {
	return For(func() (bool, error) {
		return strings.Contains(page.URL(), fragment), nil
	}, timeout, fmt.Sprintf("URL containing %q", fragment))
}

// ForPageReady waits until the document has finished loading.
func ForPageReady(page playwright.Page, timeout time.Duration) error {
	return For(func() (bool, error) {
		result, err := page.Evaluate("document.readyState")
		if err != nil {
			return false, err
		}
		state, ok := result.(string)
		return ok && state == "complete", nil
	}, timeout, "document ready")
}

// ForAjaxIdle waits until no jQuery requests are in flight. Pages without
// jQuery satisfy the condition immediately.
func ForAjaxIdle(page playwright.Page, timeout time.Duration) error {
	return For(func() (bool, error) {
		result, err := page.Evaluate("typeof jQuery === 'undefined' || jQuery.active === 0")
		if err != nil {
			return false, err
		}
		idle, ok := result.(bool)
		return ok && idle, nil
	}, timeout, "ajax idle")
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
