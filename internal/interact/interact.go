// Package interact wraps driver element operations with bounded retry and a
// script-dispatch fallback so single stale handles or late overlays do not
// fail a whole journey.
package interact

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/trendops/storecheck/internal/wait"
)

const (
	// probeMillis bounds single driver calls that would otherwise inherit
	// the page default timeout.
	probeMillis = 1000
	// attemptMillis bounds one click attempt; the retry loop owns the
	// overall budget.
	attemptMillis = 5000

	scrollSettle   = 500 * time.Millisecond
	lazyLoadSettle = time.Second
)

// Click clicks the element with up to wait.RetryAttempts rounds of
// wait-scroll-click. Interception and staleness are retried; the final
// interception falls back to a script-dispatched click; any other driver
// error surfaces immediately.
func Click(loc playwright.Locator) error {
	var lastErr error

	for attempt := 1; attempt <= wait.RetryAttempts; attempt++ {
		if err := wait.ForClickable(loc, wait.Clickable); err != nil {
			return err
		}

		if err := ScrollIntoView(loc); err != nil {
			if !isDetached(err) {
				return err
			}
			lastErr = err
			if attempt == wait.RetryAttempts {
				return fmt.Errorf("element went stale while scrolling: %w", err)
			}
			time.Sleep(wait.RetryDelay)
			continue
		}

		err := loc.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(attemptMillis),
		})
		if err == nil {
			return nil
		}
		lastErr = err

		switch {
		case isInterception(err):
			if attempt == wait.RetryAttempts {
				log.Debug().Int("attempt", attempt).Msg("click intercepted, dispatching script click")
				return ClickByScript(loc)
			}
			log.Debug().Int("attempt", attempt).Msg("click intercepted, retrying")
		case isDetached(err):
			if attempt == wait.RetryAttempts {
				return fmt.Errorf("element stayed stale after %d attempts: %w", attempt, err)
			}
			log.Debug().Int("attempt", attempt).Msg("element detached mid-click, retrying")
		default:
			return fmt.Errorf("click failed: %w", err)
		}

		time.Sleep(wait.RetryDelay)
	}

	return lastErr
}

// ClickByScript dispatches a click event from page script, bypassing hit
// testing. Used when a decorative overlay keeps intercepting the pointer.
func ClickByScript(loc playwright.Locator) error {
	if _, err := loc.Evaluate("el => el.click()", nil); err != nil {
		return fmt.Errorf("script click failed: %w", err)
	}
	return nil
}

// Fill clears the element and types text into it, retrying when the node is
// replaced mid-interaction.
func Fill(loc playwright.Locator, text string) error {
	var lastErr error

	for attempt := 1; attempt <= wait.RetryAttempts; attempt++ {
		if err := wait.ForVisible(loc, wait.ElementVisible); err != nil {
			return err
		}

		err := loc.Clear(playwright.LocatorClearOptions{
			Timeout: playwright.Float(attemptMillis),
		})
		if err == nil {
			err = loc.Fill(text, playwright.LocatorFillOptions{
				Timeout: playwright.Float(attemptMillis),
			})
		}
		if err == nil {
			return nil
		}
		lastErr = err

		if !isDetached(err) {
			return fmt.Errorf("fill failed: %w", err)
		}
		log.Debug().Int("attempt", attempt).Msg("element detached mid-fill, retrying")
		time.Sleep(wait.RetryDelay)
	}

	return fmt.Errorf("element stayed stale while typing: %w", lastErr)
}

// Text returns the element's rendered text, falling back to the textContent
// property when the rendered text is empty. Returns "" when the element
// never shows up; reads never fail a journey on their own.
func Text(loc playwright.Locator) string {
	if err := wait.ForVisible(loc, wait.ElementVisible); err != nil {
		return ""
	}

	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(probeMillis),
	})
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}

	content, err := loc.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(probeMillis),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}

// Attr returns an attribute value, or "" when the attribute or element is
// absent.
func Attr(loc playwright.Locator, name string) string {
	value, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(probeMillis),
	})
	if err != nil {
		return ""
	}
	return value
}

// IsDisplayed reports element visibility, false on any driver error.
func IsDisplayed(loc playwright.Locator) bool {
	visible, err := loc.IsVisible()
	return err == nil && visible
}

// IsEnabled reports whether the element accepts input, false on any driver
// error.
func IsEnabled(loc playwright.Locator) bool {
	enabled, err := loc.IsEnabled()
	return err == nil && enabled
}

// IsPresent reports whether the locator matches anything right now.
func IsPresent(loc playwright.Locator) bool {
	return Count(loc) > 0
}

// Count returns the number of matching elements, 0 on error.
func Count(loc playwright.Locator) int {
	count, err := loc.Count()
	if err != nil {
		return 0
	}
	return count
}

// ScrollIntoView centers the element in the viewport and lets the layout
// settle.
func ScrollIntoView(loc playwright.Locator) error {
	if _, err := loc.Evaluate("el => el.scrollIntoView({block: 'center'})", nil); err != nil {
		return fmt.Errorf("scroll into view failed: %w", err)
	}
	time.Sleep(scrollSettle)
	return nil
}

// ScrollToBottom scrolls the whole page down and waits out the settle pause
// lazy loaders need before they start fetching.
func ScrollToBottom(page playwright.Page) error {
	if _, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		return fmt.Errorf("scroll to bottom failed: %w", err)
	}
	time.Sleep(lazyLoadSettle)
	return nil
}

// ScrollToTop scrolls the whole page back up.
func ScrollToTop(page playwright.Page) error {
	if _, err := page.Evaluate("window.scrollTo(0, 0)"); err != nil {
		return fmt.Errorf("scroll to top failed: %w", err)
	}
	time.Sleep(scrollSettle)
	return nil
}

// Hover moves the pointer onto the element.
func Hover(loc playwright.Locator) error {
	if err := loc.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(attemptMillis),
	}); err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}
	time.Sleep(scrollSettle)
	return nil
}

// DoubleClick double-clicks the element.
func DoubleClick(loc playwright.Locator) error {
	if err := loc.Dblclick(playwright.LocatorDblclickOptions{
		Timeout: playwright.Float(attemptMillis),
	}); err != nil {
		return fmt.Errorf("double click failed: %w", err)
	}
	return nil
}

// SelectByLabel selects a dropdown option by its visible label.
func SelectByLabel(loc playwright.Locator, label string) error {
	_, err := loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	if err != nil {
		return fmt.Errorf("select by label %q failed: %w", label, err)
	}
	return nil
}

// SelectByValue selects a dropdown option by its value attribute.
func SelectByValue(loc playwright.Locator, value string) error {
	_, err := loc.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("select by value %q failed: %w", value, err)
	}
	return nil
}

// SelectByIndex selects a dropdown option by position.
func SelectByIndex(loc playwright.Locator, index int) error {
	_, err := loc.SelectOption(playwright.SelectOptionValues{
		Indexes: &[]int{index},
	})
	if err != nil {
		return fmt.Errorf("select by index %d failed: %w", index, err)
	}
	return nil
}

// isInterception recognizes the driver's report of another element stealing
// the pointer.
func isInterception(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "intercepts pointer events")
}

// isDetached recognizes handles to nodes the page script has replaced.
func isDetached(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not attached") || strings.Contains(msg, "detached")
}
