// Package journey defines the scripted user flows the framework drives
// through a storefront and the runner that executes and records them.
package journey

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/trendops/storecheck/internal/browser"
	"github.com/trendops/storecheck/internal/config"
	"github.com/trendops/storecheck/internal/pages"
)

// Journey is one scripted user flow with a stable name used for selection
// and reporting
type Journey struct {
	Name        string
	Description string
	Run         func(*Context) error
}

// Context carries what a journey needs while it runs: the live browser
// session, the storefront under test and a logger scoped to the run. Page
// objects are built on demand so they always wrap the session's current tab.
type Context struct {
	Session *browser.Session
	Target  config.TargetConfig
	Log     zerolog.Logger
}

// Home returns a home page object bound to the current tab
func (c *Context) Home() *pages.Home {
	return pages.NewHome(c.Session.Page(), c.Target.BaseURL)
}

// SearchResults returns a search results page object bound to the current tab
func (c *Context) SearchResults() *pages.SearchResults {
	return pages.NewSearchResults(c.Session.Page(), c.Target.BaseURL)
}

// ProductDetail returns a product detail page object bound to the current tab
func (c *Context) ProductDetail() *pages.ProductDetail {
	return pages.NewProductDetail(c.Session.Page(), c.Target.BaseURL)
}

// Cart returns a cart page object bound to the current tab
func (c *Context) Cart() *pages.Cart {
	return pages.NewCart(c.Session.Page(), c.Target.BaseURL)
}

// Select resolves journey names against the built-in set. An empty selection
// means all journeys in their default order.
func Select(names []string) ([]Journey, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]Journey, len(all))
	available := make([]string, 0, len(all))
	for _, j := range all {
		byName[j.Name] = j
		available = append(available, j.Name)
	}

	selected := make([]Journey, 0, len(names))
	for _, name := range names {
		j, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown journey %q (available: %s)", name, strings.Join(available, ", "))
		}
		selected = append(selected, j)
	}
	return selected, nil
}
