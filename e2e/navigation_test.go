package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendops/storecheck/internal/pages"
)

// TestHomePopupsDismissed tests the landing page overlays
// Feature: Storefront navigation
//
//	As a shopper
//	I want overlays out of the way and product pages reachable
//	So that I can browse without manual cleanup
func TestHomePopupsDismissed(t *testing.T) {
	defer failShot(t)

	// Scenario: Opening the homepage clears its popups
	//   Given the storefront greets me with a gender modal and cookie banner
	//   When the homepage finishes opening
	//   Then neither overlay should remain on screen
	home := openHome(t)

	assert.False(t, home.GenderModalShown(), "gender modal should be dismissed")
	assert.False(t, home.CookieBannerShown(), "cookie banner should be dismissed")
	assert.True(t, home.IsLoaded(), "homepage should be usable after dismissal")
	assert.Contains(t, home.SearchPlaceholder(), "Aradığınız ürün",
		"search box should invite a query")
}

// TestProductOpensInNewTab tests the card click tab behavior
func TestProductOpensInNewTab(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: A result card opens its detail page in a new tab
	//   Given I searched for "laptop"
	//   When I open the first result
	//   Then a second tab should show the product detail page
	results := searchFor(t, "laptop")
	tabs := session.Tabs()
	require.Equal(t, 1, tabs.Count(), "suite should start on a single tab")

	detail := openProduct(t, results, 0)

	assert.Equal(t, 2, tabs.Count())
	assert.Contains(t, detail.CurrentURL(), "-p-", "detail URL should carry the product marker")
	assert.True(t, detail.IsLoaded())
}

// TestProductDetailShowsBuyBox tests the detail page content
func TestProductDetailShowsBuyBox(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: The detail page shows everything needed to buy
	//   When I open the first "laptop" result
	//   Then I should see the title, brand, a Turkish price and the add button
	results := searchFor(t, "laptop")
	detail := openProduct(t, results, 0)

	assert.NotEmpty(t, detail.Title(), "product title should be shown")
	assert.NotEmpty(t, detail.Brand(), "brand should be shown")
	assert.Contains(t, detail.Price(), "TL", "price should carry the currency")

	price, err := detail.PriceValue()
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)

	assert.False(t, detail.OutOfStock(), "first result should be buyable")
}

// TestMultipleProductsMultipleTabs tests opening several details in a row
func TestMultipleProductsMultipleTabs(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Each opened product gets its own tab
	//   Given I searched for "laptop"
	//   When I open two different results
	//   Then three tabs should be open, one per detail plus the listing
	results := searchFor(t, "laptop")
	tabs := session.Tabs()

	openProduct(t, results, 0)

	_, err := tabs.SwitchToFirst()
	require.NoError(t, err)
	session.SetCurrent(tabs.First())

	openProduct(t, results, 1)
	assert.Equal(t, 3, tabs.Count())
}

// TestClosingTabReturnsToResults tests listing state after a detail visit
func TestClosingTabReturnsToResults(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Closing the detail tab lands back on intact results
	//   Given I opened a product from the "laptop" listing
	//   When I close its tab
	//   Then the original listing should still show its cards
	results := searchFor(t, "laptop")
	wantCount := results.VisibleProductCount()

	detail := openProduct(t, results, 0)

	first, err := detail.CloseAndReturn(session.Tabs())
	require.NoError(t, err)
	session.SetCurrent(first)

	require.Equal(t, 1, session.Tabs().Count())
	assert.True(t, results.HasResults(), "listing should survive the detour")
	assert.Equal(t, wantCount, results.VisibleProductCount())
	assert.True(t, strings.Contains(results.CurrentURL(), "/sr"), "should still be on the listing URL")
}

// TestScrollingLoadsMoreCards tests the infinite scroll batches
func TestScrollingLoadsMoreCards(t *testing.T) {
	defer failShot(t)

	// Scenario: Scrolling the listing appends further card batches
	//   Given the "laptop" listing shows its first batch
	//   When I scroll to the bottom a few times
	//   Then more cards should be attached than before
	results := searchFor(t, "laptop")
	before := results.VisibleProductCount()
	require.Greater(t, before, 0)

	require.NoError(t, results.ScrollToLoadMore(2))

	require.Eventually(t, func() bool {
		return results.VisibleProductCount() > before
	}, 30*time.Second, 500*time.Millisecond, "scrolling should append more cards")
}

// TestBackFromCategoryKeepsStoreUsable tests top navigation round trips
func TestBackFromCategoryKeepsStoreUsable(t *testing.T) {
	defer failShot(t)

	// Scenario: A category detour and browser back keep the store usable
	//   Given I opened the "Elektronik" category from the homepage
	//   When I navigate back
	//   Then the homepage should be loaded again
	home := openHome(t)
	require.Contains(t, home.CategoryNames(), "Elektronik")
	require.NoError(t, home.OpenCategory("elektronik"))

	listing := pages.NewSearchResults(session.Page(), baseURL)
	require.NoError(t, listing.WaitForProducts())
	assert.GreaterOrEqual(t, listing.ResultCount(), 10000,
		"category listings should report a large catalog")

	require.NoError(t, home.Back())
	assert.True(t, home.IsLoaded(), "homepage should be restored by history navigation")
}
