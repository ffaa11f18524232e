package journey

import (
	"fmt"

	"github.com/trendops/storecheck/internal/pages"
	"github.com/trendops/storecheck/internal/turkish"
	"github.com/trendops/storecheck/internal/wait"
)

// All returns the built-in journeys in their default execution order
func All() []Journey {
	return []Journey{
		{
			Name:        "search-laptop",
			Description: "search the configured keyword and check the result listing",
			Run:         runSearch,
		},
		{
			Name:        "product-new-tab",
			Description: "open a product card and check the detail page in its new tab",
			Run:         runProductNewTab,
		},
		{
			Name:        "add-to-cart",
			Description: "put a product into the basket and check it on the cart page",
			Run:         runAddToCart,
		},
		{
			Name:        "cart-totals",
			Description: "check the basket totals parse as Turkish currency and add up",
			Run:         runCartTotals,
		},
		{
			Name:        "popup-dismiss",
			Description: "dismiss the gender modal and cookie banner and check they stay gone",
			Run:         runPopupDismiss,
		},
	}
}

// runSearch drives the plain search path: home, keyword, result listing with
// named and priced cards.
func runSearch(ctx *Context) error {
	home := ctx.Home()
	if err := home.Open(); err != nil {
		return err
	}

	keyword := ctx.Target.SearchKeyword
	results, err := home.Search(keyword)
	if err != nil {
		return err
	}
	if err := results.WaitForProducts(); err != nil {
		return err
	}

	if count := results.ResultCount(); count < 1 {
		return fmt.Errorf("result count for %q not shown", keyword)
	}
	visible := results.VisibleProductCount()
	if visible < 1 {
		return fmt.Errorf("no product cards rendered for %q", keyword)
	}

	name, err := results.ProductName(0)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("first product card has no name")
	}
	price, err := results.ProductPriceValue(0)
	if err != nil {
		return err
	}
	if price <= 0 {
		return fmt.Errorf("first product price %.2f is not positive", price)
	}

	ctx.Log.Info().
		Str("keyword", keyword).
		Int("visible", visible).
		Str("first_product", name).
		Msg("search listing checked")
	return nil
}

// runProductNewTab opens the first card, which targets a new tab, checks the
// detail page there and returns to the intact listing.
func runProductNewTab(ctx *Context) error {
	results, err := searchForProducts(ctx)
	if err != nil {
		return err
	}

	tabs := ctx.Session.Tabs()
	before := tabs.Count()

	if err := results.OpenProduct(0); err != nil {
		return err
	}
	if err := tabs.WaitForCount(before+1, wait.Medium); err != nil {
		return err
	}
	page, err := tabs.SwitchToLatest()
	if err != nil {
		return err
	}
	ctx.Session.SetCurrent(page)

	detail := ctx.ProductDetail()
	if err := detail.WaitForLoad(); err != nil {
		return err
	}
	if !detail.IsLoaded() {
		return fmt.Errorf("detail tab address %q has no product path", detail.CurrentURL())
	}
	if detail.Title() == "" {
		return fmt.Errorf("product title not shown")
	}
	if _, err := detail.PriceValue(); err != nil {
		return fmt.Errorf("product price %q does not parse: %w", detail.Price(), err)
	}

	first, err := detail.CloseAndReturn(tabs)
	if err != nil {
		return err
	}
	ctx.Session.SetCurrent(first)

	if !ctx.SearchResults().HasResults() {
		return fmt.Errorf("result listing lost after closing the detail tab")
	}

	ctx.Log.Info().Msg("product detail opened in a new tab and closed cleanly")
	return nil
}

// runAddToCart walks a product from the listing into the basket and checks
// the line on the cart page.
func runAddToCart(ctx *Context) error {
	detail, err := openFirstProduct(ctx)
	if err != nil {
		return err
	}

	if detail.OutOfStock() {
		return fmt.Errorf("first product %q is out of stock", detail.Title())
	}
	title := detail.Title()

	if err := detail.AddToCart(); err != nil {
		return err
	}
	if !detail.AddedToCartShown() {
		return fmt.Errorf("add to cart confirmation not shown for %q", title)
	}

	cart, err := detail.GoToCart()
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return fmt.Errorf("basket empty after adding %q", title)
	}

	itemName, err := cart.ItemName(0)
	if err != nil {
		return err
	}
	if !turkish.ContainsFold(title, itemName) {
		return fmt.Errorf("basket line %q does not match the added product %q", itemName, title)
	}

	ctx.Log.Info().
		Str("product", title).
		Int("items", cart.ItemCount()).
		Msg("product landed in the basket")
	return nil
}

// runCartTotals seeds the basket with one product and checks the summary
// amounts parse as Turkish currency and add up.
func runCartTotals(ctx *Context) error {
	detail, err := openFirstProduct(ctx)
	if err != nil {
		return err
	}
	if detail.OutOfStock() {
		return fmt.Errorf("first product %q is out of stock", detail.Title())
	}
	if err := detail.AddToCart(); err != nil {
		return err
	}
	if !detail.AddedToCartShown() {
		return fmt.Errorf("add to cart confirmation not shown")
	}

	cart := ctx.Cart()
	if err := cart.Open(); err != nil {
		return err
	}
	if cart.IsEmpty() {
		return fmt.Errorf("basket empty, nothing to total")
	}

	linePrice, err := cart.ItemPriceValue(0)
	if err != nil {
		return err
	}
	if linePrice <= 0 {
		return fmt.Errorf("basket line price %.2f is not positive", linePrice)
	}

	subtotal, err := cart.SubtotalValue()
	if err != nil {
		return err
	}
	shipping, err := cart.ShippingValue()
	if err != nil {
		return err
	}
	total, err := cart.TotalValue()
	if err != nil {
		return err
	}

	if subtotal <= 0 {
		return fmt.Errorf("subtotal %.2f is not positive", subtotal)
	}
	if total <= 0 {
		return fmt.Errorf("total %.2f is not positive", total)
	}
	if diff := total - (subtotal + shipping); diff > 0.01 || diff < -0.01 {
		return fmt.Errorf("totals do not add up: %.2f + %.2f != %.2f", subtotal, shipping, total)
	}

	ctx.Log.Info().
		Float64("subtotal", subtotal).
		Float64("shipping", shipping).
		Float64("total", total).
		Msg("basket totals checked")
	return nil
}

// runPopupDismiss checks that the first-visit overlays get cleared and that
// the page is usable afterwards, also across a reload.
func runPopupDismiss(ctx *Context) error {
	home := ctx.Home()
	if err := home.Open(); err != nil {
		return err
	}
	if home.GenderModalShown() {
		return fmt.Errorf("gender modal still on screen after dismissal")
	}
	if home.CookieBannerShown() {
		return fmt.Errorf("cookie banner still on screen after dismissal")
	}

	if err := home.Refresh(); err != nil {
		return err
	}
	home.DismissPopups()
	if home.GenderModalShown() {
		return fmt.Errorf("gender modal came back after reload")
	}

	if !home.IsLoaded() {
		return fmt.Errorf("home page not usable after dismissing popups")
	}
	if err := home.TypeSearch(ctx.Target.SearchKeyword); err != nil {
		return err
	}
	value, err := home.SearchBoxValue()
	if err != nil {
		return err
	}
	if !turkish.EqualFold(value, ctx.Target.SearchKeyword) {
		return fmt.Errorf("search box kept %q after typing %q", value, ctx.Target.SearchKeyword)
	}

	ctx.Log.Info().Msg("overlays dismissed and page usable")
	return nil
}

// searchForProducts runs the shared preamble: open home, search the
// configured keyword, wait for the listing.
func searchForProducts(ctx *Context) (*pages.SearchResults, error) {
	home := ctx.Home()
	if err := home.Open(); err != nil {
		return nil, err
	}
	results, err := home.Search(ctx.Target.SearchKeyword)
	if err != nil {
		return nil, err
	}
	if err := results.WaitForProducts(); err != nil {
		return nil, err
	}
	return results, nil
}

// openFirstProduct searches and opens the first card, landing the session on
// the detail tab.
func openFirstProduct(ctx *Context) (*pages.ProductDetail, error) {
	results, err := searchForProducts(ctx)
	if err != nil {
		return nil, err
	}

	tabs := ctx.Session.Tabs()
	before := tabs.Count()
	if err := results.OpenProduct(0); err != nil {
		return nil, err
	}
	if err := tabs.WaitForCount(before+1, wait.Medium); err != nil {
		return nil, err
	}
	page, err := tabs.SwitchToLatest()
	if err != nil {
		return nil, err
	}
	ctx.Session.SetCurrent(page)

	detail := ctx.ProductDetail()
	if err := detail.WaitForLoad(); err != nil {
		return nil, err
	}
	return detail, nil
}
