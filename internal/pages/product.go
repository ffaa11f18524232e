package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/trendops/storecheck/internal/browser"
	"github.com/trendops/storecheck/internal/interact"
	"github.com/trendops/storecheck/internal/turkish"
	"github.com/trendops/storecheck/internal/wait"
)

const (
	productTitleSelector = "h1[data-testid='product-title']"
	productBrandSelector = "h1[data-testid='product-title'] strong"
	detailPriceSelector  = ".price-view .discounted"
	productImageSelector = "img[data-testid='image']"
	addToCartSelector    = "button[data-testid='add-to-cart-button']"

	addedToCartText = "Sepete Eklendi"
	outOfStockText  = "Tükendi"
)

// ProductDetail models the product page, usually open in its own tab after
// a card click on the results grid.
type ProductDetail struct {
	Base
}

// NewProductDetail binds a ProductDetail page object to an open browser
// page, typically the tab a product card click spawned.
func NewProductDetail(page playwright.Page, baseURL string) *ProductDetail {
	return &ProductDetail{Base{page: page, baseURL: baseURL}}
}

// IsLoaded reports whether the browser sits on a product detail URL.
func (p *ProductDetail) IsLoaded() bool {
	return strings.Contains(p.CurrentURL(), productPathMarker)
}

// WaitForLoad blocks until the product page has rendered its title.
func (p *ProductDetail) WaitForLoad() error {
	if err := wait.ForPageReady(p.page, wait.PageLoad); err != nil {
		return err
	}
	if err := wait.ForVisible(p.page.Locator(productTitleSelector), wait.ElementVisible); err != nil {
		return fmt.Errorf("product title did not appear: %w", err)
	}
	return nil
}

// Title returns the full product heading, brand included.
func (p *ProductDetail) Title() string {
	return turkish.CleanSpace(interact.Text(p.page.Locator(productTitleSelector)))
}

// Brand returns the brand part of the product heading.
func (p *ProductDetail) Brand() string {
	return interact.Text(p.page.Locator(productBrandSelector))
}

// Price returns the displayed price label.
func (p *ProductDetail) Price() string {
	return interact.Text(p.page.Locator(detailPriceSelector))
}

// PriceValue parses the displayed price into a numeric amount.
func (p *ProductDetail) PriceValue() (float64, error) {
	return turkish.ParsePrice(p.Price())
}

// ImageURL returns the source of the main product image.
func (p *ProductDetail) ImageURL() string {
	return interact.Attr(p.page.Locator(productImageSelector), "src")
}

// AddToCart clicks the add to cart button and waits for the cart update
// round trip to finish. Whether the add stuck is read separately through
// AddedToCartShown, since an out of stock product keeps the button inert.
func (p *ProductDetail) AddToCart() error {
	button := p.page.Locator(addToCartSelector)
	if err := interact.Click(button); err != nil {
		return fmt.Errorf("failed to add product to cart: %w", err)
	}
	return wait.ForAjaxIdle(p.page, wait.Ajax)
}

// AddedToCartShown reports whether the button flipped to its added state
// within the cart update window.
func (p *ProductDetail) AddedToCartShown() bool {
	button := p.page.Locator(addToCartSelector)
	return wait.ForText(button, addedToCartText, wait.CartUpdate) == nil
}

// OutOfStock reports whether the product cannot be bought, either through
// a disabled button or an out of stock label on it.
func (p *ProductDetail) OutOfStock() bool {
	button := p.page.Locator(addToCartSelector)
	if interact.IsPresent(button) && !interact.IsEnabled(button) {
		return true
	}
	return turkish.ContainsFold(interact.Text(button), outOfStockText)
}

// GoToCart navigates this tab to the basket page and hands back its page
// object.
func (p *ProductDetail) GoToCart() (*Cart, error) {
	cart := NewCart(p.page, p.baseURL)
	if err := cart.Open(); err != nil {
		return nil, err
	}
	return cart, nil
}

// CloseAndReturn closes the product tab and brings the original tab back
// to the front, returning its page handle.
func (p *ProductDetail) CloseAndReturn(tabs *browser.Tabs) (playwright.Page, error) {
	return tabs.CloseCurrentAndReturn(p.page)
}
