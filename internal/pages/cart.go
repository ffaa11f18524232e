package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/trendops/storecheck/internal/interact"
	"github.com/trendops/storecheck/internal/turkish"
	"github.com/trendops/storecheck/internal/wait"
)

const (
	cartItemSelector      = ".merchant-item-container"
	cartItemNameSelector  = ".product-name"
	cartItemBrandSelector = ".product-brand-name"
	cartItemPriceSelector = ".basket-product-price-text"

	quantityInputSelector    = "input[data-testid='quantity-selector']"
	quantityIncreaseSelector = "button[data-testid='quantity-button-increment']"
	quantityDecreaseSelector = "button[data-testid='quantity-button-decrement']"
	removeItemSelector       = ".remove-item-container"
	cartTotalSelector        = ".order-total .price"
	cartSubtotalSelector     = "[data-testid='basket-summary-subtotal-value']"
	cartShippingSelector     = "[data-testid='basket-summary-cargo-value']"
	checkoutButtonSelector   = "button[data-testid='checkout-button']"
	emptyCartMessageSelector = ".empty-basket-container p"

	// EmptyCartMessage is the storefront's wording on an empty basket page.
	EmptyCartMessage = "Sepetinde ürün bulunmamaktadır."
)

// Cart models the basket page: its line items, the quantity controls and
// the order summary.
type Cart struct {
	Base
}

// NewCart binds a Cart page object to an open browser page.
func NewCart(page playwright.Page, baseURL string) *Cart {
	return &Cart{Base{page: page, baseURL: baseURL}}
}

// Open navigates to the basket page and waits for it to settle.
func (c *Cart) Open() error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(wait.PageLoad.Milliseconds())),
	}
	if _, err := c.page.Goto(CartURL(c.baseURL), opts); err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}
	return wait.ForPageReady(c.page, wait.PageLoad)
}

// IsLoaded reports whether the browser sits on the basket URL.
func (c *Cart) IsLoaded() bool {
	return strings.Contains(c.CurrentURL(), CartPath)
}

// IsEmpty reports whether the basket shows its empty state.
func (c *Cart) IsEmpty() bool {
	if interact.IsDisplayed(c.page.Locator(emptyCartMessageSelector)) {
		return true
	}
	return c.ItemCount() == 0
}

// EmptyMessage returns the empty basket notice text.
func (c *Cart) EmptyMessage() string {
	return interact.Text(c.page.Locator(emptyCartMessageSelector))
}

// ItemCount returns how many line items the basket holds.
func (c *Cart) ItemCount() int {
	return interact.Count(c.page.Locator(cartItemSelector))
}

// ItemName returns the product name of the line item at index.
func (c *Cart) ItemName(index int) (string, error) {
	item, err := c.item(index)
	if err != nil {
		return "", err
	}
	name := turkish.CleanSpace(interact.Text(item.Locator(cartItemNameSelector)))
	if name == "" {
		return "", fmt.Errorf("cart item %d has no readable name", index)
	}
	return name, nil
}

// ItemBrand returns the brand of the line item at index.
func (c *Cart) ItemBrand(index int) (string, error) {
	item, err := c.item(index)
	if err != nil {
		return "", err
	}
	return interact.Text(item.Locator(cartItemBrandSelector)), nil
}

// ItemPrice returns the price label of the line item at index.
func (c *Cart) ItemPrice(index int) (string, error) {
	item, err := c.item(index)
	if err != nil {
		return "", err
	}
	price := interact.Text(item.Locator(cartItemPriceSelector))
	if price == "" {
		return "", fmt.Errorf("cart item %d has no price", index)
	}
	return price, nil
}

// ItemPriceValue parses the line item price at index into a numeric
// amount.
func (c *Cart) ItemPriceValue(index int) (float64, error) {
	label, err := c.ItemPrice(index)
	if err != nil {
		return 0, err
	}
	return turkish.ParsePrice(label)
}

// Quantity returns the quantity of the line item at index.
func (c *Cart) Quantity(index int) (int, error) {
	item, err := c.item(index)
	if err != nil {
		return 0, err
	}
	value, err := item.Locator(quantityInputSelector).InputValue()
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity of item %d: %w", index, err)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("quantity of item %d is not a number: %q", index, value)
	}
	return quantity, nil
}

// IncreaseQuantity bumps the quantity of the line item at index by one and
// waits for the basket to update.
func (c *Cart) IncreaseQuantity(index int) error {
	before, err := c.Quantity(index)
	if err != nil {
		return err
	}
	item, err := c.item(index)
	if err != nil {
		return err
	}
	if err := interact.Click(item.Locator(quantityIncreaseSelector)); err != nil {
		return fmt.Errorf("failed to increase quantity of item %d: %w", index, err)
	}
	return c.waitForQuantity(index, before+1)
}

// DecreaseQuantity lowers the quantity of the line item at index by one.
// A quantity of one is the floor: the call is a no-op there, removal goes
// through RemoveItem instead.
func (c *Cart) DecreaseQuantity(index int) error {
	before, err := c.Quantity(index)
	if err != nil {
		return err
	}
	if before <= 1 {
		log.Debug().Int("item", index).Msg("quantity already at floor, skipping decrease")
		return nil
	}
	item, err := c.item(index)
	if err != nil {
		return err
	}
	if err := interact.Click(item.Locator(quantityDecreaseSelector)); err != nil {
		return fmt.Errorf("failed to decrease quantity of item %d: %w", index, err)
	}
	return c.waitForQuantity(index, before-1)
}

// SetQuantity steps the quantity of the line item at index up or down
// until it matches target.
func (c *Cart) SetQuantity(index, target int) error {
	if target < 1 {
		return fmt.Errorf("target quantity must be at least 1, got %d", target)
	}
	current, err := c.Quantity(index)
	if err != nil {
		return err
	}
	for steps := 0; current != target; steps++ {
		if steps > target+current {
			return fmt.Errorf("quantity of item %d stuck at %d, wanted %d", index, current, target)
		}
		if current < target {
			err = c.IncreaseQuantity(index)
		} else {
			err = c.DecreaseQuantity(index)
		}
		if err != nil {
			return err
		}
		if current, err = c.Quantity(index); err != nil {
			return err
		}
	}
	return nil
}

// RemoveItem removes the line item at index and waits for the basket to
// shrink. Indexes shift down after a removal, so callers clearing several
// items remove index zero repeatedly.
func (c *Cart) RemoveItem(index int) error {
	before := c.ItemCount()
	item, err := c.item(index)
	if err != nil {
		return err
	}
	if err := interact.Click(item.Locator(removeItemSelector)); err != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", index, err)
	}
	items := c.page.Locator(cartItemSelector)
	return wait.For(func() (bool, error) {
		if interact.Count(items) < before {
			return true, nil
		}
		return interact.IsDisplayed(c.page.Locator(emptyCartMessageSelector)), nil
	}, wait.CartUpdate, "cart item removal to apply")
}

// RemoveAll clears the basket one line item at a time.
func (c *Cart) RemoveAll() error {
	for c.ItemCount() > 0 {
		if err := c.RemoveItem(0); err != nil {
			return err
		}
	}
	return nil
}

// Total returns the order total label from the summary box.
func (c *Cart) Total() string {
	return interact.Text(c.page.Locator(cartTotalSelector))
}

// TotalValue parses the order total into a numeric amount.
func (c *Cart) TotalValue() (float64, error) {
	return turkish.ParsePrice(c.Total())
}

// Subtotal returns the products subtotal label from the summary box.
func (c *Cart) Subtotal() string {
	return interact.Text(c.page.Locator(cartSubtotalSelector))
}

// SubtotalValue parses the products subtotal into a numeric amount.
func (c *Cart) SubtotalValue() (float64, error) {
	return turkish.ParsePrice(c.Subtotal())
}

// Shipping returns the shipping cost label from the summary box.
func (c *Cart) Shipping() string {
	return interact.Text(c.page.Locator(cartShippingSelector))
}

// ShippingValue parses the shipping cost into a numeric amount.
func (c *Cart) ShippingValue() (float64, error) {
	return turkish.ParsePrice(c.Shipping())
}

// Checkout clicks the checkout button and waits until the browser leaves
// the basket page. Without a signed in session the storefront lands on the
// login page, which still counts as having left.
func (c *Cart) Checkout() error {
	if err := interact.Click(c.page.Locator(checkoutButtonSelector)); err != nil {
		return fmt.Errorf("failed to click checkout: %w", err)
	}
	return wait.For(func() (bool, error) {
		return !strings.Contains(c.CurrentURL(), CartPath), nil
	}, wait.Checkout, "browser to leave the cart page")
}

func (c *Cart) item(index int) (playwright.Locator, error) {
	items := c.page.Locator(cartItemSelector)
	count := interact.Count(items)
	if index < 0 || index >= count {
		return nil, fmt.Errorf("cart item index %d out of range, %d items present", index, count)
	}
	return items.Nth(index), nil
}

func (c *Cart) waitForQuantity(index, want int) error {
	return wait.For(func() (bool, error) {
		got, err := c.Quantity(index)
		if err != nil {
			return false, nil
		}
		return got == want, nil
	}, wait.CartUpdate, fmt.Sprintf("item %d quantity to become %d", index, want))
}
