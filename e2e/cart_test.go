package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendops/storecheck/internal/pages"
	"github.com/trendops/storecheck/internal/turkish"
)

// resetCart empties the basket so leftovers from earlier tests cannot skew
// counts. The session cookie is shared across the whole suite.
func resetCart(t *testing.T) {
	t.Helper()
	cart := pages.NewCart(session.Page(), baseURL)
	require.NoError(t, cart.Open())
	if !cart.IsEmpty() {
		require.NoError(t, cart.RemoveAll())
	}
}

// seedCart puts exactly one product in the basket and lands on the cart
// page, returning both the cart and the product title it was seeded with.
func seedCart(t *testing.T) (*pages.Cart, string) {
	t.Helper()
	resetCart(t)

	results := searchFor(t, "laptop")
	detail := openProduct(t, results, 0)
	title := detail.Title()

	require.NoError(t, detail.AddToCart())
	require.True(t, detail.AddedToCartShown(), "add to cart should confirm")

	cart, err := detail.GoToCart()
	require.NoError(t, err)
	require.Equal(t, 1, cart.ItemCount(), "basket should hold the seeded item")
	return cart, title
}

// TestAddToCartShowsItem tests the add to cart round trip
// Feature: Basket management
//
//	As a shopper
//	I want products I add to show up in my basket with correct totals
//	So that I can check my order before buying
func TestAddToCartShowsItem(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: An added product appears as a basket line item
	//   Given I am on a product detail page
	//   When I add the product to the basket and open it
	//   Then the basket should list that product
	cart, title := seedCart(t)

	require.False(t, cart.IsEmpty())

	itemName, err := cart.ItemName(0)
	require.NoError(t, err)
	assert.True(t, turkish.ContainsFold(title, itemName),
		"basket line %q should match the product %q", itemName, title)

	brand, err := cart.ItemBrand(0)
	require.NoError(t, err)
	assert.NotEmpty(t, brand, "basket line should carry the brand")
}

// TestQuantityControlsUpdateTotals tests the plus and minus buttons
func TestQuantityControlsUpdateTotals(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Quantity changes move the order summary
	//   Given my basket holds one product
	//   When I bump its quantity up and back down
	//   Then the quantity field and subtotal should follow each step
	cart, _ := seedCart(t)

	subtotalBefore, err := cart.SubtotalValue()
	require.NoError(t, err)

	require.NoError(t, cart.IncreaseQuantity(0))
	quantity, err := cart.Quantity(0)
	require.NoError(t, err)
	assert.Equal(t, 2, quantity)

	subtotalAfter, err := cart.SubtotalValue()
	require.NoError(t, err)
	assert.Greater(t, subtotalAfter, subtotalBefore,
		"subtotal should grow with the quantity")

	require.NoError(t, cart.DecreaseQuantity(0))
	quantity, err = cart.Quantity(0)
	require.NoError(t, err)
	assert.Equal(t, 1, quantity)
}

// TestSetQuantityMultipliesLineTotal tests stepping straight to a quantity
func TestSetQuantityMultipliesLineTotal(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Setting a quantity scales the line total
	//   Given my basket holds one unit of a product
	//   When I set its quantity to three
	//   Then the line total should be three times the unit price
	cart, _ := seedCart(t)

	unitPrice, err := cart.ItemPriceValue(0)
	require.NoError(t, err)

	require.NoError(t, cart.SetQuantity(0, 3))

	quantity, err := cart.Quantity(0)
	require.NoError(t, err)
	require.Equal(t, 3, quantity)

	linePrice, err := cart.ItemPriceValue(0)
	require.NoError(t, err)
	assert.InDelta(t, 3*unitPrice, linePrice, 0.01,
		"line total should scale with the quantity")
}

// TestDecreaseFloorsAtOne tests the minus button on a single unit
func TestDecreaseFloorsAtOne(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Quantity one is the floor
	//   Given my basket holds one unit of a product
	//   When I press the minus button
	//   Then the quantity should stay at one instead of removing the item
	cart, _ := seedCart(t)

	require.NoError(t, cart.DecreaseQuantity(0))

	quantity, err := cart.Quantity(0)
	require.NoError(t, err)
	assert.Equal(t, 1, quantity)
	assert.Equal(t, 1, cart.ItemCount())
}

// TestRemoveOnlyItemEmptiesCart tests removal down to the empty state
func TestRemoveOnlyItemEmptiesCart(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Removing the last item shows the empty basket notice
	cart, _ := seedCart(t)

	require.NoError(t, cart.RemoveItem(0))

	require.True(t, cart.IsEmpty(), "basket should be empty after removal")
	assert.Equal(t, pages.EmptyCartMessage, cart.EmptyMessage())
}

// TestTotalsParseAsTurkishCurrency tests the order summary formatting
func TestTotalsParseAsTurkishCurrency(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Summary amounts are Turkish formatted and consistent
	//   Given my basket holds one product
	//   Then subtotal, shipping and total should parse and add up
	cart, _ := seedCart(t)

	assert.Contains(t, cart.Subtotal(), "TL")

	subtotal, err := cart.SubtotalValue()
	require.NoError(t, err)
	assert.Greater(t, subtotal, 0.0)

	shipping, err := cart.ShippingValue()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, shipping, 0.0)

	total, err := cart.TotalValue()
	require.NoError(t, err)
	assert.InDelta(t, subtotal+shipping, total, 0.01,
		"total should be subtotal plus shipping")

	linePrice, err := cart.ItemPriceValue(0)
	require.NoError(t, err)
	assert.Greater(t, linePrice, 0.0)
}

// TestCheckoutLeavesCart tests the checkout handoff
func TestCheckoutLeavesCart(t *testing.T) {
	defer closeExtraTabs(t)
	defer failShot(t)

	// Scenario: Confirming the basket moves past the cart page
	//   Given my basket holds one product
	//   When I press the confirm button
	//   Then the browser should leave the basket for the sign in page
	cart, _ := seedCart(t)

	require.NoError(t, cart.Checkout())

	url := cart.CurrentURL()
	assert.False(t, strings.Contains(url, pages.CartPath), "checkout should leave the basket page")
	assert.True(t, strings.Contains(url, pages.LoginPath), "guests are sent to sign in first")

	title, err := cart.Title()
	require.NoError(t, err)
	assert.True(t, turkish.ContainsFold(title, "giriş yap"),
		"sign in page title %q expected", title)
}
