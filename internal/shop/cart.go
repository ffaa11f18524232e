package shop

import (
	"sync"

	"github.com/trendops/storecheck/internal/turkish"
)

// Shipping costs a flat fee until the free shipping threshold.
const (
	shippingCents         int64 = 4999
	freeShippingFromCents int64 = 200000
)

// CartItem is one line in a session basket
type CartItem struct {
	Product  Product
	Quantity int
}

// LineTotalCents returns quantity times unit price
func (i CartItem) LineTotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

// LineTotalLabel renders the line total the way the basket prints it
func (i CartItem) LineTotalLabel() string {
	return turkish.FormatPrice(float64(i.LineTotalCents()) / 100)
}

// CartStore keeps per session baskets in memory
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]CartItem
}

// NewCartStore creates an empty cart store
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string][]CartItem),
	}
}

// Items returns a copy of the basket for a session
func (s *CartStore) Items(session string) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]CartItem, len(s.carts[session]))
	copy(items, s.carts[session])
	return items
}

// Add puts a product into the basket, bumping the quantity when the line
// already exists
func (s *CartStore) Add(session string, product Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[session]
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity++
			return
		}
	}
	s.carts[session] = append(items, CartItem{Product: product, Quantity: 1})
}

// SetQuantity changes the quantity of a line, one is the floor
func (s *CartStore) SetQuantity(session, productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[session]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops a line from the basket
func (s *CartStore) Remove(session, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[session]
	for i := range items {
		if items[i].Product.ID == productID {
			s.carts[session] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// Count returns how many lines the basket holds
func (s *CartStore) Count(session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[session])
}

// CartTotals aggregates the summary box amounts in cents
type CartTotals struct {
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
}

// Totals computes the summary for a session basket
func (s *CartStore) Totals(session string) CartTotals {
	items := s.Items(session)
	var totals CartTotals
	for _, item := range items {
		totals.SubtotalCents += item.LineTotalCents()
	}
	if len(items) > 0 && totals.SubtotalCents < freeShippingFromCents {
		totals.ShippingCents = shippingCents
	}
	totals.TotalCents = totals.SubtotalCents + totals.ShippingCents
	return totals
}

// SubtotalLabel renders the products subtotal
func (t CartTotals) SubtotalLabel() string {
	return turkish.FormatPrice(float64(t.SubtotalCents) / 100)
}

// ShippingLabel renders the shipping cost
func (t CartTotals) ShippingLabel() string {
	return turkish.FormatPrice(float64(t.ShippingCents) / 100)
}

// TotalLabel renders the order total
func (t CartTotals) TotalLabel() string {
	return turkish.FormatPrice(float64(t.TotalCents) / 100)
}
