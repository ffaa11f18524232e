package shop

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/trendops/storecheck/internal/turkish"
)

// placeholderImage keeps card and detail images self contained, no asset
// pipeline behind the fixture.
const placeholderImage = "data:image/gif;base64,R0lGODlhAQABAIAAAMLCwgAAACH5BAAAAAAALAAAAAABAAEAAAICRAEAOw=="

// Product represents one catalog entry served by the fixture storefront
type Product struct {
	ID         string
	Brand      string
	Name       string
	PriceCents int64
	ImageURL   string
	InStock    bool
}

// PriceLabel renders the price the way the storefront prints it
func (p Product) PriceLabel() string {
	return turkish.FormatPrice(float64(p.PriceCents) / 100)
}

// URL returns the product detail path. The grid opens it in a new tab.
func (p Product) URL() string {
	slug := strings.ReplaceAll(strings.ToLower(turkish.FoldASCII(p.Brand+" "+p.Name)), " ", "-")
	return fmt.Sprintf("/%s-p-%s", slug, p.ID)
}

var brands = []string{
	"Casper", "Monster", "Lenovo", "Asus", "HP", "Vestel",
	"Arzum", "Karaca", "Tefal", "Fakir", "Philips", "Dyson",
}

var modelSeries = []string{"Pro", "Plus", "Max", "Air", "Neo", "Prime", "Ultra", "Smart"}

var storeCategories = []string{
	"Kadın", "Erkek", "Anne & Çocuk", "Ev & Yaşam", "Süpermarket",
	"Kozmetik", "Ayakkabı & Çanta", "Elektronik", "Spor & Outdoor",
}

// Every listing has a few unbuyable products at fixed positions.
const outOfStockStride = 12

// Catalog generates products deterministically per query, so repeated
// visits see the same grid, and remembers what it handed out for detail
// page lookups.
type Catalog struct {
	mu   sync.Mutex
	byID map[string]Product
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		byID: make(map[string]Product),
	}
}

// Search returns the products for a query slice, generating them on first
// access.
func (c *Catalog) Search(query string, offset, limit int) []Product {
	return c.SearchFiltered(query, 0, 0, offset, limit)
}

// SearchFiltered returns the products for a query slice whose price falls
// inside the given bounds. A zero bound leaves that side open.
func (c *Catalog) SearchFiltered(query string, minCents, maxCents int64, offset, limit int) []Product {
	if matchesNothing(query) || limit <= 0 || offset < 0 {
		return nil
	}

	products := make([]Product, 0, limit)
	// Scan a bounded index range so open filters cannot loop forever.
	matched := 0
	for index := 0; index < 1000 && len(products) < limit; index++ {
		product := c.generate(query, index)
		if minCents > 0 && product.PriceCents < minCents {
			continue
		}
		if maxCents > 0 && product.PriceCents > maxCents {
			continue
		}
		if matched >= offset {
			products = append(products, product)
		}
		matched++
	}
	return products
}

// Get returns a previously generated product by ID
func (c *Catalog) Get(id string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.byID[id]
	return product, ok
}

// TotalFor returns the advertised result count for a query. Real listings
// report far more matches than any page shows, the fixture does the same.
func (c *Catalog) TotalFor(query string) int {
	if matchesNothing(query) {
		return 0
	}
	return 10000 + int(querySeed(query)%90000)
}

// Categories lists the top navigation entries
func (c *Catalog) Categories() []string {
	return storeCategories
}

func (c *Catalog) generate(query string, index int) Product {
	seed := querySeed(query)
	n := uint32(index)

	brand := brands[(seed+n*7)%uint32(len(brands))]
	series := modelSeries[(seed/3+n*5)%uint32(len(modelSeries))]
	name := fmt.Sprintf("%s %s %d", displayName(query), series, 100+(seed+n*37)%900)

	product := Product{
		ID:         fmt.Sprintf("%d%03d", 100000+seed%900000, index),
		Brand:      brand,
		Name:       name,
		PriceCents: int64(149900 + (seed+n*9973)%2450100),
		ImageURL:   placeholderImage,
		InStock:    index%outOfStockStride != 7,
	}

	c.mu.Lock()
	c.byID[product.ID] = product
	c.mu.Unlock()

	return product
}

// matchesNothing marks the queries the fixture treats as having no hits.
// The zzz prefix keeps the empty result state reachable from tests.
func matchesNothing(query string) bool {
	folded := strings.ToLower(turkish.FoldASCII(strings.TrimSpace(query)))
	return folded == "" || strings.HasPrefix(folded, "zzz")
}

func querySeed(query string) uint32 {
	normalized := turkish.FoldASCII(turkish.Lower(turkish.CleanSpace(query)))
	h := fnv.New32a()
	h.Write([]byte(normalized))
	return h.Sum32()
}

// displayName renders the query as a product name prefix with Turkish
// aware capitalization, so "istanbul çaydanlık" becomes "İstanbul
// Çaydanlık".
func displayName(query string) string {
	words := strings.Fields(turkish.Lower(turkish.CleanSpace(query)))
	for i, word := range words {
		runes := []rune(word)
		words[i] = turkish.Upper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
