package shop

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
)

// How many cards a listing page renders before lazy loading takes over.
const searchPageSize = 24

// SearchHandler handles the search results listing
type SearchHandler struct {
	template *template.Template
	catalog  *Catalog
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(templatePath string, catalog *Catalog) (*SearchHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	return &SearchHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

type searchPageData struct {
	Query      string
	CountLabel string
	Products   []Product
	NoResults  bool
	MinPrice   string
	MaxPrice   string
	NextOffset int
}

// ServeHTTP handles the GET /sr request
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ensureSession(w, r)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	minPrice := strings.TrimSpace(r.URL.Query().Get("pmin"))
	maxPrice := strings.TrimSpace(r.URL.Query().Get("pmax"))

	products := h.catalog.SearchFiltered(query, priceCents(minPrice), priceCents(maxPrice), 0, searchPageSize)

	data := searchPageData{
		Query:      query,
		CountLabel: fmt.Sprintf("%d Ürün", h.catalog.TotalFor(query)),
		Products:   products,
		NoResults:  len(products) == 0,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		NextOffset: len(products),
	}
	if err := h.template.Execute(w, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// priceCents parses a filter input like "500" or "749,50" into cents,
// zero when absent or unreadable.
func priceCents(value string) int64 {
	if value == "" {
		return 0
	}
	normalized := strings.ReplaceAll(strings.ReplaceAll(value, ".", ""), ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return int64(amount * 100)
}
