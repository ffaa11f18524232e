package shop

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// ErrorResponse represents a JSON error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CartAPIHandler handles the JSON cart endpoints the storefront scripts call
type CartAPIHandler struct {
	catalog *Catalog
	carts   *CartStore
}

// NewCartAPIHandler creates a new CartAPIHandler
func NewCartAPIHandler(catalog *Catalog, carts *CartStore) *CartAPIHandler {
	return &CartAPIHandler{
		catalog: catalog,
		carts:   carts,
	}
}

// cartRequest carries the product and quantity of a cart mutation
type cartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// cartResponse reports the basket state after a call
type cartResponse struct {
	ItemCount int    `json:"itemCount"`
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Total     string `json:"total"`
}

// ServeHTTP dispatches the /api/cart endpoints
func (h *CartAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := ensureSession(w, r)

	switch r.URL.Path {
	case "/api/cart":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
	case "/api/cart/add":
		if !h.mutate(w, r, session, h.add) {
			return
		}
	case "/api/cart/update":
		if !h.mutate(w, r, session, h.update) {
			return
		}
	case "/api/cart/remove":
		if !h.mutate(w, r, session, h.remove) {
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	h.sendState(w, session)
}

func (h *CartAPIHandler) mutate(w http.ResponseWriter, r *http.Request, session string, apply func(http.ResponseWriter, string, cartRequest) bool) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if req.ProductID == "" {
		sendErrorResponse(w, "Missing product ID", http.StatusBadRequest)
		return false
	}

	return apply(w, session, req)
}

func (h *CartAPIHandler) add(w http.ResponseWriter, session string, req cartRequest) bool {
	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		sendErrorResponse(w, "Product not found", http.StatusNotFound)
		return false
	}
	if !product.InStock {
		sendErrorResponse(w, "Product is out of stock", http.StatusConflict)
		return false
	}
	h.carts.Add(session, product)
	return true
}

func (h *CartAPIHandler) update(w http.ResponseWriter, session string, req cartRequest) bool {
	h.carts.SetQuantity(session, req.ProductID, req.Quantity)
	return true
}

func (h *CartAPIHandler) remove(w http.ResponseWriter, session string, req cartRequest) bool {
	h.carts.Remove(session, req.ProductID)
	return true
}

func (h *CartAPIHandler) sendState(w http.ResponseWriter, session string) {
	totals := h.carts.Totals(session)
	resp := cartResponse{
		ItemCount: h.carts.Count(session),
		Subtotal:  totals.SubtotalLabel(),
		Shipping:  totals.ShippingLabel(),
		Total:     totals.TotalLabel(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding cart response: %v", err)
	}
}

// ProductsAPIHandler serves lazy load batches for the listing page
type ProductsAPIHandler struct {
	catalog *Catalog
}

// NewProductsAPIHandler creates a new ProductsAPIHandler
func NewProductsAPIHandler(catalog *Catalog) *ProductsAPIHandler {
	return &ProductsAPIHandler{
		catalog: catalog,
	}
}

// batchProduct is one card in a lazy load batch
type batchProduct struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	URL     string `json:"url"`
	Image   string `json:"image"`
	InStock bool   `json:"inStock"`
}

// batchResponse is the payload appended to the grid on scroll
type batchResponse struct {
	Products   []batchProduct `json:"products"`
	NextOffset int            `json:"nextOffset"`
	HasMore    bool           `json:"hasMore"`
}

// ServeHTTP handles the GET /api/products request
func (h *ProductsAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	minCents := priceCents(r.URL.Query().Get("pmin"))
	maxCents := priceCents(r.URL.Query().Get("pmax"))

	products := h.catalog.SearchFiltered(query, minCents, maxCents, offset, searchPageSize)

	resp := batchResponse{
		Products:   make([]batchProduct, 0, len(products)),
		NextOffset: offset + len(products),
		HasMore:    len(products) == searchPageSize,
	}
	for _, product := range products {
		resp.Products = append(resp.Products, batchProduct{
			ID:      product.ID,
			Brand:   product.Brand,
			Name:    product.Name,
			Price:   product.PriceLabel(),
			URL:     product.URL(),
			Image:   product.ImageURL,
			InStock: product.InStock,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding products response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
