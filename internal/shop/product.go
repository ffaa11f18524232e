package shop

import (
	"html/template"
	"net/http"
	"strings"
)

// ProductHandler handles product detail pages under slug-p-id paths
type ProductHandler struct {
	template *template.Template
	catalog  *Catalog
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(templatePath string, catalog *Catalog) (*ProductHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	return &ProductHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

type productPageData struct {
	Product Product
}

// ServeHTTP handles the GET /{slug}-p-{id} request
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ensureSession(w, r)

	id := productIDFromPath(r.URL.Path)
	if id == "" {
		http.NotFound(w, r)
		return
	}

	product, ok := h.catalog.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.template.Execute(w, productPageData{Product: product}); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// productIDFromPath extracts the ID from a path like /casper-laptop-pro-p-672049000
func productIDFromPath(path string) string {
	marker := strings.LastIndex(path, "-p-")
	if marker < 0 {
		return ""
	}
	return strings.Trim(path[marker+len("-p-"):], "/")
}
