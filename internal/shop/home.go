package shop

import (
	"html/template"
	"net/http"
)

// HomeHandler handles the storefront landing page
type HomeHandler struct {
	template *template.Template
	catalog  *Catalog
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(templatePath string, catalog *Catalog) (*HomeHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	return &HomeHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

type homePageData struct {
	Categories []string
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ensureSession(w, r)

	data := homePageData{
		Categories: h.catalog.Categories(),
	}
	if err := h.template.Execute(w, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
