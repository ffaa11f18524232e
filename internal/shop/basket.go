package shop

import (
	"html/template"
	"net/http"
)

// BasketHandler handles the cart page
type BasketHandler struct {
	template *template.Template
	carts    *CartStore
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(templatePath string, carts *CartStore) (*BasketHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	return &BasketHandler{
		template: tmpl,
		carts:    carts,
	}, nil
}

type basketPageData struct {
	Items  []CartItem
	Totals CartTotals
	Empty  bool
}

// ServeHTTP handles the GET /sepet request
func (h *BasketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := ensureSession(w, r)
	items := h.carts.Items(session)

	data := basketPageData{
		Items:  items,
		Totals: h.carts.Totals(session),
		Empty:  len(items) == 0,
	}
	if err := h.template.Execute(w, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// LoginHandler handles the sign in stub page checkout lands on
type LoginHandler struct {
	template *template.Template
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(templatePath string) (*LoginHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template: tmpl,
	}, nil
}

// ServeHTTP handles the GET /giris request
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.template.Execute(w, nil); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
