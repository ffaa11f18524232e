package shop

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProductHandler_ServeHTTP(t *testing.T) {
	catalog := NewCatalog()
	products := catalog.Search("laptop", 0, 24)
	inStock := products[0]
	outOfStock := products[7]

	if outOfStock.InStock {
		t.Fatal("Expected product at index 7 to be out of stock")
	}

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		checkContent   []string
	}{
		{
			name:           "product detail page",
			method:         http.MethodGet,
			target:         inStock.URL(),
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"data-testid=\"product-title\"",
				"<strong>" + inStock.Brand + "</strong>",
				inStock.PriceLabel(),
				"Sepete Ekle",
			},
		},
		{
			name:           "out of stock product",
			method:         http.MethodGet,
			target:         outOfStock.URL(),
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"Tükendi",
				"disabled",
			},
		},
		{
			name:           "unknown product",
			method:         http.MethodGet,
			target:         "/bilinmeyen-urun-p-999999999",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "path without product marker",
			method:         http.MethodGet,
			target:         "/hakkimizda",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			target:         inStock.URL(),
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewProductHandler("../../templates/product.html", catalog)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus == http.StatusOK && len(tt.checkContent) > 0 {
				body := w.Body.String()
				for _, content := range tt.checkContent {
					if !strings.Contains(body, content) {
						t.Errorf("expected response to contain '%s'", content)
					}
				}
			}
		})
	}
}

func TestProductIDFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"regular slug", "/casper-laptop-pro-156-p-672049000", "672049000"},
		{"trailing slash", "/casper-laptop-pro-156-p-672049000/", "672049000"},
		{"no marker", "/sepet", ""},
		{"marker inside slug", "/cift-p-kolu-aski-p-123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := productIDFromPath(tt.path); got != tt.expected {
				t.Errorf("productIDFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
