package shop

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		checkContent   []string
	}{
		{
			name:           "listing for a query",
			method:         http.MethodGet,
			target:         "/sr?q=laptop",
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"data-testid=\"result-count-info\"",
				"product-card",
				"discounted-price",
				"data-aggregationtype=\"Price\"",
				"select-box",
				"Ürün",
			},
		},
		{
			name:           "query echoed in header and search box",
			method:         http.MethodGet,
			target:         "/sr?q=oyuncu%20laptop",
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"<h1 data-testid=\"title\">oyuncu laptop</h1>",
				"value=\"oyuncu laptop\"",
			},
		},
		{
			name:           "no results page",
			method:         http.MethodGet,
			target:         "/sr?q=zzzolmayanbirsey",
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"empty-result",
				"Aradığın kriterlere uygun ürün bulunamadı",
			},
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			target:         "/sr?q=laptop",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewSearchHandler("../../templates/search.html", NewCatalog())
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

func TestSearchHandler_PriceFilter(t *testing.T) {
	catalog := NewCatalog()
	handler, err := NewSearchHandler("../../templates/search.html", catalog)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sr?q=laptop&pmin=5000&pmax=15000", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	// The rendered grid must match what the catalog reports for the bounds
	expected := catalog.SearchFiltered("laptop", 500000, 1500000, 0, searchPageSize)
	body := w.Body.String()
	for _, product := range expected {
		if !strings.Contains(body, product.ID) {
			t.Errorf("expected filtered listing to contain product %s", product.ID)
		}
	}
	if strings.Count(body, "class=\"product-card\"") != len(expected) {
		t.Errorf("expected %d cards, got %d", len(expected), strings.Count(body, "class=\"product-card\""))
	}
}

func TestPriceCents(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int64
	}{
		{"empty", "", 0},
		{"plain lira", "500", 50000},
		{"decimal comma", "749,50", 74950},
		{"thousands dot", "1.250", 125000},
		{"garbage", "abc", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceCents(tt.value); got != tt.expected {
				t.Errorf("priceCents(%q) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}
