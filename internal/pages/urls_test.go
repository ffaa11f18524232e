package pages

import "testing"

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		query   string
		want    string
	}{
		{
			name:    "single word",
			baseURL: "https://www.trendyol.com",
			query:   "laptop",
			want:    "https://www.trendyol.com/sr?q=laptop",
		},
		{
			name:    "spaces escaped as percent twenty",
			baseURL: "https://www.trendyol.com",
			query:   "oyuncu laptop",
			want:    "https://www.trendyol.com/sr?q=oyuncu%20laptop",
		},
		{
			name:    "trailing slash on base",
			baseURL: "http://127.0.0.1:9000/",
			query:   "mouse",
			want:    "http://127.0.0.1:9000/sr?q=mouse",
		},
		{
			name:    "turkish characters escaped",
			baseURL: "https://www.trendyol.com",
			query:   "ütü",
			want:    "https://www.trendyol.com/sr?q=%C3%BCt%C3%BC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchURL(tt.baseURL, tt.query)
			if got != tt.want {
				t.Errorf("SearchURL(%q, %q) = %q, want %q", tt.baseURL, tt.query, got, tt.want)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		want    string
	}{
		{"no trailing slash", "https://www.trendyol.com", CartPath, "https://www.trendyol.com/sepet"},
		{"trailing slash trimmed", "https://www.trendyol.com/", CartPath, "https://www.trendyol.com/sepet"},
		{"local fixture address", "http://127.0.0.1:8080", LoginPath, "http://127.0.0.1:8080/giris"},
		{"register path", "https://www.trendyol.com", RegisterPath, "https://www.trendyol.com/uye-ol"},
		{"checkout path", "https://www.trendyol.com", CheckoutPath, "https://www.trendyol.com/odeme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinURL(tt.baseURL, tt.path)
			if got != tt.want {
				t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.baseURL, tt.path, got, tt.want)
			}
		})
	}
}

func TestCartURL(t *testing.T) {
	got := CartURL("http://127.0.0.1:8080")
	want := "http://127.0.0.1:8080/sepet"
	if got != want {
		t.Errorf("CartURL = %q, want %q", got, want)
	}
}
