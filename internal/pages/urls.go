package pages

import (
	"net/url"
	"strings"
)

// Storefront paths shared by the page objects and the journeys.
const (
	CartPath     = "/sepet"
	LoginPath    = "/giris"
	RegisterPath = "/uye-ol"
	CheckoutPath = "/odeme"

	searchPath        = "/sr"
	productPathMarker = "/p-"
)

// SearchURL builds the search results URL for a query, escaping spaces as
// %20 the way the storefront's own links do.
func SearchURL(baseURL, query string) string {
	return JoinURL(baseURL, searchPath) + "?q=" + escapeQuery(query)
}

// CartURL returns the basket page URL.
func CartURL(baseURL string) string {
	return JoinURL(baseURL, CartPath)
}

// JoinURL joins a base URL and an absolute path without doubling slashes.
func JoinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

func escapeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
