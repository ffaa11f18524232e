package wait

import "time"

// Wait budgets, one per kind of page activity. Pages pick the narrowest
// budget that fits the interaction instead of reusing one global timeout.
const (
	Short     = 5 * time.Second
	Medium    = 15 * time.Second
	Long      = 30 * time.Second
	ExtraLong = 60 * time.Second

	Explicit = 20 * time.Second
	PageLoad = 30 * time.Second
	Ajax     = 20 * time.Second

	ElementVisible = 15 * time.Second
	Clickable      = 15 * time.Second
	Invisible      = 10 * time.Second
	Stale          = 10 * time.Second

	ProductImage  = 10 * time.Second
	SearchResults = 15 * time.Second
	CartUpdate    = 10 * time.Second
	Filter        = 15 * time.Second
	Checkout      = 20 * time.Second
	Modal         = 5 * time.Second
	Promo         = 8 * time.Second
)

// Polling and retry parameters shared with the interaction layer.
const (
	PollInterval  = 500 * time.Millisecond
	RetryAttempts = 3
	RetryDelay    = time.Second
)
