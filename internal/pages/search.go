package pages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/trendops/storecheck/internal/interact"
	"github.com/trendops/storecheck/internal/turkish"
	"github.com/trendops/storecheck/internal/wait"
)

const (
	resultTitleSelector = "h1[data-testid='title']"
	resultCountSelector = "span[data-testid='result-count-info']"
	productCardSelector = "a.product-card"
	cardBrandSelector   = ".product-brand"
	cardNameSelector    = ".product-name"
	cardPriceSelector   = ".discounted-price"
	cardImageSelector   = "img"

	priceSectionSelector   = "section[data-aggregationtype='Price']"
	priceContainerSelector = ".aggregation-container"
	priceMinSelector       = "input[data-testid='price-range-input-min']"
	priceMaxSelector       = "input[data-testid='price-range-input-max']"
	priceApplySelector     = "button[data-testid='price-range-button']"

	sortBoxSelector     = "button.select-box"
	emptyResultSelector = ".empty-result"
	didYouMeanSelector  = ".did-you-mean .information-banner"
)

var nonDigit = regexp.MustCompile(`[^0-9]`)

// SearchResults models the listing page reached through the search box or a
// category link: the result header, the product grid and the filter rail.
type SearchResults struct {
	Base
}

// NewSearchResults binds a SearchResults page object to an open browser page.
func NewSearchResults(page playwright.Page, baseURL string) *SearchResults {
	return &SearchResults{Base{page: page, baseURL: baseURL}}
}

// Open navigates straight to the results page for a query, bypassing the
// search box.
func (p *SearchResults) Open(query string) error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(wait.PageLoad.Milliseconds())),
	}
	if _, err := p.page.Goto(SearchURL(p.baseURL, query), opts); err != nil {
		return fmt.Errorf("failed to open results for %q: %w", query, err)
	}
	if err := wait.ForPageReady(p.page, wait.PageLoad); err != nil {
		return err
	}
	p.DismissPopups()
	return nil
}

// IsLoaded reports whether the browser sits on a search results URL.
func (p *SearchResults) IsLoaded() bool {
	return strings.Contains(p.CurrentURL(), searchPath)
}

// Title returns the result header, which echoes the query.
func (p *SearchResults) Title() string {
	return interact.Text(p.page.Locator(resultTitleSelector))
}

// ResultCount parses the total match count out of the header text, for
// example "67049 Ürün" or "10000+ Ürün". It returns 0 when the count is
// missing or unreadable.
func (p *SearchResults) ResultCount() int {
	text := interact.Text(p.page.Locator(resultCountSelector))
	digits := nonDigit.ReplaceAllString(text, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// WaitForProducts blocks until the first product card is visible and its
// image has a source, which marks the grid as actually rendered rather
// than skeleton placeholders.
func (p *SearchResults) WaitForProducts() error {
	first := p.page.Locator(productCardSelector).First()
	if err := wait.ForVisible(first, wait.SearchResults); err != nil {
		return fmt.Errorf("no product cards appeared: %w", err)
	}
	image := first.Locator(cardImageSelector)
	return wait.For(func() (bool, error) {
		return interact.Attr(image, "src") != "", nil
	}, wait.ProductImage, "first product image to load")
}

// HasResults reports whether any product cards are on the page.
func (p *SearchResults) HasResults() bool {
	return interact.Count(p.page.Locator(productCardSelector)) > 0
}

// NoResultsShown reports whether the page displays an empty result notice
// or a "did you mean" banner instead of products.
func (p *SearchResults) NoResultsShown() bool {
	return interact.IsDisplayed(p.page.Locator(emptyResultSelector)) ||
		interact.IsDisplayed(p.page.Locator(didYouMeanSelector))
}

// VisibleProductCount returns how many product cards the page currently
// holds. Lazy loading grows this as the page scrolls.
func (p *SearchResults) VisibleProductCount() int {
	return interact.Count(p.page.Locator(productCardSelector))
}

// ProductName returns the display name of the card at index, the brand and
// model joined the way the storefront shows them.
func (p *SearchResults) ProductName(index int) (string, error) {
	card, err := p.card(index)
	if err != nil {
		return "", err
	}
	brand := interact.Text(card.Locator(cardBrandSelector))
	name := interact.Text(card.Locator(cardNameSelector))
	full := turkish.CleanSpace(strings.TrimSpace(brand + " " + name))
	if full == "" {
		return "", fmt.Errorf("product card %d has no readable name", index)
	}
	return full, nil
}

// ProductPrice returns the price label of the card at index, for example
// "24.999,00 TL".
func (p *SearchResults) ProductPrice(index int) (string, error) {
	card, err := p.card(index)
	if err != nil {
		return "", err
	}
	price := interact.Text(card.Locator(cardPriceSelector))
	if price == "" {
		return "", fmt.Errorf("product card %d has no price", index)
	}
	return price, nil
}

// ProductPriceValue parses the price label of the card at index into a
// numeric amount.
func (p *SearchResults) ProductPriceValue(index int) (float64, error) {
	label, err := p.ProductPrice(index)
	if err != nil {
		return 0, err
	}
	return turkish.ParsePrice(label)
}

// ScrollToProduct brings the card at index into view.
func (p *SearchResults) ScrollToProduct(index int) error {
	card, err := p.card(index)
	if err != nil {
		return err
	}
	return interact.ScrollIntoView(card)
}

// OpenProduct scrolls to the card at index and clicks it. The storefront
// opens product detail in a new tab, so the caller switches tabs afterwards.
func (p *SearchResults) OpenProduct(index int) error {
	if err := p.ScrollToProduct(index); err != nil {
		return err
	}
	card, err := p.card(index)
	if err != nil {
		return err
	}
	if err := interact.Click(card); err != nil {
		return fmt.Errorf("failed to open product card %d: %w", index, err)
	}
	return nil
}

// ExpandPriceFilter makes sure the price section of the filter rail is
// open, clicking its header when the inputs are collapsed.
func (p *SearchResults) ExpandPriceFilter() error {
	section := p.page.Locator(priceSectionSelector)
	if err := wait.ForAttached(section, wait.Filter); err != nil {
		return fmt.Errorf("price filter section missing: %w", err)
	}
	container := section.Locator(priceContainerSelector)
	if interact.IsDisplayed(container) {
		return nil
	}
	if err := interact.Click(section); err != nil {
		return fmt.Errorf("failed to expand price filter: %w", err)
	}
	return wait.ForVisible(container, wait.Filter)
}

// ApplyPriceFilter fills the min and max price inputs and applies them,
// then waits for the filtered grid to come back. Either bound may be empty
// to leave that side open.
func (p *SearchResults) ApplyPriceFilter(minPrice, maxPrice string) error {
	if err := p.ExpandPriceFilter(); err != nil {
		return err
	}
	section := p.page.Locator(priceSectionSelector)
	if minPrice != "" {
		if err := interact.Fill(section.Locator(priceMinSelector), minPrice); err != nil {
			return fmt.Errorf("failed to set minimum price: %w", err)
		}
	}
	if maxPrice != "" {
		if err := interact.Fill(section.Locator(priceMaxSelector), maxPrice); err != nil {
			return fmt.Errorf("failed to set maximum price: %w", err)
		}
	}
	if err := interact.Click(section.Locator(priceApplySelector)); err != nil {
		return fmt.Errorf("failed to apply price filter: %w", err)
	}
	if err := wait.ForPageReady(p.page, wait.PageLoad); err != nil {
		return err
	}
	if err := wait.ForAjaxIdle(p.page, wait.Ajax); err != nil {
		return err
	}
	return p.WaitForProducts()
}

// SortOptionShown reports whether the sort selector is available on the
// page.
func (p *SearchResults) SortOptionShown() bool {
	return interact.IsDisplayed(p.page.Locator(sortBoxSelector))
}

// ScrollToLoadMore scrolls to the bottom up to rounds times, waiting after
// each scroll for the lazy loader to append cards. It stops early once a
// scroll no longer grows the grid.
func (p *SearchResults) ScrollToLoadMore(rounds int) error {
	cards := p.page.Locator(productCardSelector)
	for round := 0; round < rounds; round++ {
		before := interact.Count(cards)
		if err := interact.ScrollToBottom(p.page); err != nil {
			return fmt.Errorf("scroll round %d failed: %w", round+1, err)
		}
		if err := wait.ForCountAtLeast(cards, before+1, wait.Short); err != nil {
			log.Debug().Int("round", round+1).Int("cards", before).Msg("lazy load stopped growing")
			return nil
		}
	}
	return nil
}

func (p *SearchResults) card(index int) (playwright.Locator, error) {
	cards := p.page.Locator(productCardSelector)
	count := interact.Count(cards)
	if index < 0 || index >= count {
		return nil, fmt.Errorf("product index %d out of range, %d cards visible", index, count)
	}
	return cards.Nth(index), nil
}
