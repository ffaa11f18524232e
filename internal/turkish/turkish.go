// Package turkish implements the Turkish-locale text rules the storefront
// renders with: dotted/dotless I casing, diacritic folding and the
// "1.234,56 TL" currency format.
package turkish

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	validText = regexp.MustCompile(`^[a-zA-ZçÇğĞıİöÖşŞüÜ0-9\s]+$`)
)

// Upper converts s to upper case under Turkish rules (i→İ, ı→I).
func Upper(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// Lower converts s to lower case under Turkish rules (İ→i, I→ı).
func Lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// foldRune maps the runes that survive canonical decomposition. The dotless
// ı has no decomposition, so it needs an explicit mapping; everything else
// (ç, ğ, ö, ş, ü, İ) decomposes to an ASCII base plus combining marks.
func foldRune(r rune) rune {
	switch r {
	case 'ı':
		return 'i'
	case 'I':
		return 'I'
	}
	return r
}

// FoldASCII strips diacritics, mapping Turkish letters to their ASCII
// counterparts: çğıöşü → cgiosu and the capital forms likewise.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Map(foldRune), runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// EqualFold reports whether a and b are equal ignoring case under Turkish
// rules, so İSTANBUL matches istanbul and ISPARTA matches ısparta.
func EqualFold(a, b string) bool {
	return Lower(a) == Lower(b)
}

// ContainsFold reports whether substr occurs in s ignoring case under
// Turkish rules.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Lower(s), Lower(substr))
}

// FuzzyEqual compares two strings ignoring case, diacritics and surrounding
// or repeated whitespace. "Çanta" matches "canta".
func FuzzyEqual(a, b string) bool {
	return strings.EqualFold(FoldASCII(CleanSpace(a)), FoldASCII(CleanSpace(b)))
}

// CleanSpace trims s and collapses interior whitespace runs to single spaces.
func CleanSpace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// IsTurkishText reports whether s consists only of Turkish letters, ASCII
// letters, digits and whitespace.
func IsTurkishText(s string) bool {
	if s == "" {
		return false
	}
	return validText.MatchString(s)
}

// FormatPrice renders an amount the way the storefront prints prices:
// dot-grouped thousands, comma decimals, trailing currency. 1234.56
// becomes "1.234,56 TL".
func FormatPrice(amount float64) string {
	p := message.NewPrinter(language.Turkish)
	return p.Sprintf("%v TL", number.Decimal(amount, number.Scale(2)))
}

// ParsePrice reads a Turkish-formatted price string such as "1.234,56 TL"
// or "₺99,90". Currency tokens and spaces are stripped, dots are treated as
// thousands separators and the comma as the decimal separator.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price string")
	}

	cleaned = strings.ReplaceAll(cleaned, "TL", "")
	cleaned = strings.ReplaceAll(cleaned, "₺", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", s, err)
	}

	return value, nil
}
