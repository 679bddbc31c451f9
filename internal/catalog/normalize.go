package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FallbackSlug is used when no identity field yields a usable slug.
const FallbackSlug = "product"

// ParseAmount converts locale-formatted numeric text into a non-negative
// amount. Feeds mix "4500.00", "4500,00" and "1,299.99"; when the text has no
// dot the comma is the decimal separator, otherwise commas are grouping and
// are stripped. Any input that still fails to parse resolves to 0.0 — callers
// must treat 0.0 as absent, not as a free offer.
func ParseAmount(text string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// Slugify derives a URL-safe token: lowercase, whitespace becomes hyphens,
// everything outside [a-z0-9-] is dropped, runs of hyphens collapse and
// leading/trailing hyphens are trimmed. Idempotent and locale-independent.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return FallbackSlug
	}
	return b.String()
}
