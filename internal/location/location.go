// Package location normalises raw location strings into a canonical
// (region, city) pair. Three hub cities get their own region; everything
// else collapses to Other with the first locality token as city.
package location

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/trhprace/intelligence/internal/domain"
)

// Hub patterns are matched after NFKD diacritic folding, so "Praha 4",
// "PRAHA-Karlín" and "Prague" all resolve to the Prague hub.
var hubPatterns = []struct {
	pattern *regexp.Regexp
	region  domain.Region
}{
	{regexp.MustCompile(`praha|prague`), domain.RegionPrague},
	{regexp.MustCompile(`brno`), domain.RegionBrno},
	{regexp.MustCompile(`ostrava`), domain.RegionOstrava},
}

var foldTransform = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize maps a raw location string to its canonical (region, city)
// pair. Empty input yields (Other, "").
func Normalize(raw string) (domain.Region, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.RegionOther, ""
	}

	folded := fold(trimmed)

	for _, hub := range hubPatterns {
		if hub.pattern.MatchString(folded) {
			return hub.region, string(hub.region)
		}
	}

	city := trimmed
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	return domain.RegionOther, strings.TrimSpace(city)
}

// fold lowercases and strips diacritics. Idempotent.
func fold(s string) string {
	out, _, err := transform.String(foldTransform, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
