// Package enrich merges the output of the salary parser, the role and
// seniority classifiers, the semantic tagger, and the location normaliser
// into a single enriched record, and derives its content hash.
package enrich

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// hashDescriptionLimit bounds how much of the description feeds the hash.
// Boards append rotating footers (apply links, tracking params) well past
// this point; the opening of the advert is what identifies it.
const hashDescriptionLimit = 500

// ContentHash derives the dedup key of an advert from its title, company
// and the first part of its description. The inputs are normalised first,
// so cosmetic edits such as casing, punctuation or whitespace reshuffles
// do not change the hash.
func ContentHash(title, company, description string) string {
	desc := []rune(normalizeForHash(description))
	if len(desc) > hashDescriptionLimit {
		desc = desc[:hashDescriptionLimit]
	}

	sum := md5.Sum([]byte(normalizeForHash(title) + normalizeForHash(company) + string(desc)))
	return hex.EncodeToString(sum[:])
}

// normalizeForHash lowercases the input and strips everything that is not
// a letter or digit. Idempotent.
func normalizeForHash(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
