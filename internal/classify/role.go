// Package classify maps (title, description) pairs to the closed role
// taxonomy and the five-level seniority scale. The role classifier is a
// layered decision: fast-path title overrides, a priority-ordered keyword
// scan (title first, then title+description), expert refinement rules, and
// an optional embedding fallback. All layers are pure functions of their
// input; the classifier carries no mutable state after construction.
package classify

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

// Config holds classifier configuration. There is deliberately no
// process-wide toggle; the embedding fallback is enabled per instance.
type Config struct {
	UseEmbeddings bool
}

// RoleClassifier classifies adverts into the closed role taxonomy.
type RoleClassifier struct {
	cfg       Config
	embedding EmbeddingClassifier
	log       logger.Logger

	// Aho-Corasick automaton over the substring keywords, one pass per
	// advert instead of one pass per keyword. Boundary-set tokens need
	// word-boundary semantics and are checked by regex separately.
	matcher  *ahocorasick.Matcher
	keywords []string
	kwRole   map[string]domain.RoleType
}

// NewRoleClassifier builds the classifier and its keyword automaton.
// embedding may be nil; it is only consulted when cfg.UseEmbeddings is set
// and the implementation reports itself available.
func NewRoleClassifier(cfg Config, embedding EmbeddingClassifier, log logger.Logger) *RoleClassifier {
	c := &RoleClassifier{
		cfg:       cfg,
		embedding: embedding,
		log:       log,
		kwRole:    make(map[string]domain.RoleType),
	}

	for _, entry := range roleTaxonomy {
		for _, kw := range entry.keywords {
			if boundaryTokens[kw] {
				continue
			}
			if _, seen := c.kwRole[kw]; seen {
				continue // first (highest-priority) role keeps the keyword
			}
			c.keywords = append(c.keywords, kw)
			c.kwRole[kw] = entry.role
		}
	}
	c.matcher = ahocorasick.NewStringMatcher(c.keywords)

	if log != nil {
		log.Info("role classifier initialized",
			logger.Int("roles", len(roleTaxonomy)),
			logger.Int("substring_keywords", len(c.keywords)),
			logger.Bool("embeddings", cfg.UseEmbeddings && embedding != nil && embedding.Available()))
	}

	return c
}

// Classify maps an advert to its role category. It is deterministic and
// never returns a value outside the closed set; "Other" marks the absence
// of a confident match.
func (c *RoleClassifier) Classify(title, description string) domain.RoleType {
	titleLower := strings.ToLower(title)
	combined := titleLower + " " + strings.ToLower(description)

	// Layer 1: fast-path overrides, title only.
	for _, o := range titleOverrides {
		if strings.Contains(titleLower, o.token) {
			return o.role
		}
	}

	// Layer 2: priority-ordered scan, title first.
	if role, ok := scanOrdered(titleLower); ok {
		return refineRole(role, titleLower, combined)
	}

	// Same scan against title+description, trie-gated so roles whose
	// keywords cannot appear in the text are skipped without regex work.
	if role, ok := c.scanCombined(combined); ok {
		return refineRole(role, titleLower, combined)
	}

	// Layer 5: embedding fallback, accepted only when decisive.
	if c.cfg.UseEmbeddings && c.embedding != nil && c.embedding.Available() {
		if role, err := c.embedding.Classify(title, description); err == nil && role != domain.RoleOther {
			return role
		} else if err != nil && c.log != nil {
			c.log.Warn("embedding fallback failed", logger.Error(err))
		}
	}

	return domain.RoleOther
}

// scanOrdered walks the taxonomy in priority order and returns the first
// role with a matching keyword in text.
func scanOrdered(text string) (domain.RoleType, bool) {
	for _, entry := range roleTaxonomy {
		for _, kw := range entry.keywords {
			if smartMatch(text, kw) {
				return entry.role, true
			}
		}
	}
	return domain.RoleOther, false
}

// scanCombined is scanOrdered over title+description, but the substring
// keywords are resolved in a single automaton pass first.
func (c *RoleClassifier) scanCombined(combined string) (domain.RoleType, bool) {
	hitKeywords := make(map[string]bool)
	for _, idx := range c.matcher.Match([]byte(combined)) {
		if idx < len(c.keywords) {
			hitKeywords[c.keywords[idx]] = true
		}
	}

	for _, entry := range roleTaxonomy {
		for _, kw := range entry.keywords {
			if boundaryTokens[kw] {
				if smartMatch(combined, kw) {
					return entry.role, true
				}
				continue
			}
			if hitKeywords[kw] && !excluded(combined, kw) {
				return entry.role, true
			}
		}
	}
	return domain.RoleOther, false
}

// smartMatch applies the boundary-set semantics: short ambiguous tokens
// match whole-word only, everything else as a substring. Exclusion rules
// veto specific false positives either way.
func smartMatch(text, keyword string) bool {
	var matched bool
	if boundaryTokens[keyword] {
		matched = boundaryPatterns[keyword].MatchString(text)
	} else {
		matched = strings.Contains(text, keyword)
	}
	if !matched {
		return false
	}
	return !excluded(text, keyword)
}

func excluded(text, keyword string) bool {
	rule, ok := exclusionRules[keyword]
	return ok && rule.MatchString(text)
}
