// Package tagger derives the semantic tags of an advert: tech status,
// benefits, work model, skills, toxicity, AI-washing and labour-law audit
// flags. Every pattern bundle is compiled once from the external taxonomy
// at startup and is immutable afterwards; tagging itself is pure.
package tagger

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/trhprace/intelligence/internal/config"
	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

// Toxicity scoring: each distinct red-flag hit adds toxicityPerHit points,
// capped at the score ceiling.
const (
	toxicityPerHit = 30
	maxScore       = 100
)

// Work model keyword group names expected in the taxonomy.
const (
	groupRemote = "remote_keywords"
	groupHybrid = "hybrid_keywords"
	groupOffice = "office_keywords"
)

// Tagger applies the compiled taxonomy bundles to advert text.
type Tagger struct {
	log logger.Logger

	skills   map[string][]*regexp.Regexp
	benefits map[string][]string
	remote   []string
	hybrid   []string
	office   []string
	toxicity []*regexp.Regexp
	modern   []string
	legacy   []string
}

// New compiles the taxonomy into a Tagger. Pattern compilation errors are
// fatal: a half-loaded taxonomy must not tag anything.
func New(tax *config.Taxonomy, log logger.Logger) (*Tagger, error) {
	t := &Tagger{
		log:      log,
		skills:   make(map[string][]*regexp.Regexp, len(tax.SkillPatterns)),
		benefits: make(map[string][]string, len(tax.BenefitsKeywords)),
	}

	for skill, patterns := range tax.SkillPatterns {
		for _, p := range patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("skill pattern %q for %s: %w", p, skill, err)
			}
			t.skills[skill] = append(t.skills[skill], re)
		}
	}

	for category, keywords := range tax.BenefitsKeywords {
		t.benefits[category] = lowerAll(keywords)
	}

	t.remote = lowerAll(tax.WorkModelKeywords[groupRemote])
	t.hybrid = lowerAll(tax.WorkModelKeywords[groupHybrid])
	t.office = lowerAll(tax.WorkModelKeywords[groupOffice])

	for _, kw := range tax.ToxicityKeywords {
		// Word boundaries keep "pressure" from firing inside
		// "acupressure".
		re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(strings.ToLower(kw)) + `(?:$|[^\p{L}\p{N}])`)
		if err != nil {
			return nil, fmt.Errorf("toxicity keyword %q: %w", kw, err)
		}
		t.toxicity = append(t.toxicity, re)
	}

	t.modern = lowerAll(tax.TechModern)
	t.legacy = lowerAll(tax.TechLegacy)

	if log != nil {
		log.Info("tagger initialized",
			logger.Int("skills", len(t.skills)),
			logger.Int("benefit_categories", len(t.benefits)),
			logger.Int("toxicity_patterns", len(t.toxicity)))
	}

	return t, nil
}

// TechStatus classifies the stack currency of a description. A clear
// majority of modern or legacy mentions decides; anything close is Stable.
func (t *Tagger) TechStatus(description string) domain.TechStatus {
	text := strings.ToLower(description)

	modern := countMatches(text, t.modern)
	legacy := countMatches(text, t.legacy)

	switch {
	case modern > legacy+1:
		return domain.TechModern
	case legacy > modern+1:
		return domain.TechDinosaur
	default:
		return domain.TechStable
	}
}

// Benefits returns the sorted benefit categories mentioned in the text.
func (t *Tagger) Benefits(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 4)
	for category, keywords := range t.benefits {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				found = append(found, category)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

// WorkModel classifies the work arrangement. Remote plus office language
// is fake-remote and lands on Hybrid.
func (t *Tagger) WorkModel(description string) domain.WorkModel {
	if strings.TrimSpace(description) == "" {
		return domain.WorkUnclear
	}
	text := strings.ToLower(description)

	remote := anyContains(text, t.remote)
	office := anyContains(text, t.office)

	switch {
	case anyContains(text, t.hybrid):
		return domain.WorkHybrid
	case remote && office:
		return domain.WorkHybrid
	case remote:
		return domain.WorkRemote
	default:
		return domain.WorkOffice
	}
}

// ToxicityScore counts distinct red-flag matches, 30 points each, capped
// at 100.
func (t *Tagger) ToxicityScore(description string) int {
	hits := 0
	for _, re := range t.toxicity {
		if re.MatchString(description) {
			hits++
		}
	}
	score := hits * toxicityPerHit
	if score > maxScore {
		score = maxScore
	}
	return score
}

// Skills returns the sorted skill names whose patterns match the text.
func (t *Tagger) Skills(text string) []string {
	found := make([]string, 0, 8)
	for skill, patterns := range t.skills {
		for _, re := range patterns {
			if re.MatchString(text) {
				found = append(found, skill)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func anyContains(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
