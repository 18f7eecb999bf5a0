package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Taxonomy is the semantic taxonomy loaded from YAML. Patterns are regular
// expressions; keywords are plain substrings. The tagger compiles every
// pattern once at startup.
type Taxonomy struct {
	// SkillPatterns maps skill name to description regexes, used by the
	// skill_premiums analysis.
	SkillPatterns map[string][]string `yaml:"skill_patterns"`
	// BenefitsKeywords maps benefit category to trigger keywords.
	BenefitsKeywords map[string][]string `yaml:"benefits_keywords"`
	// WorkModelKeywords holds the remote/hybrid/office keyword groups.
	WorkModelKeywords map[string][]string `yaml:"work_model_keywords"`
	// ToxicityKeywords are red-flag phrases matched with word boundaries.
	ToxicityKeywords []string `yaml:"toxicity_keywords"`
	// TechModern and TechLegacy drive the Modern/Stable/Dinosaur call.
	TechModern []string `yaml:"tech_modern"`
	TechLegacy []string `yaml:"tech_legacy"`
}

// requiredTaxonomyDomains lists the domains a taxonomy file must populate.
var requiredTaxonomyDomains = []string{
	"skill_patterns",
	"benefits_keywords",
	"work_model_keywords",
	"toxicity_keywords",
	"tech_modern",
	"tech_legacy",
}

// LoadTaxonomy reads and validates the taxonomy file. An unreadable or
// incomplete taxonomy is fatal: the tagger cannot run with a partial one.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	tax := &Taxonomy{}
	if err := yaml.Unmarshal(data, tax); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}

	if err := tax.Validate(); err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}

	return tax, nil
}

// Validate checks that every required taxonomy domain is populated.
func (t *Taxonomy) Validate() error {
	missing := make([]string, 0, len(requiredTaxonomyDomains))
	if len(t.SkillPatterns) == 0 {
		missing = append(missing, "skill_patterns")
	}
	if len(t.BenefitsKeywords) == 0 {
		missing = append(missing, "benefits_keywords")
	}
	if len(t.WorkModelKeywords) == 0 {
		missing = append(missing, "work_model_keywords")
	}
	if len(t.ToxicityKeywords) == 0 {
		missing = append(missing, "toxicity_keywords")
	}
	if len(t.TechModern) == 0 {
		missing = append(missing, "tech_modern")
	}
	if len(t.TechLegacy) == 0 {
		missing = append(missing, "tech_legacy")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing taxonomy domains: %v", missing)
	}
	return nil
}
