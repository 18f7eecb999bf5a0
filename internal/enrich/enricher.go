package enrich

import (
	"time"

	"github.com/trhprace/intelligence/internal/classify"
	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/location"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/salary"
	"github.com/trhprace/intelligence/internal/tagger"
)

// Enricher turns a raw scraped advert into the canonical enriched record.
// All stages are pure CPU work; an Enricher is safe for concurrent use.
type Enricher struct {
	parser *salary.Parser
	roles  *classify.RoleClassifier
	tags   *tagger.Tagger
	log    logger.Logger
}

// NewEnricher wires the enrichment stages together.
func NewEnricher(parser *salary.Parser, roles *classify.RoleClassifier, tags *tagger.Tagger, log logger.Logger) *Enricher {
	return &Enricher{
		parser: parser,
		roles:  roles,
		tags:   tags,
		log:    log,
	}
}

// Enrich runs every stage over the raw signal and assembles the enriched
// record. The record is built as a first observation: repost count starts
// at one and the ghost score at zero; the store adjusts both when it
// discovers the link or hash is already known.
func (e *Enricher) Enrich(raw domain.RawSignal, now time.Time) domain.EnrichedSignal {
	res, bonus := e.parser.ParseWithBonus(raw.SalaryRaw, raw.Source)
	if descBonus := salary.ExtractBonus(raw.Description); descBonus.HasBonus || descBonus.Has13thSalary {
		bonus = mergeBonus(bonus, descBonus)
	}
	if !res.Parsed() {
		// Some boards bury the figure in the description instead of the
		// salary field.
		if desc := e.parser.Parse(raw.Description, raw.Source); desc.Parsed() {
			res = desc
		}
	}

	role := e.roles.Classify(raw.Title, raw.Description)
	region, city := location.Normalize(raw.LocationRaw)

	benefitsText := raw.BenefitsRaw
	tagText := raw.Description
	if benefitsText != "" {
		tagText = raw.Description + " " + benefitsText
	}

	sig := domain.EnrichedSignal{
		ContentHash: ContentHash(raw.Title, raw.Company, raw.Description),

		Source:      raw.Source,
		Link:        raw.Link,
		FirstSeenAt: now,
		LastSeenAt:  now,
		RepostCount: 1,

		Title:        raw.Title,
		Company:      raw.Company,
		Description:  raw.Description,
		BenefitsText: benefitsText,

		MinSalary:     res.Min,
		MaxSalary:     res.Max,
		AvgSalary:     res.Avg,
		HasBonus:      bonus.HasBonus,
		Has13thSalary: bonus.Has13thSalary,
		BonusAmount:   bonus.BonusAmount,

		RoleType:       role,
		SeniorityLevel: classify.DetectSeniority(raw.Title, raw.Description),
		TechStatus:     e.tags.TechStatus(raw.Description),

		Benefits:      e.tags.Benefits(tagText),
		Skills:        e.tags.Skills(raw.Title + " " + raw.Description),
		WorkModel:     e.tags.WorkModel(raw.Description),
		ToxicityScore: e.tags.ToxicityScore(raw.Description),
		GhostScore:    tagger.GhostScore(1, now, now),
		AIWashingFlag: tagger.AIWashing(raw.Description, role),
		LegalFlags:    tagger.LegalFlags(raw.Title, raw.Description),

		Region: region,
		City:   city,

		ContractType: tagger.ContractType(raw.Title + " " + raw.Description),
	}

	e.log.Debug("signal enriched",
		logger.String("link", raw.Link),
		logger.String("role", string(sig.RoleType)),
		logger.String("seniority", string(sig.SeniorityLevel)),
		logger.Bool("salary_parsed", res.Parsed()),
	)

	return sig
}

// mergeBonus folds bonus evidence from the description into the salary
// field's result. The salary field wins on the amount: a figure next to
// the base salary is more reliable than one buried in prose.
func mergeBonus(base, extra salary.BonusInfo) salary.BonusInfo {
	base.HasBonus = base.HasBonus || extra.HasBonus
	base.Has13thSalary = base.Has13thSalary || extra.Has13thSalary
	if base.BonusAmount == nil {
		base.BonusAmount = extra.BonusAmount
	}
	return base
}
