package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhprace/intelligence/internal/classify"
	"github.com/trhprace/intelligence/internal/config"
	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/salary"
	"github.com/trhprace/intelligence/internal/tagger"
)

func testEnricher(t *testing.T) *Enricher {
	t.Helper()

	tax := &config.Taxonomy{
		SkillPatterns: map[string][]string{
			"python": {`\bpython\b`},
			"react":  {`\breact\b`},
		},
		BenefitsKeywords: map[string][]string{
			"meal_vouchers": {"stravenky"},
			"extra_leave":   {"5 týdnů dovolené", "dovolená navíc"},
		},
		WorkModelKeywords: map[string][]string{
			"remote_keywords": {"remote", "home office", "práce z domova"},
			"hybrid_keywords": {"hybridní"},
			"office_keywords": {"v kanceláři", "na pobočce"},
		},
		ToxicityKeywords: []string{"práce pod tlakem"},
		TechModern:       []string{"kubernetes", "react"},
		TechLegacy:       []string{"cobol"},
	}

	tags, err := tagger.New(tax, logger.NewNop())
	require.NoError(t, err)

	return NewEnricher(
		salary.NewParser(config.DefaultRates(), logger.NewNop()),
		classify.NewRoleClassifier(classify.Config{}, nil, logger.NewNop()),
		tags,
		logger.NewNop(),
	)
}

func TestEnricher_Enrich(t *testing.T) {
	e := testEnricher(t)
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	raw := domain.RawSignal{
		Title:       "Senior Python Developer",
		Company:     "Acme s.r.o.",
		Link:        "https://jobs.example.cz/1234",
		Source:      "jobscz",
		SalaryRaw:   "60 000 - 80 000 Kč",
		Description: "Vývoj backendu v Pythonu a React, Kubernetes. Remote možný. Nabízíme stravenky. HPP.",
		LocationRaw: "Praha 4",
		ScrapedAt:   now,
	}

	sig := e.Enrich(raw, now)

	assert.NotEmpty(t, sig.ContentHash)
	assert.Equal(t, raw.Link, sig.Link)
	assert.Equal(t, raw.Source, sig.Source)
	assert.Equal(t, now, sig.FirstSeenAt)
	assert.Equal(t, now, sig.LastSeenAt)
	assert.Equal(t, 1, sig.RepostCount)
	assert.Equal(t, 0, sig.GhostScore)

	require.NotNil(t, sig.MinSalary)
	require.NotNil(t, sig.MaxSalary)
	require.NotNil(t, sig.AvgSalary)
	assert.Equal(t, 60000, *sig.MinSalary)
	assert.Equal(t, 80000, *sig.MaxSalary)
	assert.Equal(t, 70000, *sig.AvgSalary)

	assert.Equal(t, domain.RoleDeveloper, sig.RoleType)
	assert.Equal(t, domain.SenioritySenior, sig.SeniorityLevel)
	assert.Equal(t, domain.TechModern, sig.TechStatus)

	assert.Contains(t, sig.Skills, "python")
	assert.Contains(t, sig.Benefits, "meal_vouchers")
	assert.Equal(t, domain.WorkRemote, sig.WorkModel)
	assert.False(t, sig.AIWashingFlag)
	assert.Empty(t, sig.LegalFlags)

	assert.Equal(t, domain.RegionPrague, sig.Region)
	assert.Equal(t, "Prague", sig.City)
	assert.Equal(t, domain.ContractHPP, sig.ContractType)
}

func TestEnricher_SalaryFallbackToDescription(t *testing.T) {
	e := testEnricher(t)
	now := time.Now()

	raw := domain.RawSignal{
		Title:       "Skladník",
		Company:     "Sklady a.s.",
		Link:        "https://jobs.example.cz/77",
		Source:      "jobscz",
		Description: "Práce ve skladu. Mzda 32 000 Kč měsíčně.",
		LocationRaw: "Ostrava",
	}

	sig := e.Enrich(raw, now)

	require.NotNil(t, sig.AvgSalary)
	assert.Equal(t, 32000, *sig.AvgSalary)
}

func TestEnricher_SentinelSalaryNotOverridden(t *testing.T) {
	e := testEnricher(t)

	raw := domain.RawSignal{
		Title:       "Recepční",
		Company:     "Hotel",
		Link:        "https://jobs.example.cz/88",
		Source:      "jobscz",
		SalaryRaw:   "dohodou",
		Description: "Nástup možný ihned. V roce 2024 jsme rozšířili tým o 30 000 zákazníků.",
		LocationRaw: "Brno",
	}

	sig := e.Enrich(raw, time.Now())

	require.NotNil(t, sig.AvgSalary)
	assert.Equal(t, domain.SalaryNegotiable, *sig.AvgSalary)
}

func TestEnricher_BenefitsRawFeedsTagging(t *testing.T) {
	e := testEnricher(t)

	raw := domain.RawSignal{
		Title:       "Účetní",
		Company:     "Finance s.r.o.",
		Link:        "https://jobs.example.cz/99",
		Source:      "jobscz",
		Description: "Vedení účetnictví.",
		BenefitsRaw: "Stravenky, dovolená navíc.",
		LocationRaw: "Praha",
	}

	sig := e.Enrich(raw, time.Now())

	assert.ElementsMatch(t, []string{"extra_leave", "meal_vouchers"}, sig.Benefits)
	assert.Equal(t, "Stravenky, dovolená navíc.", sig.BenefitsText)
}

func TestEnricher_BonusFromDescription(t *testing.T) {
	e := testEnricher(t)

	raw := domain.RawSignal{
		Title:       "Obchodní zástupce",
		Company:     "Prodej s.r.o.",
		Link:        "https://jobs.example.cz/55",
		Source:      "jobscz",
		SalaryRaw:   "40 000 Kč",
		Description: "Fixní mzda a roční bonus až 60 000 Kč. Nabízíme i 13. plat.",
		LocationRaw: "Praha",
	}

	sig := e.Enrich(raw, time.Now())

	assert.True(t, sig.HasBonus)
	assert.True(t, sig.Has13thSalary)
	require.NotNil(t, sig.BonusAmount)
	assert.Equal(t, 60000, *sig.BonusAmount)

	require.NotNil(t, sig.AvgSalary)
	assert.Equal(t, 40000, *sig.AvgSalary, "bonus prose never shifts the base salary")
}

func TestEnricher_SalaryOrderingInvariant(t *testing.T) {
	e := testEnricher(t)

	salaries := []string{
		"35 000 - 45 000 Kč",
		"250 Kč/hod",
		"1,5k EUR",
		"45-80000",
	}

	for _, s := range salaries {
		sig := e.Enrich(domain.RawSignal{
			Title:     "Pozice",
			Company:   "Firma",
			Link:      "https://jobs.example.cz/x",
			Source:    "jobscz",
			SalaryRaw: s,
		}, time.Now())

		require.NotNil(t, sig.MinSalary, "salary %q", s)
		require.NotNil(t, sig.MaxSalary, "salary %q", s)
		require.NotNil(t, sig.AvgSalary, "salary %q", s)
		assert.LessOrEqual(t, *sig.MinSalary, *sig.AvgSalary, "salary %q", s)
		assert.LessOrEqual(t, *sig.AvgSalary, *sig.MaxSalary, "salary %q", s)
	}
}
