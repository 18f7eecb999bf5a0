package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

func newTestClassifier() *RoleClassifier {
	return NewRoleClassifier(Config{}, nil, logger.NewNop())
}

func TestRoleClassifier_TitleOverrides(t *testing.T) {
	tests := []struct {
		title string
		want  domain.RoleType
	}{
		{"Směnný pracovník McDonald's Ostrava", domain.RoleHospitality},
		{"PhD Student in Machine Learning", domain.RoleEducation},
		{"Právník / Advokátní koncipient", domain.RoleLegal},
		{"Chirurg - oddělení ortopedie", domain.RoleHealthcare},
		{"Policista městské policie", domain.RoleService},
	}

	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.title, ""))
		})
	}
}

func TestRoleClassifier_PriorityOrder(t *testing.T) {
	c := newTestClassifier()

	// Developer outranks Management: a Tech Lead is an engineer.
	assert.Equal(t, domain.RoleDeveloper, c.Classify("Tech Lead", ""))
	assert.Equal(t, domain.RoleDeveloper, c.Classify("Senior Python Developer", ""))

	// Management only catches what nothing more specific claimed.
	assert.Equal(t, domain.RoleManagement, c.Classify("Oblastní manažer", ""))
}

func TestRoleClassifier_TitleBeforeDescription(t *testing.T) {
	c := newTestClassifier()

	// Title says accountant; description mentions SQL. Title wins.
	got := c.Classify("Účetní", "Výhodou znalost SQL a Excelu.")
	assert.Equal(t, domain.RoleFinance, got)

	// No title evidence: description decides.
	got = c.Classify("Nová pozice v Brně", "Hledáme zkušeného programátora pro vývoj aplikací.")
	assert.Equal(t, domain.RoleDeveloper, got)
}

func TestRoleClassifier_BoundaryTokens(t *testing.T) {
	c := newTestClassifier()

	// "hr" must match as a word, not inside "Chrudim".
	assert.Equal(t, domain.RoleHR, c.Classify("HR Business Partner", ""))
	assert.NotEqual(t, domain.RoleHR, c.Classify("Operátor výroby Chrudim", ""))

	// "ui"/"ux" as words only.
	assert.Equal(t, domain.RoleDesigner, c.Classify("UX Designer", ""))
	assert.NotEqual(t, domain.RoleDesigner, c.Classify("Pokladní Kaufland", ""))
}

func TestRoleClassifier_Exclusions(t *testing.T) {
	c := newTestClassifier()

	// A shift scheduler is not a designer.
	assert.NotEqual(t, domain.RoleDesigner, c.Classify("Grafik směn", ""))
	assert.Equal(t, domain.RoleDesigner, c.Classify("Grafik", ""))
}

func TestRoleClassifier_Refinement(t *testing.T) {
	c := newTestClassifier()

	t.Run("quality engineer in software context", func(t *testing.T) {
		got := c.Classify("Quality Engineer",
			"Automatizované testy v Pythonu, CI/CD, agile tým.")
		assert.Equal(t, domain.RoleQA, got)
	})

	t.Run("quality engineer in manufacturing context", func(t *testing.T) {
		got := c.Classify("Quality Engineer",
			"Kontrola kvality svařování na výrobní lince, CNC obrábění.")
		assert.Equal(t, domain.RoleManufacturing, got)
	})

	t.Run("hvac designer is engineering", func(t *testing.T) {
		got := c.Classify("Projektant vzduchotechniky",
			"Návrh HVAC systémů, klimatizace a topení pro komerční budovy.")
		assert.Equal(t, domain.RoleGeneralEngineering, got)
	})

	t.Run("warehouse management is logistics", func(t *testing.T) {
		got := c.Classify("Vedoucí skladu", "Řízení směny skladníků a VZV.")
		assert.Equal(t, domain.RoleLogistics, got)
	})

	t.Run("store management is retail", func(t *testing.T) {
		got := c.Classify("Store Manager", "Vedení týmu prodejny v centru Prahy.")
		assert.Equal(t, domain.RoleRetail, got)
	})

	t.Run("marketing in banking is finance", func(t *testing.T) {
		got := c.Classify("Marketing Specialist", "Marketingová podpora produktů banky.")
		assert.Equal(t, domain.RoleFinance, got)
	})
}

func TestRoleClassifier_Unmatched(t *testing.T) {
	c := newTestClassifier()
	assert.Equal(t, domain.RoleOther, c.Classify("Zajímavá nabídka", "Ozvěte se nám."))
}

func TestRoleClassifier_Deterministic(t *testing.T) {
	c := newTestClassifier()
	title, desc := "Senior Python Developer", "Vývoj backendových služeb v Pythonu."
	first := c.Classify(title, desc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(title, desc))
	}
}

func TestRoleClassifier_ClosedSet(t *testing.T) {
	c := newTestClassifier()
	titles := []string{
		"Senior Python Developer", "Účetní", "Grafik směn", "Vedoucí skladu",
		"Zajímavá nabídka", "Quality Engineer", "HR Business Partner", "",
	}
	for _, title := range titles {
		got := c.Classify(title, "")
		assert.True(t, got.Valid(), "role %q for title %q not in closed set", got, title)
	}
}

// TestRoleTaxonomy_CoversClosedSet asserts the keyword tables and the
// declared closed set stay in sync: every role except Other has keywords.
func TestRoleTaxonomy_CoversClosedSet(t *testing.T) {
	covered := make(map[domain.RoleType]bool, len(roleTaxonomy))
	for _, entry := range roleTaxonomy {
		assert.True(t, entry.role.Valid(), "taxonomy role %q not in closed set", entry.role)
		assert.NotEmpty(t, entry.keywords, "role %q has no keywords", entry.role)
		covered[entry.role] = true
	}
	for _, role := range domain.AllRoleTypes() {
		if role == domain.RoleOther {
			continue
		}
		assert.True(t, covered[role], "role %q missing from keyword taxonomy", role)
	}
}

type stubEmbedding struct {
	available bool
	role      domain.RoleType
	err       error
}

func (s *stubEmbedding) Available() bool { return s.available }

func (s *stubEmbedding) Classify(title, description string) (domain.RoleType, error) {
	return s.role, s.err
}

func TestRoleClassifier_EmbeddingFallback(t *testing.T) {
	title, desc := "Zajímavá nabídka", "Ozvěte se nám."

	t.Run("used when keyword layers miss", func(t *testing.T) {
		c := NewRoleClassifier(Config{UseEmbeddings: true},
			&stubEmbedding{available: true, role: domain.RoleSales}, logger.NewNop())
		assert.Equal(t, domain.RoleSales, c.Classify(title, desc))
	})

	t.Run("other from fallback is discarded", func(t *testing.T) {
		c := NewRoleClassifier(Config{UseEmbeddings: true},
			&stubEmbedding{available: true, role: domain.RoleOther}, logger.NewNop())
		assert.Equal(t, domain.RoleOther, c.Classify(title, desc))
	})

	t.Run("unavailable fallback is skipped", func(t *testing.T) {
		c := NewRoleClassifier(Config{UseEmbeddings: true},
			&stubEmbedding{available: false, role: domain.RoleSales}, logger.NewNop())
		assert.Equal(t, domain.RoleOther, c.Classify(title, desc))
	})

	t.Run("failing fallback yields other", func(t *testing.T) {
		c := NewRoleClassifier(Config{UseEmbeddings: true},
			&stubEmbedding{available: true, err: errors.New("model gone")}, logger.NewNop())
		assert.Equal(t, domain.RoleOther, c.Classify(title, desc))
	})

	t.Run("keyword match skips fallback", func(t *testing.T) {
		c := NewRoleClassifier(Config{UseEmbeddings: true},
			&stubEmbedding{available: true, role: domain.RoleSales}, logger.NewNop())
		assert.Equal(t, domain.RoleDeveloper, c.Classify("Python Developer", ""))
	})
}
