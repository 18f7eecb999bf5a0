package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trhprace/intelligence/internal/domain"
)

func TestDetectSeniority_TitleLevels(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  domain.SeniorityLevel
	}{
		{"senior english", "Senior Python Developer", domain.SenioritySenior},
		{"senior czech", "Samostatný účetní", domain.SenioritySenior},
		{"junior", "Junior Java Developer", domain.SeniorityJunior},
		{"graduate", "Absolvent - technická podpora", domain.SeniorityJunior},
		{"lead", "Tech Lead", domain.SeniorityLead},
		{"principal", "Principal Engineer", domain.SeniorityLead},
		{"executive ceo", "CEO", domain.SeniorityExecutive},
		{"executive director", "Ředitel výroby", domain.SeniorityExecutive},
		{"head of", "Head of Marketing", domain.SeniorityExecutive},
		{"no evidence defaults to mid", "Python Developer", domain.SeniorityMid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeniority(tt.title, ""))
		})
	}
}

func TestDetectSeniority_NonExecutiveManagementDowngrade(t *testing.T) {
	tests := []string{
		"Vedoucí prodejny",
		"Vedoucí skladu",
		"Vedoucí směny",
		"Směnový mistr",
	}
	for _, title := range tests {
		t.Run(title, func(t *testing.T) {
			assert.Equal(t, domain.SeniorityLead, DetectSeniority(title, ""))
		})
	}
}

func TestDetectSeniority_TitleOverDescription(t *testing.T) {
	// Junior title wins over senior-sounding description.
	got := DetectSeniority("Junior Developer", "Budete pracovat se senior kolegy.")
	assert.Equal(t, domain.SeniorityJunior, got)
}

func TestDetectSeniority_DescriptionOnlyExecutiveRejected(t *testing.T) {
	// Company boilerplate mentioning the CEO must not make the advert
	// an executive role.
	got := DetectSeniority("Recepční", "Naše firma byla založena naším CEO v roce 2010.")
	assert.Equal(t, domain.SeniorityMid, got)
}

func TestDetectSeniority_DescriptionFallback(t *testing.T) {
	got := DetectSeniority("Vývojář", "Hledáme senior vývojáře do zkušeného týmu.")
	assert.Equal(t, domain.SenioritySenior, got)
}

func TestDetectSeniority_EmptyInput(t *testing.T) {
	assert.Equal(t, domain.SeniorityMid, DetectSeniority("", ""))
}
