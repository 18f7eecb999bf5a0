package classify

import (
	"strings"

	"github.com/trhprace/intelligence/internal/domain"
)

var executiveKeywords = []string{
	"ceo", "cto", "cfo", "coo", "chief", "ředitel", "reditel",
	"director", "head of", "vp ", "vice president", "executive",
	"jednatel", "výkonný", "vykonny",
}

var leadKeywords = []string{
	"lead", "leader", "principal", "vedoucí", "vedouci", "mistr",
	"teamleader", "team leader", "architekt", "architect",
}

var seniorKeywords = []string{
	"senior", "sr.", "sr ", "samostatný", "samostatny", "zkušený",
	"zkuseny", "experienced",
}

var juniorKeywords = []string{
	"junior", "jr.", "jr ", "absolvent", "trainee", "stážista",
	"stazista", "internship", "praktikant", "entry level",
}

// nonExecutiveManagement are titles whose executive-looking tokens denote
// shop-floor management, not the C-suite. An Executive match in the title
// is downgraded to Lead when any of these is present.
var nonExecutiveManagement = []string{
	"vedoucí", "vedouci", "mistr", "směnový", "smenovy",
	"store manager", "vedoucí prodejny", "vedouci prodejny",
	"vedoucí skladu", "vedouci skladu", "vedoucí směny", "vedouci smeny",
	"shift",
}

// DetectSeniority maps an advert to a seniority level. Title evidence wins
// over description evidence; a description-only Executive signal is
// rejected because company boilerplate routinely name-drops its CEO.
func DetectSeniority(title, description string) domain.SeniorityLevel {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	if anyCue(titleLower, executiveKeywords) {
		if anyCue(titleLower, nonExecutiveManagement) {
			return domain.SeniorityLead
		}
		return domain.SeniorityExecutive
	}
	if anyCue(titleLower, leadKeywords) {
		return domain.SeniorityLead
	}
	if anyCue(titleLower, seniorKeywords) {
		return domain.SenioritySenior
	}
	if anyCue(titleLower, juniorKeywords) {
		return domain.SeniorityJunior
	}

	// Description pass skips Executive.
	if anyCue(descLower, leadKeywords) {
		return domain.SeniorityLead
	}
	if anyCue(descLower, seniorKeywords) {
		return domain.SenioritySenior
	}
	if anyCue(descLower, juniorKeywords) {
		return domain.SeniorityJunior
	}

	return domain.SeniorityMid
}
