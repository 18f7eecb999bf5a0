// classify/refine.go is the post-match sanity layer. Keyword scans
// over-trigger on Czech adverts that borrow IT vocabulary ("tester kvality
// svarů", "vedoucí skladu"); these rules revise a matched role using
// context cues before it is accepted.
package classify

import (
	"strings"

	"github.com/trhprace/intelligence/internal/domain"
)

// Context cue sets. A cue matches as a plain substring of the lowercased
// title+description.
var (
	industrialCues = []string{
		"strojírenstv", "strojirenstv", "výrobní linka", "vyrobni linka",
		"vzduchotechnika", "hvac", "klimatizace", "topení", "topeni",
		"kotel", "svařování", "svarovani", "cnc", "lisovna",
		"automotive", "montážní linka", "montazni linka", "obrábění",
		"obrabeni", "hydraulika", "pneumatika",
	}

	itProtectionCues = []string{
		"software", "programování", "programovani", "vývoj aplikací",
		"agile", "scrum", "cloud", "api", "databáz", "databaz",
		"frontend", "backend", "devops", "git", "python", "javascript",
		"java ", "sql",
	}

	constructionCues = []string{
		"stavba", "stavební", "stavebni", "staveniště", "staveniste",
		"výstavba", "vystavba", "developerský projekt",
	}

	warehouseCues  = []string{"sklad", "vzv", "logistick", "expedice"}
	storeCues      = []string{"prodejn", "maloobchod", "pokladn", "store"}
	shiftCues      = []string{"směnn", "smenn", "směny", "smeny", "třísměnný", "trismenny"}
	restaurantCues = []string{"restaurace", "kuchyn", "gastro", "provozovna rychlého"}

	socialCues     = []string{"sociální služb", "socialni sluzb", "pečovatel", "pecovatel", "azylov"}
	educationCues  = []string{"škola", "skola", "výuka", "vyuka", "žáky", "zaky", "vzdělávání dětí"}
	healthcareCues = []string{"nemocnice", "klinika", "ordinace", "pacient", "zdravotnick"}

	financeCues = []string{
		"bank", "pojišťovna",
		"pojistovna", "účetnictví", "ucetnictvi", "audit", "daně",
		"dane", "treasury", "leasing", "úvěr", "uver",
	}
)

// itRoles are the roles the industrial re-route applies to.
var itRoles = map[domain.RoleType]bool{
	domain.RoleDeveloper: true,
	domain.RoleAnalyst:   true,
	domain.RoleQA:        true,
	domain.RolePM:        true,
	domain.RoleDesigner:  true,
}

// refineRole revises a keyword-matched role using context cues. It always
// returns a member of the closed set.
func refineRole(role domain.RoleType, title, combined string) domain.RoleType {
	switch {
	case itRoles[role]:
		return refineITMatch(role, combined)
	case role == domain.RoleOperations:
		return refineOperations(combined)
	case role == domain.RoleManagement:
		return refineManagement(combined)
	case role == domain.RoleMarketing:
		if anyCue(combined, financeCues) {
			return domain.RoleFinance
		}
	}
	return role
}

// refineITMatch re-routes IT-looking matches in industrial contexts.
// "Quality Engineer" on a weld line is Manufacturing, not QA, unless the
// advert carries genuine software vocabulary.
func refineITMatch(role domain.RoleType, combined string) domain.RoleType {
	if anyCue(combined, itProtectionCues) {
		return role
	}

	switch {
	case anyCue(combined, constructionCues):
		return domain.RoleConstruction
	case anyCue(combined, industrialCues):
		if role == domain.RoleQA {
			return domain.RoleManufacturing
		}
		return domain.RoleGeneralEngineering
	}
	return role
}

func refineOperations(combined string) domain.RoleType {
	switch {
	case anyCue(combined, socialCues):
		return domain.RoleSocialServices
	case anyCue(combined, educationCues):
		return domain.RoleEducation
	case anyCue(combined, healthcareCues):
		return domain.RoleHealthcare
	}
	return domain.RoleOperations
}

func refineManagement(combined string) domain.RoleType {
	switch {
	case anyCue(combined, warehouseCues):
		return domain.RoleLogistics
	case anyCue(combined, storeCues):
		return domain.RoleRetail
	case anyCue(combined, restaurantCues):
		return domain.RoleHospitality
	case anyCue(combined, shiftCues), anyCue(combined, industrialCues):
		return domain.RoleManufacturing
	}
	return domain.RoleManagement
}

func anyCue(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
