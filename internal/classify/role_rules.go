// classify/role_rules.go holds the role taxonomy keyword tables: fast-path
// title overrides, the priority-ordered keyword dictionary, the whole-word
// boundary set and the false-positive exclusions. The tables encode the
// Czech labour market; they are part of the code surface, not runtime
// config, so tests can assert exhaustive coverage of the closed role set.
package classify

import (
	"regexp"

	"github.com/trhprace/intelligence/internal/domain"
)

// titleOverrides are high-confidence tokens that unconditionally resolve a
// role from the title alone, before any taxonomy scan.
var titleOverrides = []struct {
	token string
	role  domain.RoleType
}{
	{"mcdonald", domain.RoleHospitality},
	{"kfc", domain.RoleHospitality},
	{"burger king", domain.RoleHospitality},
	{"phd", domain.RoleEducation},
	{"ph.d", domain.RoleEducation},
	{"doktorand", domain.RoleEducation},
	{"právník", domain.RoleLegal},
	{"advokát", domain.RoleLegal},
	{"notář", domain.RoleLegal},
	{"chirurg", domain.RoleHealthcare},
	{"lékař", domain.RoleHealthcare},
	{"zubař", domain.RoleHealthcare},
	{"zdravotní sestra", domain.RoleHealthcare},
	{"policista", domain.RoleService},
	{"hasič", domain.RoleService},
	{"strážný", domain.RoleService},
}

// roleKeywords pairs a role with its trigger keywords. Order in
// roleTaxonomy is the scan priority: Developer first so "Tech Lead"
// resolves to Developer, Management last so it only catches what nothing
// more specific claimed.
type roleKeywords struct {
	role     domain.RoleType
	keywords []string
}

var roleTaxonomy = []roleKeywords{
	{domain.RoleDeveloper, []string{
		"developer", "vývojář", "vyvojar", "programátor", "programator",
		"software engineer", "softwarový inženýr", "frontend", "backend",
		"fullstack", "full-stack", "full stack", "devops", "sre",
		"tech lead", "technical lead",
		"platform engineer", "data engineer", "ml engineer",
		"mobile developer", "ios", "android", "python", "java", "golang",
		"kotlin", "typescript", "javascript", "react", ".net", "php",
		"embedded",
	}},
	{domain.RoleAnalyst, []string{
		"analytik", "analyst", "analytička", "business intelligence",
		"data scientist", "datový analytik", "reporting specialist",
		"power bi", "tableau",
	}},
	{domain.RoleQA, []string{
		"qa", "tester", "testerka", "testing engineer", "test engineer",
		"quality engineer", "quality assurance", "automatizované testy",
		"kvalitář",
	}},
	{domain.RolePM, []string{
		"product manager", "project manager", "projektový manažer",
		"produktový manažer", "product owner", "scrum master",
		"delivery manager", "pm",
	}},
	{domain.RoleDesigner, []string{
		"designer", "designér", "grafik", "ui", "ux", "art director",
		"kreativec", "ilustrátor", "dtp",
	}},
	{domain.RoleSales, []string{
		"obchodní zástupce", "obchodník", "sales", "account manager",
		"business development", "prodejce", "akvizice", "key account",
	}},
	{domain.RoleHR, []string{
		"hr", "recruiter", "náborář", "naborar", "personalista",
		"talent acquisition", "people operations", "lidské zdroje",
	}},
	{domain.RoleMarketing, []string{
		"marketing", "marketér", "social media", "seo", "ppc",
		"copywriter", "content", "brand manager", "pr",
	}},
	{domain.RoleLegal, []string{
		"legal", "právní", "pravni", "compliance officer", "paralegal",
		"koncipient",
	}},
	{domain.RoleHealthcare, []string{
		"zdravotník", "sestra", "ošetřovatel", "fyzioterapeut",
		"farmaceut", "lékárník", "sanitář", "zdravotnick", "nurse",
		"ordinace",
	}},
	{domain.RoleFinance, []string{
		"účetní", "ucetni", "finanční", "financni", "controller",
		"auditor", "daňový", "danovy", "treasury", "fakturant",
		"accountant", "payroll", "mzdová účetní",
	}},
	{domain.RoleGeneralEngineering, []string{
		"konstruktér", "konstrukter", "strojní inženýr", "strojírenstv",
		"projektant", "technolog", "mechanical engineer", "hvac",
		"vzduchotechnika", "statik",
	}},
	{domain.RoleManufacturing, []string{
		"výroba", "vyroba", "operátor výroby", "operator vyroby",
		"dělník", "delnik", "montážní", "montazni", "seřizovač",
		"serizovac", "svářeč", "svarec", "cnc", "lisovna", "obráběč",
		"brusič", "lakýrník",
	}},
	{domain.RoleConstruction, []string{
		"stavbyvedoucí", "stavební", "stavebni", "zedník", "zednik",
		"tesař", "instalatér", "pokrývač", "stavba", "elektrikář na stavbu",
	}},
	{domain.RoleRetail, []string{
		"prodavač", "prodavac", "pokladní", "pokladni", "prodejna",
		"maloobchod", "store assistant", "doplňování zboží",
	}},
	{domain.RoleHospitality, []string{
		"kuchař", "kuchar", "číšník", "cisnik", "servírka", "servirka",
		"barista", "barman", "recepční", "recepcni", "hotel",
		"restaurace", "gastro",
	}},
	{domain.RoleLogistics, []string{
		"skladník", "skladnik", "sklad", "řidič", "ridic", "kurýr",
		"kuryr", "logistik", "disponent", "vzv", "forklift",
		"zásobování", "spedice",
	}},
	{domain.RoleEducation, []string{
		"učitel", "ucitel", "lektor", "lektorka", "vychovatel",
		"pedagog", "teacher", "tutor", "školení", "asistent pedagoga",
	}},
	{domain.RoleSocialServices, []string{
		"sociální pracovník", "socialni pracovnik", "pečovatel",
		"pecovatel", "osobní asistent", "sociální služby", "azylový",
	}},
	{domain.RoleTechnicalSpecialists, []string{
		"technik", "servisní technik", "servisni technik",
		"revizní technik", "údržbář", "udrzbar", "mechanik",
		"automechanik", "opravář",
	}},
	{domain.RoleElectromechanics, []string{
		"elektrikář", "elektrikar", "elektromechanik", "elektromontér",
		"elektrotechnik", "slaboproud", "silnoproud", "rozvaděč",
	}},
	{domain.RoleSupport, []string{
		"podpora", "support", "helpdesk", "zákaznický servis",
		"zakaznicky servis", "call centrum", "customer care",
		"operátor call", "hotline",
	}},
	{domain.RoleOperations, []string{
		"operations", "provozní", "provozni", "koordinátor",
		"koordinator", "office manager", "back office", "administrativa",
		"asistentka", "referent",
	}},
	{domain.RoleService, []string{
		"ostraha", "bezpečnostní", "bezpecnostni", "úklid", "uklid",
		"uklízečka", "uklizecka", "security", "vrátný", "údržba areálu",
	}},
	{domain.RoleManagement, []string{
		"manager", "manažer", "manazer", "ředitel", "reditel",
		"vedoucí", "vedouci", "head of", "director", "ceo", "coo",
		"cfo", "cto", "jednatel", "mistr",
	}},
}

// boundaryTokens are short or ambiguous keywords that only count as a
// match on word boundaries. "hr" must not fire inside "Chrudim".
var boundaryTokens = map[string]bool{
	"hr": true, "it": true, "pr": true, "ui": true, "ux": true,
	"qa": true, "pm": true, "sre": true, "ios": true, "cnc": true,
	"vzv": true, "seo": true, "ppc": true, "dtp": true, "sql": true,
	"php": true, ".net": true, "ceo": true, "coo": true, "cfo": true,
	"cto": true, "grafik": true, "lead": true, "manager": true,
	"controller": true, "content": true, "sklad": true, "java": true,
	"sestra": true, "technik": true, "support": true, "hotel": true,
	"stavba": true,
}

// exclusionRules suppress a keyword match when a disqualifying pattern is
// present. "Grafik směn" is a shift scheduler, not a designer.
var exclusionRules = map[string]*regexp.Regexp{
	"grafik": regexp.MustCompile(`grafik\w*\s+(?:směn|smen|rozvrh)`),
}

// boundaryPatterns holds the precompiled word-boundary regexes for the
// boundary set. Built once at package init; the classifier runs on every
// signal.
var boundaryPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(boundaryTokens))
	for tok := range boundaryTokens {
		patterns[tok] = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(tok) + `(?:$|[^\p{L}\p{N}])`)
	}
	return patterns
}()
