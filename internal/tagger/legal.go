// tagger/legal.go is the labour-law audit. Its flags are advisory: they
// mark adverts worth a human look, they do not assert illegality.
package tagger

import (
	"regexp"

	"github.com/trhprace/intelligence/internal/domain"
)

// Discrimination patterns by class. Czech anti-discrimination law forbids
// restricting adverts by gender, age or family status; these catch the
// common phrasings.
var (
	genderDiscrimination = []*regexp.Regexp{
		regexp.MustCompile(`(?i)pouze (?:pro )?(?:muž|žen)`),
		regexp.MustCompile(`(?i)hledáme (?:pouze )?(?:muže|ženu|ženy)(?:$|[^\p{L}])`),
		regexp.MustCompile(`(?i)vhodné pouze pro (?:muž|žen)`),
	}

	ageDiscrimination = []*regexp.Regexp{
		regexp.MustCompile(`(?i)věk do \d+|vek do \d+`),
		regexp.MustCompile(`(?i)do \d{2} let(?:$|[^\p{L}])`),
		regexp.MustCompile(`(?i)mladý (?:a dynamický )?kolektiv|mlady (?:a dynamicky )?kolektiv`),
	}

	// Pensioner mentions are discriminatory only as a restriction; the
	// exclusion below neutralises the inclusive phrasing, and the other
	// age patterns stay in force either way.
	agePensioner = regexp.MustCompile(`(?i)důchodc|duchodc`)

	familyDiscrimination = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bezdětn|bezdetn`),
		regexp.MustCompile(`(?i)bez (?:rodinných )?závazků|bez zavazku`),
	}

	// "vhodné i pro důchodce" is an inclusive note, not a restriction.
	pensionerInclusive = regexp.MustCompile(`(?i)vhodn[^ ]* (?:i )?pro (?:seniory|důchodce|duchodce)`)

	// Švarcsystém: contractor paperwork combined with employee-like
	// working conditions.
	contractorMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:ičo|ico)(?:$|[^\p{L}\p{N}])`),
		regexp.MustCompile(`(?i)živnostensk|zivnostensk`),
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])osvč(?:$|[^\p{L}\p{N}])|fakturac`),
	}

	dependentWorkMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)pevná pracovní doba|pevna pracovni doba`),
		regexp.MustCompile(`(?i)docházk|dochazk`),
		regexp.MustCompile(`(?i)práce (?:v|z) kanceláři povinn|povinná přítomnost`),
		regexp.MustCompile(`(?i)přidělen[ýé] nadřízen|report(?:ing|ování) nadřízenému`),
		regexp.MustCompile(`(?i)firemní (?:vybavení|notebook|telefon)`),
		regexp.MustCompile(`(?i)8:00|9:00.{0,20}(?:17:00|18:00)`),
	}
)

// LegalFlags audits an advert for discrimination phrasing and Švarcsystém
// indicators. Returns the sorted set of flag identifiers.
func LegalFlags(title, description string) []string {
	text := title + " " + description
	flags := make([]string, 0, 2)

	if matchAny(text, genderDiscrimination) {
		flags = append(flags, domain.LegalFlagGenderDiscrimination)
	}
	if matchAnyAge(text) {
		flags = append(flags, domain.LegalFlagAgeDiscrimination)
	}
	if matchAny(text, familyDiscrimination) {
		flags = append(flags, domain.LegalFlagFamilyDiscrimination)
	}
	if matchAny(text, contractorMarkers) && matchAny(text, dependentWorkMarkers) {
		flags = append(flags, domain.LegalFlagSvarcsystem)
	}

	return flags
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// matchAnyAge applies the age patterns. The pensioner exclusion only
// covers the pensioner pattern itself: "vhodné i pro důchodce" is
// inclusive, but an age cap elsewhere in the same advert still flags.
func matchAnyAge(text string) bool {
	if matchAny(text, ageDiscrimination) {
		return true
	}
	return agePensioner.MatchString(text) && !pensionerInclusive.MatchString(text)
}
