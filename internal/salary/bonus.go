package salary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/trhprace/intelligence/internal/domain"
)

// Bonus detection patterns, Czech and English. Negations ("bez bonusů",
// "no bonus") suppress the flag even when a bonus keyword is present.
var (
	reBonus = regexp.MustCompile(`\bbonus|prémi|premi|roční odměn|sign.?on`)
	re13th  = regexp.MustCompile(`13\. ?plat|14\. ?plat|třináctý plat|trinacty plat|čtrnáctý plat|ctrnacty plat|13th salary`)

	reBonusNegation = regexp.MustCompile(`bez bonus|no bonus|žádn[ée] bonus|without bonus`)

	// "bonus až 50 000 czk": amount within a short window after the keyword.
	reBonusAmount = regexp.MustCompile(`(?:bonus|prémie|premie|odměna|odmena)\D{0,20}?(\d{3,7})`)
)

// BonusInfo carries bonus-related flags extracted alongside a base salary.
type BonusInfo struct {
	HasBonus      bool
	Has13thSalary bool
	BonusAmount   *int
}

// ParseWithBonus parses a salary string and separately extracts bonus
// signals. Bonus text is also scanned in the advert description, so the
// two inputs are concatenated by callers as needed.
func (p *Parser) ParseWithBonus(raw, source string) (Result, BonusInfo) {
	result := p.Parse(raw, source)
	return result, ExtractBonus(raw)
}

// ExtractBonus detects bonus and 13th/14th-salary mentions in free text.
func ExtractBonus(text string) BonusInfo {
	if strings.TrimSpace(text) == "" {
		return BonusInfo{}
	}

	s := normalize(text)
	info := BonusInfo{}

	if re13th.MatchString(s) {
		info.Has13thSalary = true
	}

	if reBonus.MatchString(s) && !reBonusNegation.MatchString(s) {
		info.HasBonus = true
		if m := reBonusAmount.FindStringSubmatch(s); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				info.BonusAmount = domain.IntPtr(v)
			}
		}
	}

	return info
}
