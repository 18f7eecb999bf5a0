package tagger

import (
	"regexp"

	"github.com/trhprace/intelligence/internal/domain"
)

// Contract type detection. Adverts rarely structure this; the markers
// below cover how Czech boards phrase it. Canonical spelling is "Brigáda".
var (
	contractHPP = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])hpp(?:$|[^\p{L}\p{N}])|hlavní pracovní poměr|hlavni pracovni pomer|plný úvazek|plny uvazek|full.?time`)

	contractBrigada = regexp.MustCompile(`(?i)brigád|brigad|(?:^|[^\p{L}\p{N}])(?:dpp|dpč|dpc)(?:$|[^\p{L}\p{N}])|zkrácený úvazek|zkraceny uvazek|part.?time`)

	contractICO = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:ičo|ico|osvč|osvc|b2b)(?:$|[^\p{L}\p{N}])|živnost|zivnost|kontraktor|freelanc`)
)

// ContractType detects the contract arrangement from advert text. IČO wins
// over HPP when both appear ("HPP nebo IČO" postings default to the
// contractor reading for audit purposes), Brigáda wins over both.
func ContractType(text string) domain.ContractType {
	switch {
	case contractBrigada.MatchString(text):
		return domain.ContractBrigada
	case contractICO.MatchString(text):
		return domain.ContractICO
	case contractHPP.MatchString(text):
		return domain.ContractHPP
	default:
		return domain.ContractOther
	}
}
