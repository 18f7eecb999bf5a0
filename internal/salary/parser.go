// Package salary converts arbitrary salary strings from Czech job boards
// into a monthly CZK range. Inputs mix languages, currencies, units and
// shorthand ("60-80", "1,5k eur", "250 Kč/hod"); the parser normalises all
// of them to (min, max, avg) monthly CZK with sentinel values for unpaid
// and negotiable postings.
package salary

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/trhprace/intelligence/internal/config"
	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

// Unit conversion constants. The thresholds prevent double-scaling when a
// poster tags an already-monthly figure as hourly or daily.
const (
	HourlyMultiplier = 160
	DailyMultiplier  = 22
	HourlyThreshold  = 3500
	DailyThreshold   = 25000
)

// StartupJobs shorthand boundaries. The board habitually posts "60-80"
// meaning thousands, "600" meaning hourly and "5000" meaning daily.
const (
	shorthandThousandsBelow = 300
	shorthandHourlyBelow    = 2000
	shorthandDailyBelow     = 15000
)

// Monthly CZK plausibility window. Values outside it are kept but logged
// for manual review.
const (
	plausibleMin = 15000
	plausibleMax = 500000
)

// noiseCeiling filters stray small numeric tokens (years of experience,
// durations) from unstructured salary strings.
const noiseCeiling = 100

const sourceStartupJobs = "StartupJobs"

// Precompiled patterns. The parser runs on every ingested signal.
var (
	reNonBreaking   = strings.NewReplacer(" ", " ", " ", " ")
	reDecimalComma  = regexp.MustCompile(`(\d),(\d{1,2})\b`)
	reThousandDot   = regexp.MustCompile(`(\d)\.(\d{3})`)
	reThousandSpace = regexp.MustCompile(`(\d) (\d{3})\b`)
	reKiloSuffix    = regexp.MustCompile(`(\d+(?:\.\d+)?) ?k\b`)
	reRange         = regexp.MustCompile(`(\d+(?:\.\d+)?) ?(?:-|–|—|až) ?(\d+(?:\.\d+)?)`)
	reNumber        = regexp.MustCompile(`\d+(?:\.\d+)?`)

	reHourly = regexp.MustCompile(`/ ?h(?:od)?\b|hodinu|hodinová|per hour|hourly`)
	reDaily  = regexp.MustCompile(`/ ?d(?:en|ay)\b|denně|per day|daily`)

	reUnpaid     = regexp.MustCompile(`unpaid|neplacen|\b0 ?czk\b|czk ?0\b`)
	reNegotiable = regexp.MustCompile(`dohodou|negotiable|\btbd\b`)
)

// currencyMarkers maps detection patterns to ISO codes, checked in order.
// CZK has no entry: it is the target unit.
var currencyMarkers = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`\beur\b|€`), "EUR"},
	{regexp.MustCompile(`\busd\b|\$`), "USD"},
	{regexp.MustCompile(`\bgbp\b|£`), "GBP"},
	{regexp.MustCompile(`\bpln\b|zł|\bzl\b`), "PLN"},
	{regexp.MustCompile(`\bchf\b`), "CHF"},
}

// Result holds a parsed monthly CZK range. All three pointers are nil for
// unparsable input; the sentinels domain.SalaryUnpaid and
// domain.SalaryNegotiable mark known-unpaid and negotiable postings.
type Result struct {
	Min *int
	Max *int
	Avg *int
}

// Parsed reports whether the input produced any value at all.
func (r Result) Parsed() bool {
	return r.Min != nil
}

// Parser converts salary strings to monthly CZK ranges.
type Parser struct {
	rates config.Rates
	log   logger.Logger
}

// NewParser creates a parser with the given currency rate table.
func NewParser(rates config.Rates, log logger.Logger) *Parser {
	if rates == nil {
		rates = config.DefaultRates()
	}
	return &Parser{rates: rates, log: log}
}

// Parse converts a raw salary string into a monthly CZK range. The optional
// source enables board-specific shorthand. Unparsable input yields an empty
// Result, never an error.
func (p *Parser) Parse(raw, source string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	s := normalize(raw)

	if reNegotiable.MatchString(s) {
		return sentinelResult(domain.SalaryNegotiable)
	}
	if reUnpaid.MatchString(s) {
		return sentinelResult(domain.SalaryUnpaid)
	}

	minVal, maxVal, ok := extractRange(s)
	if !ok {
		return Result{}
	}

	currency := detectCurrency(s)

	if source == sourceStartupJobs && currency != "EUR" {
		minVal = applyShorthand(minVal)
		maxVal = applyShorthand(maxVal)
	} else {
		minVal = p.convertUnits(s, minVal)
		maxVal = p.convertUnits(s, maxVal)
	}

	if currency != "" {
		rate := p.rates[currency]
		if rate > 0 {
			minVal *= rate
			maxVal *= rate
		}
	}

	minMonthly := int(math.Round(minVal))
	maxMonthly := int(math.Round(maxVal))
	avgMonthly := (minMonthly + maxMonthly) / 2

	if p.log != nil && (avgMonthly < plausibleMin || avgMonthly > plausibleMax) {
		p.log.Debug("salary outside plausible monthly range",
			logger.String("raw", raw),
			logger.Int("avg_monthly", avgMonthly))
	}

	return Result{
		Min: domain.IntPtr(minMonthly),
		Max: domain.IntPtr(maxMonthly),
		Avg: domain.IntPtr(avgMonthly),
	}
}

// normalize runs the ordered text-normalisation pipeline. It is idempotent:
// every step leaves already-normalised text unchanged.
func normalize(raw string) string {
	s := strings.ToLower(raw)
	s = reNonBreaking.Replace(s)
	s = strings.ReplaceAll(s, "kč", "czk")

	// Decimal commas before thousand separators: "1,5" is a decimal,
	// "40.000" and "40 000" are thousands.
	s = reDecimalComma.ReplaceAllString(s, "$1.$2")
	s = reThousandDot.ReplaceAllString(s, "$1$2")
	for reThousandSpace.MatchString(s) {
		s = reThousandSpace.ReplaceAllString(s, "$1$2")
	}

	// Expand "80k" to "80000".
	s = reKiloSuffix.ReplaceAllStringFunc(s, func(m string) string {
		numPart := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m), "k"))
		v, err := strconv.ParseFloat(numPart, 64)
		if err != nil {
			return m
		}
		return strconv.Itoa(int(math.Round(v * 1000)))
	})

	return s
}

// extractRange finds the canonical (min, max) pair in a normalised string.
// An explicit range wins; otherwise all plausible numeric tokens are
// considered. Returns ok=false when nothing numeric survives.
func extractRange(s string) (minVal, maxVal float64, ok bool) {
	if m := reRange.FindStringSubmatch(s); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo == nil && errHi == nil {
			// "45-80000": the poster wrote only the upper bound in
			// full, so the k scale propagates to the lower bound.
			if lo < 1000 && hi >= 1000 && hi <= 999999 {
				lo *= 1000
			}
			return lo, hi, true
		}
	}

	hourly := reHourly.MatchString(s)
	values := make([]float64, 0, 4)
	yearish := make([]float64, 0, 2)
	for _, tok := range reNumber.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		if v <= noiseCeiling {
			continue
		}
		// Calendar years show up in validity notes ("nástup 2026").
		// They are only discounted when a better candidate exists in
		// the same string; "2000 EUR" alone is a real salary.
		if !hourly && isLikelyYear(v) {
			yearish = append(yearish, v)
			continue
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		values = yearish
	}
	if len(values) == 0 {
		return 0, 0, false
	}

	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal, true
}

func isLikelyYear(v float64) bool {
	return v == math.Trunc(v) && v >= 2000 && v <= 2099
}

// convertUnits scales hourly and daily figures to monthly. The thresholds
// guard against postings that carry a unit marker next to an
// already-monthly number.
func (p *Parser) convertUnits(s string, v float64) float64 {
	switch {
	case reHourly.MatchString(s):
		if v <= HourlyThreshold {
			return v * HourlyMultiplier
		}
	case reDaily.MatchString(s):
		if v <= DailyThreshold {
			return v * DailyMultiplier
		}
	}
	return v
}

// applyShorthand decodes StartupJobs habit of posting bare numbers:
// small values are thousands per month, mid values hourly, larger daily.
func applyShorthand(v float64) float64 {
	switch {
	case v < shorthandThousandsBelow:
		return v * 1000
	case v < shorthandHourlyBelow:
		return v * HourlyMultiplier
	case v < shorthandDailyBelow:
		return v * DailyMultiplier
	default:
		return v
	}
}

func detectCurrency(s string) string {
	for _, m := range currencyMarkers {
		if m.pattern.MatchString(s) {
			return m.code
		}
	}
	return ""
}

func sentinelResult(v int) Result {
	return Result{
		Min: domain.IntPtr(v),
		Max: domain.IntPtr(v),
		Avg: domain.IntPtr(v),
	}
}
