package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhprace/intelligence/internal/config"
	"github.com/trhprace/intelligence/internal/logger"
)

func newTestParser() *Parser {
	return NewParser(config.DefaultRates(), logger.NewNop())
}

func TestParser_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin int
		wantMax int
		wantAvg int
	}{
		{"czech range with spaces", "40 000 - 60 000 Kč", 40000, 60000, 50000},
		{"en dash range", "40000 – 60000 CZK", 40000, 60000, 50000},
		{"az range", "35 000 až 45 000 Kč", 35000, 45000, 40000},
		{"k notation range", "70k-90k", 70000, 90000, 80000},
		{"k scale propagation", "45-80000 Kč", 45000, 80000, 62500},
		{"nbsp thousands", "50 000 Kč", 50000, 50000, 50000},
		{"single value", "55000 Kč/měs", 55000, 55000, 55000},
		{"decimal comma k", "1,5k EUR", 37500, 37500, 37500},
		{"thousand dot", "45.000 Kč", 45000, 45000, 45000},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, "")
			require.True(t, got.Parsed(), "expected a parse for %q", tt.input)
			assert.Equal(t, tt.wantMin, *got.Min)
			assert.Equal(t, tt.wantMax, *got.Max)
			assert.Equal(t, tt.wantAvg, *got.Avg)
		})
	}
}

func TestParser_UnitConversion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantAvg int
	}{
		{"hourly below threshold", "250 Kč/hod", 250 * HourlyMultiplier},
		{"hourly at threshold", "3500 Kč/hod", 3500 * HourlyMultiplier},
		{"hourly above threshold stays monthly", "40000 Kč/hod", 40000},
		{"daily below threshold", "2500 Kč/den", 2500 * DailyMultiplier},
		{"daily above threshold stays monthly", "45000 Kč/den", 45000},
		{"per hour english", "300 CZK per hour", 300 * HourlyMultiplier},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, "")
			require.True(t, got.Parsed())
			assert.Equal(t, tt.wantAvg, *got.Avg)
		})
	}
}

func TestParser_StartupJobsShorthand(t *testing.T) {
	p := newTestParser()

	t.Run("thousands shorthand", func(t *testing.T) {
		got := p.Parse("60-80", "StartupJobs")
		require.True(t, got.Parsed())
		assert.Equal(t, 60000, *got.Min)
		assert.Equal(t, 80000, *got.Max)
	})

	t.Run("hourly shorthand", func(t *testing.T) {
		got := p.Parse("600-900", "StartupJobs")
		require.True(t, got.Parsed())
		assert.Equal(t, 96000, *got.Min)
		assert.Equal(t, 144000, *got.Max)
		assert.Equal(t, 120000, *got.Avg)
	})

	t.Run("daily shorthand", func(t *testing.T) {
		got := p.Parse("5000", "StartupJobs")
		require.True(t, got.Parsed())
		assert.Equal(t, 5000*DailyMultiplier, *got.Avg)
	})

	t.Run("monthly passes through", func(t *testing.T) {
		got := p.Parse("80000", "StartupJobs")
		require.True(t, got.Parsed())
		assert.Equal(t, 80000, *got.Avg)
	})

	t.Run("eur bypasses shorthand", func(t *testing.T) {
		got := p.Parse("2000-3000 EUR", "StartupJobs")
		require.True(t, got.Parsed())
		assert.Equal(t, 50000, *got.Min)
		assert.Equal(t, 75000, *got.Max)
	})

	t.Run("shorthand only applies to StartupJobs", func(t *testing.T) {
		got := p.Parse("600-900", "Jobs.cz")
		require.True(t, got.Parsed())
		assert.Equal(t, 600, *got.Min)
		assert.Equal(t, 900, *got.Max)
	})
}

func TestParser_CurrencyConversion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantAvg int
	}{
		{"eur", "2000 EUR", 50000},
		{"eur symbol", "2000 €", 50000},
		{"usd", "3000 USD", 69000},
		{"gbp", "2500 GBP", 72500},
		{"pln", "10000 PLN", 58000},
		{"chf", "5000 CHF", 130000},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, "")
			require.True(t, got.Parsed())
			assert.Equal(t, tt.wantAvg, *got.Avg)
		})
	}
}

func TestParser_CustomRates(t *testing.T) {
	p := NewParser(config.Rates{"EUR": 24.5}, logger.NewNop())
	got := p.Parse("1000 EUR", "")
	require.True(t, got.Parsed())
	assert.Equal(t, 24500, *got.Avg)
}

func TestParser_Sentinels(t *testing.T) {
	p := newTestParser()

	t.Run("negotiable", func(t *testing.T) {
		for _, input := range []string{"dohodou", "Mzda dohodou", "negotiable", "TBD"} {
			got := p.Parse(input, "")
			require.True(t, got.Parsed(), "input %q", input)
			assert.Equal(t, -1, *got.Avg, "input %q", input)
		}
	})

	t.Run("unpaid", func(t *testing.T) {
		for _, input := range []string{"unpaid internship", "0 Kč"} {
			got := p.Parse(input, "")
			require.True(t, got.Parsed(), "input %q", input)
			assert.Equal(t, 0, *got.Avg, "input %q", input)
		}
	})
}

func TestParser_Unparsable(t *testing.T) {
	p := newTestParser()
	for _, input := range []string{"", "   ", "konkurenceschopná mzda", "dle zkušeností"} {
		got := p.Parse(input, "")
		assert.False(t, got.Parsed(), "input %q should not parse", input)
		assert.Nil(t, got.Min)
		assert.Nil(t, got.Max)
		assert.Nil(t, got.Avg)
	}
}

func TestParser_YearNoise(t *testing.T) {
	p := newTestParser()

	t.Run("years ignored next to real salary", func(t *testing.T) {
		got := p.Parse("nástup 2025, mzda 45000 Kč", "")
		require.True(t, got.Parsed())
		assert.Equal(t, 45000, *got.Avg)
	})

	t.Run("lone year-like value is a salary", func(t *testing.T) {
		got := p.Parse("2000 EUR", "")
		require.True(t, got.Parsed())
		assert.Equal(t, 50000, *got.Avg)
	})

	t.Run("small noise filtered", func(t *testing.T) {
		got := p.Parse("3 směny, 35000 Kč", "")
		require.True(t, got.Parsed())
		assert.Equal(t, 35000, *got.Avg)
	})
}

func TestParser_Idempotence(t *testing.T) {
	inputs := []string{
		"40 000 - 60 000 Kč",
		"1,5k EUR",
		"45.000 Kč",
		"80k",
	}
	for _, in := range inputs {
		once := normalize(in)
		twice := normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", in)
	}
}

func TestParser_OrderingInvariant(t *testing.T) {
	p := newTestParser()
	inputs := []string{
		"40 000 - 60 000 Kč", "600-900", "250 Kč/hod", "2000 EUR", "70k-90k",
	}
	for _, in := range inputs {
		got := p.Parse(in, "")
		if !got.Parsed() || *got.Min <= 0 {
			continue
		}
		assert.LessOrEqual(t, *got.Min, *got.Avg, "input %q", in)
		assert.LessOrEqual(t, *got.Avg, *got.Max, "input %q", in)
	}
}
