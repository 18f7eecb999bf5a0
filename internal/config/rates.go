package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rates maps an ISO currency code to its CZK multiplier.
type Rates map[string]float64

// DefaultRates are the built-in CZK conversion rates, calibrated to the
// current Czech market. Refreshing them is a configuration concern.
func DefaultRates() Rates {
	return Rates{
		"EUR": 25.0,
		"USD": 23.0,
		"GBP": 29.0,
		"PLN": 5.8,
		"CHF": 26.0,
	}
}

// LoadRates reads the currency rate file at path. A missing file yields the
// defaults; a malformed file is an error. Codes absent from the file keep
// their default values.
func LoadRates(path string) (Rates, error) {
	rates := DefaultRates()
	if path == "" {
		return rates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rates, nil
		}
		return nil, fmt.Errorf("read rates %s: %w", path, err)
	}

	loaded := Rates{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse rates %s: %w", path, err)
	}

	for code, rate := range loaded {
		if rate <= 0 {
			return nil, fmt.Errorf("rates %s: non-positive rate for %s", path, code)
		}
		rates[code] = rate
	}

	return rates, nil
}
