package dataprocessing

import (
	"sort"

	"vacancystats/internal/errors"
	"vacancystats/pkg/contracts/domain"
)

// currencyToRUR holds the fixed conversion rates into domain.ReferenceCurrency.
var currencyToRUR = map[string]float64{
	"AZN": 35.68,
	"BYR": 23.91,
	"EUR": 59.90,
	"GEL": 21.74,
	"KGS": 0.76,
	"KZT": 0.13,
	domain.ReferenceCurrency: 1,
	"UAH": 1.64,
	"USD": 60.66,
	"UZS": 0.0055,
}

// RateFor returns the conversion rate of code into RUR.
func RateFor(code string) (float64, error) {
	rate, ok := currencyToRUR[code]
	if !ok {
		return 0, errors.NewCurrencyError(code).WithContext("supported", SupportedCurrencies())
	}
	return rate, nil
}

// SupportedCurrencies returns the known currency codes in alphabetical order.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(currencyToRUR))
	for code := range currencyToRUR {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// NormalizeSalary converts the midpoint of a salary range into RUR.
func NormalizeSalary(low, high float64, code string) (float64, error) {
	rate, err := RateFor(code)
	if err != nil {
		return 0, err
	}
	return 0.5 * (low + high) * rate, nil
}
