package domain

import (
	"strings"
)

// PayFrequency is how often a paycheck is issued.
type PayFrequency string

const (
	Weekly   PayFrequency = "weekly"
	Biweekly PayFrequency = "biweekly"
	Monthly  PayFrequency = "monthly"
	Annual   PayFrequency = "annual"
)

// PayFrequencies lists the supported frequencies from shortest to longest period.
var PayFrequencies = []PayFrequency{Weekly, Biweekly, Monthly, Annual}

var periodsPerYear = map[PayFrequency]int64{
	Weekly:   52,
	Biweekly: 26,
	Monthly:  12,
	Annual:   1,
}

// ParsePayFrequency converts user input into a PayFrequency.
func ParsePayFrequency(s string) (PayFrequency, error) {
	f := PayFrequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "yearly", "annually":
		f = Annual
	case "bi-weekly", "fortnightly":
		f = Biweekly
	}
	if _, ok := periodsPerYear[f]; !ok {
		return "", NewCalculationError(ErrInvalidInput, "parse_pay_frequency", "unknown pay frequency %q", s)
	}
	return f, nil
}

// PeriodsPerYear returns the number of pay periods in a year.
func (f PayFrequency) PeriodsPerYear() (int64, error) {
	n, ok := periodsPerYear[f]
	if !ok {
		return 0, NewCalculationError(ErrInvalidInput, "periods_per_year", "unknown pay frequency %q", string(f))
	}
	return n, nil
}
