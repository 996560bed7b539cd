package domain

import (
	"strings"
)

// FilingStatus is the household filing status used to select deductions,
// bracket tables and surtax thresholds.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// FilingStatuses lists every supported filing status in display order.
var FilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJoint,
	FilingMarriedSeparate,
	FilingHeadOfHousehold,
}

// filingAliases accepts the spellings people actually type on a command line
var filingAliases = map[string]FilingStatus{
	"single":            FilingSingle,
	"s":                 FilingSingle,
	"married_joint":     FilingMarriedJoint,
	"mfj":               FilingMarriedJoint,
	"married":           FilingMarriedJoint,
	"married_separate":  FilingMarriedSeparate,
	"mfs":               FilingMarriedSeparate,
	"head_of_household": FilingHeadOfHousehold,
	"hoh":               FilingHeadOfHousehold,
}

// ParseFilingStatus converts user input into a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if fs, ok := filingAliases[key]; ok {
		return fs, nil
	}
	return "", NewCalculationError(ErrInvalidInput, "parse_filing_status", "unknown filing status %q", s)
}

// Valid reports whether fs is one of the supported statuses.
func (fs FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// Label returns a human readable name.
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingMarriedJoint:
		return "Married Filing Jointly"
	case FilingMarriedSeparate:
		return "Married Filing Separately"
	case FilingHeadOfHousehold:
		return "Head of Household"
	default:
		return string(fs)
	}
}
