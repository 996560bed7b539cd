package calculation

import (
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// JurisdictionPolicy is a closed set of state/local income tax policies:
// ExemptPolicy, FlatPolicy and *GraduatedPolicy. The unexported method keeps
// other packages from adding variants that ComputeJurisdictionTax would not
// know how to evaluate.
type JurisdictionPolicy interface {
	Kind() string
	jurisdictionPolicy()
}

// ExemptPolicy covers jurisdictions without an income tax.
type ExemptPolicy struct{}

// FlatPolicy taxes the whole gross income at one rate. There is no
// jurisdiction deduction.
type FlatPolicy struct {
	Rate decimal.Decimal
}

// GraduatedPolicy applies a bracket table to gross income. Filing statuses
// without their own table use the Single table.
type GraduatedPolicy struct {
	tables map[domain.FilingStatus]*BracketTable
}

func (ExemptPolicy) Kind() string     { return domain.PolicyExempt }
func (FlatPolicy) Kind() string       { return domain.PolicyFlat }
func (*GraduatedPolicy) Kind() string { return domain.PolicyGraduated }

func (ExemptPolicy) jurisdictionPolicy()     {}
func (FlatPolicy) jurisdictionPolicy()       {}
func (*GraduatedPolicy) jurisdictionPolicy() {}

// NewFlatPolicy validates the rate.
func NewFlatPolicy(rate decimal.Decimal) (FlatPolicy, error) {
	if rate.IsNegative() {
		return FlatPolicy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_flat_policy", "flat rate cannot be negative: %s", rate.String())
	}
	return FlatPolicy{Rate: rate}, nil
}

// NewGraduatedPolicy requires at least a Single table.
func NewGraduatedPolicy(tables map[domain.FilingStatus]*BracketTable) (*GraduatedPolicy, error) {
	if tables[domain.FilingSingle] == nil {
		return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_graduated_policy", "single bracket table is required")
	}
	copied := make(map[domain.FilingStatus]*BracketTable, len(tables))
	for status, t := range tables {
		copied[status] = t
	}
	return &GraduatedPolicy{tables: copied}, nil
}

// Table returns the table used for a filing status.
func (gp *GraduatedPolicy) Table(status domain.FilingStatus) *BracketTable {
	if t, ok := gp.tables[status]; ok && t != nil {
		return t
	}
	return gp.tables[domain.FilingSingle]
}

// ComputeJurisdictionTax evaluates a policy on annual gross income.
func ComputeJurisdictionTax(policy JurisdictionPolicy, annualGross decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	switch p := policy.(type) {
	case ExemptPolicy:
		return decimal.Zero, nil
	case FlatPolicy:
		if annualGross.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, nil
		}
		return annualGross.Mul(p.Rate), nil
	case *GraduatedPolicy:
		return p.Table(status).Evaluate(annualGross), nil
	default:
		return decimal.Zero, domain.NewCalculationError(domain.ErrInvalidInput, "compute_jurisdiction_tax", "unsupported jurisdiction policy %T", policy)
	}
}

// jurisdictionMarginalRate is the policy's rate on the next dollar of gross.
func jurisdictionMarginalRate(policy JurisdictionPolicy, annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	switch p := policy.(type) {
	case FlatPolicy:
		return p.Rate
	case *GraduatedPolicy:
		return p.Table(status).MarginalRate(annualGross)
	default:
		return decimal.Zero
	}
}

// Jurisdiction binds a policy to its code, e.g. "PA".
type Jurisdiction struct {
	Code   string
	Name   string
	Policy JurisdictionPolicy
}

// NormalizeJurisdictionCode upper-cases and trims a code.
func NormalizeJurisdictionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewJurisdiction builds a Jurisdiction from its rules-file definition.
func NewJurisdiction(code string, rule domain.JurisdictionRule) (Jurisdiction, error) {
	j := Jurisdiction{Code: NormalizeJurisdictionCode(code), Name: rule.Name}
	if j.Code == "" {
		return Jurisdiction{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_jurisdiction", "jurisdiction code is required")
	}
	if j.Name == "" {
		j.Name = j.Code
	}

	switch strings.ToLower(rule.Type) {
	case domain.PolicyExempt:
		j.Policy = ExemptPolicy{}
	case domain.PolicyFlat:
		p, err := NewFlatPolicy(rule.Rate)
		if err != nil {
			return Jurisdiction{}, &domain.CalculationError{Kind: domain.ErrInvalidInput, Operation: "new_jurisdiction", Message: j.Code, Cause: err}
		}
		j.Policy = p
	case domain.PolicyGraduated:
		tables := make(map[domain.FilingStatus]*BracketTable, len(rule.Brackets))
		for status, rows := range rule.Brackets {
			if !status.Valid() {
				return Jurisdiction{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_jurisdiction", "%s: unknown filing status %q", j.Code, status)
			}
			table, err := NewBracketTableFromConfig(rows)
			if err != nil {
				return Jurisdiction{}, &domain.CalculationError{Kind: domain.ErrInvalidBracketTable, Operation: "new_jurisdiction", Message: j.Code + " " + string(status), Cause: err}
			}
			tables[status] = table
		}
		p, err := NewGraduatedPolicy(tables)
		if err != nil {
			return Jurisdiction{}, &domain.CalculationError{Kind: domain.ErrInvalidBracketTable, Operation: "new_jurisdiction", Message: j.Code, Cause: err}
		}
		j.Policy = p
	default:
		return Jurisdiction{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_jurisdiction", "%s: unknown policy type %q", j.Code, rule.Type)
	}
	return j, nil
}
