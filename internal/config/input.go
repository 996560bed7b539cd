package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/tax_2025.yaml
var defaultRulesYAML []byte

// DefaultTableVersion is the version of the embedded rule set.
const DefaultTableVersion = "2025"

// InputParser handles parsing of rule-set and request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultRules parses the embedded rule set.
func (ip *InputParser) DefaultRules() (*domain.TaxYearRules, error) {
	rules, err := ip.ParseRules(defaultRulesYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded rules: %w", err)
	}
	return rules, nil
}

// LoadRulesFromFile loads a rule set from a YAML or JSON file
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxYearRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	rules, err := ip.ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rules, nil
}

// ParseRules decodes and validates a rule set document.
func (ip *InputParser) ParseRules(data []byte) (*domain.TaxYearRules, error) {
	var rules domain.TaxYearRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return &rules, nil
}

// ValidateRules checks the structure of a rule set. Bracket ordering is
// checked again when calculation.NewRuleSet builds the tables.
func (ip *InputParser) ValidateRules(rules *domain.TaxYearRules) error {
	if strings.TrimSpace(rules.Metadata.Version) == "" {
		return fmt.Errorf("metadata.version is required")
	}
	if err := ip.validateFederal(&rules.Federal); err != nil {
		return fmt.Errorf("federal validation failed: %w", err)
	}
	for i, levy := range rules.Levies {
		if err := ip.validateLevy(&levy); err != nil {
			return fmt.Errorf("levy %d (%s) validation failed: %w", i, levy.Name, err)
		}
	}
	if len(rules.Jurisdictions) == 0 {
		return fmt.Errorf("no jurisdictions provided")
	}
	for code, j := range rules.Jurisdictions {
		if err := ip.validateJurisdiction(&j); err != nil {
			return fmt.Errorf("jurisdiction %s validation failed: %w", code, err)
		}
	}
	return nil
}

// validateFederal validates the federal standard deduction and brackets
func (ip *InputParser) validateFederal(federal *domain.FederalTaxRules) error {
	if _, ok := federal.Brackets[domain.FilingSingle]; !ok {
		return fmt.Errorf("brackets for single filers are required")
	}
	if _, ok := federal.StandardDeduction[domain.FilingSingle]; !ok {
		return fmt.Errorf("standard deduction for single filers is required")
	}
	for status, ded := range federal.StandardDeduction {
		if !status.Valid() {
			return fmt.Errorf("unknown filing status %q in standard_deduction", status)
		}
		if ded.LessThan(decimal.Zero) {
			return fmt.Errorf("standard deduction for %s cannot be negative", status)
		}
	}
	for status, rows := range federal.Brackets {
		if !status.Valid() {
			return fmt.Errorf("unknown filing status %q in brackets", status)
		}
		if err := validateBrackets(rows); err != nil {
			return fmt.Errorf("brackets for %s: %w", status, err)
		}
	}
	return nil
}

// validateLevy validates a single levy definition
func (ip *InputParser) validateLevy(levy *domain.LevyRuleConfig) error {
	if levy.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch levy.Type {
	case domain.LevyCapped:
		if levy.Rate.LessThan(decimal.Zero) || levy.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("rate must be between 0 and 1")
		}
		if levy.WageBaseCap.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("wage_base_cap must be positive")
		}
	case domain.LevySurtaxed:
		if levy.BaseRate.LessThan(decimal.Zero) || levy.BaseRate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("base_rate must be between 0 and 1")
		}
		if levy.SurtaxRate.LessThan(decimal.Zero) || levy.SurtaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("surtax_rate must be between 0 and 1")
		}
		if _, ok := levy.Thresholds[domain.FilingSingle]; !ok {
			return fmt.Errorf("a single filer threshold is required")
		}
		for status := range levy.Thresholds {
			if !status.Valid() {
				return fmt.Errorf("unknown filing status %q in thresholds", status)
			}
		}
	default:
		return fmt.Errorf("type must be '%s' or '%s'", domain.LevyCapped, domain.LevySurtaxed)
	}
	return nil
}

// validateJurisdiction validates a jurisdiction policy definition
func (ip *InputParser) validateJurisdiction(j *domain.JurisdictionRule) error {
	switch j.Type {
	case domain.PolicyExempt:
		if !j.Rate.IsZero() || len(j.Brackets) > 0 {
			return fmt.Errorf("exempt jurisdictions cannot define a rate or brackets")
		}
	case domain.PolicyFlat:
		if j.Rate.LessThan(decimal.Zero) || j.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("rate must be between 0 and 1")
		}
	case domain.PolicyGraduated:
		if _, ok := j.Brackets[domain.FilingSingle]; !ok {
			return fmt.Errorf("brackets for single filers are required")
		}
		for status, rows := range j.Brackets {
			if status != domain.FilingSingle && status != domain.FilingMarriedJoint {
				return fmt.Errorf("graduated brackets support only single and married_joint, got %q", status)
			}
			if err := validateBrackets(rows); err != nil {
				return fmt.Errorf("brackets for %s: %w", status, err)
			}
		}
	default:
		return fmt.Errorf("type must be '%s', '%s' or '%s'", domain.PolicyExempt, domain.PolicyFlat, domain.PolicyGraduated)
	}
	return nil
}

func validateBrackets(rows []domain.BracketConfig) error {
	if len(rows) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	for i, r := range rows {
		if r.Rate.LessThan(decimal.Zero) || r.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d rate must be between 0 and 1", i)
		}
	}
	return nil
}

// requestFile is the on-disk shape of a calculation request. Enumerations are
// kept as strings so aliases like "mfj" or "bi-weekly" are accepted.
type requestFile struct {
	Amount       string `yaml:"amount"`
	Frequency    string `yaml:"frequency"`
	FilingStatus string `yaml:"filing_status"`
	Jurisdiction string `yaml:"jurisdiction"`
	TableVersion string `yaml:"table_version"`
}

// LoadRequestFromFile loads a calculation request from a YAML or JSON file.
func (ip *InputParser) LoadRequestFromFile(filename string) (*domain.CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var raw requestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return ip.BuildRequest(raw.Amount, raw.Frequency, raw.FilingStatus, raw.Jurisdiction, raw.TableVersion)
}

// BuildRequest validates raw string inputs into a CalculationRequest.
func (ip *InputParser) BuildRequest(amount, frequency, filingStatus, jurisdiction, tableVersion string) (*domain.CalculationRequest, error) {
	amt, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if frequency == "" {
		frequency = string(domain.Annual)
	}
	freq, err := domain.ParsePayFrequency(frequency)
	if err != nil {
		return nil, fmt.Errorf("frequency: %w", err)
	}
	if filingStatus == "" {
		filingStatus = string(domain.FilingSingle)
	}
	status, err := domain.ParseFilingStatus(filingStatus)
	if err != nil {
		return nil, fmt.Errorf("filing status: %w", err)
	}
	if strings.TrimSpace(jurisdiction) == "" {
		return nil, fmt.Errorf("jurisdiction: %w", domain.NewCalculationError(domain.ErrInvalidInput, "build_request", "jurisdiction code is required"))
	}
	return &domain.CalculationRequest{
		Amount:           amt,
		Frequency:        freq,
		FilingStatus:     status,
		JurisdictionCode: calculation.NormalizeJurisdictionCode(jurisdiction),
		TableVersion:     strings.TrimSpace(tableVersion),
	}, nil
}

// LoadEngine builds a calculation engine from the embedded rule set plus any
// additional rule files. The last file loaded becomes the default version.
func (ip *InputParser) LoadEngine(ruleFiles ...string) (*calculation.CalculationEngine, error) {
	defaults, err := ip.DefaultRules()
	if err != nil {
		return nil, err
	}
	all := []*domain.TaxYearRules{defaults}
	for _, f := range ruleFiles {
		rules, err := ip.LoadRulesFromFile(f)
		if err != nil {
			return nil, err
		}
		all = append(all, rules)
	}

	sets := make([]*calculation.RuleSet, 0, len(all))
	for _, rules := range all {
		rs, err := calculation.NewRuleSet(*rules)
		if err != nil {
			return nil, fmt.Errorf("rule set %s: %w", rules.Metadata.Version, err)
		}
		sets = append(sets, rs)
	}
	return calculation.NewCalculationEngine(sets...)
}
