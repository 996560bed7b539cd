package domain

import (
	"github.com/shopspring/decimal"
)

// TaxYearRules contains all rate/threshold data for one tax table version.
// It is loaded from YAML (see internal/config/data) and turned into immutable
// evaluators by calculation.NewRuleSet.
type TaxYearRules struct {
	Metadata      RulesMetadata               `yaml:"metadata" json:"metadata"`
	Federal       FederalTaxRules             `yaml:"federal" json:"federal"`
	Levies        []LevyRuleConfig            `yaml:"levies" json:"levies"`
	Jurisdictions map[string]JurisdictionRule `yaml:"jurisdictions" json:"jurisdictions"`
}

// RulesMetadata describes where a rule set came from.
type RulesMetadata struct {
	Version     string `yaml:"version" json:"version"`
	TaxYear     int    `yaml:"tax_year" json:"taxYear"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Description string `yaml:"description" json:"description"`
}

// BracketConfig is one (threshold, rate) row as written in a rules file.
type BracketConfig struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// FederalTaxRules contains the standard deduction and bracket table per filing status
type FederalTaxRules struct {
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	Brackets          map[FilingStatus][]BracketConfig `yaml:"brackets" json:"brackets"`
}

// Levy rule kinds
const (
	LevyCapped   = "capped"
	LevySurtaxed = "surtaxed"
)

// LevyRuleConfig is a payroll levy. Capped uses Rate and WageBaseCap;
// Surtaxed uses BaseRate, SurtaxRate and Thresholds.
type LevyRuleConfig struct {
	Name        string                           `yaml:"name" json:"name"`
	Type        string                           `yaml:"type" json:"type"`
	Rate        decimal.Decimal                  `yaml:"rate,omitempty" json:"rate,omitempty"`
	WageBaseCap decimal.Decimal                  `yaml:"wage_base_cap,omitempty" json:"wageBaseCap,omitempty"`
	BaseRate    decimal.Decimal                  `yaml:"base_rate,omitempty" json:"baseRate,omitempty"`
	SurtaxRate  decimal.Decimal                  `yaml:"surtax_rate,omitempty" json:"surtaxRate,omitempty"`
	Thresholds  map[FilingStatus]decimal.Decimal `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
}

// Jurisdiction policy kinds
const (
	PolicyExempt    = "exempt"
	PolicyFlat      = "flat"
	PolicyGraduated = "graduated"
)

// JurisdictionRule is the rules-file shape of a jurisdiction policy.
type JurisdictionRule struct {
	Name     string                           `yaml:"name" json:"name"`
	Type     string                           `yaml:"type" json:"type"`
	Rate     decimal.Decimal                  `yaml:"rate,omitempty" json:"rate,omitempty"`
	Brackets map[FilingStatus][]BracketConfig `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}
