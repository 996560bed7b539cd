package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses an amount such as "5000", "$5,000.00" or "60000.5".
// Negative amounts are rejected.
func ParseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	if cleaned == "" {
		return decimal.Zero, NewCalculationError(ErrInvalidInput, "parse_money", "amount is empty")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &CalculationError{Kind: ErrInvalidInput, Operation: "parse_money", Message: "malformed amount " + s, Cause: err}
	}
	if d.IsNegative() {
		return decimal.Zero, NewCalculationError(ErrInvalidInput, "parse_money", "amount cannot be negative: %s", s)
	}
	return d, nil
}

// MoneyFromFloat converts a float amount, rejecting NaN, infinities and
// negative values.
func MoneyFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, NewCalculationError(ErrInvalidInput, "money_from_float", "amount must be finite, got %v", f)
	}
	if f < 0 {
		return decimal.Zero, NewCalculationError(ErrInvalidInput, "money_from_float", "amount cannot be negative: %v", f)
	}
	return decimal.NewFromFloat(f), nil
}

// ValidateAmount checks an already-parsed amount.
func ValidateAmount(operation string, d decimal.Decimal) error {
	if d.IsNegative() {
		return NewCalculationError(ErrInvalidInput, operation, "amount cannot be negative: %s", d.String())
	}
	return nil
}
