package output

import (
	"encoding/json"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// JSONFormatter renders a breakdown as JSON. Decimal fields are emitted as
// strings so no precision is lost.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(tb *domain.TaxBreakdown) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(tb, "", "  ")
	}
	return json.Marshal(tb)
}
