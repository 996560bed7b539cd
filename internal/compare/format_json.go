package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty         bool
	OmitBreakdowns bool // drop per-variant breakdowns, keeping only the metrics
}

// Format renders compSet as JSON. Money fields are decimal strings.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	payload := compSet
	if jf.OmitBreakdowns {
		payload = stripBreakdowns(compSet)
	}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func stripBreakdowns(compSet *ComparisonSet) *ComparisonSet {
	out := *compSet
	if compSet.BaseResult != nil {
		base := *compSet.BaseResult
		base.Breakdown = nil
		out.BaseResult = &base
	}
	out.AlternativeResults = make([]ComparisonResult, len(compSet.AlternativeResults))
	for i, alt := range compSet.AlternativeResults {
		alt.Breakdown = nil
		out.AlternativeResults[i] = alt
	}
	return &out
}
