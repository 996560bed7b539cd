package output

// DefaultAssumptions lists the modeling simplifications rendered under every
// detailed breakdown.
var DefaultAssumptions = []string{
	"Federal tax: standard deduction for the filing status, no credits or itemized deductions",
	"State tax: flat and graduated rates apply to gross income (no state deduction)",
	"Social Security: 6.2% up to the wage base; Medicare: 1.45% plus 0.9% above the filing-status threshold",
	"Per-period amounts are annual amounts divided by the number of pay periods",
}
