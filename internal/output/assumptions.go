package output

import (
	"fmt"

	"github.com/rgehrsitz/fdgo/internal/domain"
)

// DefaultAssumptions lists the valuation conventions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Maturity date: start date plus tenure in calendar months, clamped to month end",
	"Interest is computed on the unrounded tenure in years (months / 12)",
	"Amounts are rounded to 2 decimal places for display only",
	"Premature closure penalty is a percentage of accrued interest, not principal",
}

// Assumptions returns the assumptions that apply to report r
func Assumptions(r *domain.Report) []string {
	out := append([]string(nil), DefaultAssumptions...)
	switch r.Preview.Convention {
	case domain.Compound:
		out = append(out, "Interest convention: COMPOUND, annual compounding with fractional final year")
	default:
		out = append(out, "Interest convention: SIMPLE")
	}
	if r.Closure != nil {
		out = append(out, fmt.Sprintf("Elapsed time for closure: actual days, %s day count", r.DayCount.Normalize()))
	}
	return out
}
