package calculation

import (
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveDefaultRate picks the default annual rate for tenureMonths.
//
// An exact tenure match wins. Otherwise the entry with the smallest
// |tenure - tenureMonths| is used; on a tie the entry declared first in the
// table wins. That tie-break is deliberately loose and follows table order
// only. An empty table yields ok == false.
func ResolveDefaultRate(table domain.RateTable, tenureMonths int) (rate decimal.Decimal, ok bool) {
	if rate, ok := table.Get(tenureMonths); ok {
		return rate, true
	}

	best := -1
	bestDist := 0
	for i, e := range table {
		dist := e.TenureMonths - tenureMonths
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return decimal.Zero, false
	}
	return table[best].RatePercent, true
}

// ApplyDefaultRate writes the resolved default rate into field, but only when
// the field is system-managed. A rate the user typed is never replaced.
// It reports whether field was changed.
func ApplyDefaultRate(field *domain.RateField, table domain.RateTable, tenureMonths int) bool {
	if field == nil || !field.Managed {
		return false
	}
	rate, ok := ResolveDefaultRate(table, tenureMonths)
	if !ok {
		return false
	}
	field.Value = rate
	return true
}
