package domain

import (
	"time"

	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RateSource records where the rate used in a preview came from
type RateSource string

const (
	RateManual  RateSource = "manual"
	RateDefault RateSource = "default"
)

// Preview is the result of one recomputation of the opening form
type Preview struct {
	Terms      DepositTerms       `json:"terms"`
	Convention InterestConvention `json:"interest_type"`
	RateSource RateSource         `json:"rate_source"`
	Projection MaturityProjection `json:"projection"`
}

// Report bundles everything the output formatters render for one deposit
type Report struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	CustomerName string             `json:"customer_name,omitempty"`
	Preview      Preview            `json:"preview"`
	DayCount     dateutil.DayCount  `json:"day_count"`
	ClosureDate  *dateutil.Date     `json:"closure_date,omitempty"`
	Closure      *ClosureSimulation `json:"closure,omitempty"`
}

// TotalInterest returns the interest earned if the deposit runs to maturity
func (r *Report) TotalInterest() decimal.Decimal {
	return r.Preview.Projection.Interest(r.Preview.Terms.Principal)
}
