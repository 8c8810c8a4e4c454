package config

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerms marks deposit terms that cannot be valued
	ErrInvalidTerms = errors.New("invalid deposit terms")
	// ErrClosureOutsideWindow marks a closure date outside [start, maturity)
	ErrClosureOutsideWindow = errors.New("closure date outside the deposit's active window")
)

// Bounds on the annual rate accepted anywhere in the toolkit
var (
	MinRatePercent = decimal.Zero
	MaxRatePercent = decimal.NewFromInt(20)
)

var hundred = decimal.NewFromInt(100)

func validateRate(rate decimal.Decimal) error {
	if rate.LessThan(MinRatePercent) || rate.GreaterThan(MaxRatePercent) {
		return fmt.Errorf("rate must be between %s%% and %s%%, got %s%%: %w",
			MinRatePercent.String(), MaxRatePercent.String(), rate.String(), ErrInvalidTerms)
	}
	return nil
}

// ValidateTerms checks that terms can be valued: a non-negative principal,
// a tenure of at least one month and a rate inside the accepted bounds
func ValidateTerms(terms domain.DepositTerms) error {
	if terms.Principal.IsNegative() {
		return fmt.Errorf("principal cannot be negative, got %s: %w", terms.Principal.String(), ErrInvalidTerms)
	}
	if terms.TenureMonths <= 0 {
		return fmt.Errorf("tenure must be at least 1 month, got %d: %w", terms.TenureMonths, ErrInvalidTerms)
	}
	if terms.StartDate.IsZero() {
		return fmt.Errorf("start date is required: %w", ErrInvalidTerms)
	}
	return validateRate(terms.AnnualRatePercent)
}

// ValidateClosureWindow checks that closure falls on or after the start date
// and strictly before maturity
func ValidateClosureWindow(terms domain.DepositTerms, closure dateutil.Date) error {
	maturity := dateutil.AddMonths(terms.StartDate, terms.TenureMonths)
	if closure.Before(terms.StartDate) {
		return fmt.Errorf("closure %s is before start %s: %w", closure, terms.StartDate, ErrClosureOutsideWindow)
	}
	if !closure.Before(maturity) {
		return fmt.Errorf("closure %s is on or after maturity %s: %w", closure, maturity, ErrClosureOutsideWindow)
	}
	return nil
}
