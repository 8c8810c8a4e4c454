package calculation

import (
	"math"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// ProjectMaturityDate returns the maturity date of a deposit opened on start
// for tenureMonths, with end-of-month clamping. Callers validate that the
// tenure is positive; zero returns start unchanged.
func ProjectMaturityDate(start dateutil.Date, tenureMonths int) dateutil.Date {
	return dateutil.AddMonths(start, tenureMonths)
}

// MaturityAmount values a deposit at the end of its tenure.
//
//	SIMPLE:   principal * (1 + r*years)
//	COMPOUND: principal * (1 + r)^years
//
// where years = tenureMonths/12 (not rounded) and r = annualRatePercent/100.
// The result is not rounded; display code rounds to 2 places.
func MaturityAmount(principal, annualRatePercent decimal.Decimal, tenureMonths int, conv domain.InterestConvention) decimal.Decimal {
	years := decimal.NewFromInt(int64(tenureMonths)).Div(twelve)
	return AmountForYears(principal, annualRatePercent, years, conv)
}

// AmountForYears is MaturityAmount for a fractional tenure expressed in years.
// Premature closure uses it with the elapsed year fraction.
func AmountForYears(principal, annualRatePercent, years decimal.Decimal, conv domain.InterestConvention) decimal.Decimal {
	if annualRatePercent.IsZero() || years.IsZero() {
		return principal
	}
	r := annualRatePercent.Div(hundred)

	if conv == domain.Simple {
		return principal.Add(principal.Mul(r).Mul(years))
	}

	// Annual compounding with a fractional exponent. decimal.Pow only handles
	// integral exponents, so the growth factor is taken in float64.
	factor := math.Pow(1+r.InexactFloat64(), years.InexactFloat64())
	return principal.Mul(decimal.NewFromFloat(factor))
}

// ProjectMaturity computes the maturity date and amount for terms
func ProjectMaturity(terms domain.DepositTerms, conv domain.InterestConvention) domain.MaturityProjection {
	return domain.MaturityProjection{
		MaturityDate:   ProjectMaturityDate(terms.StartDate, terms.TenureMonths),
		MaturityAmount: MaturityAmount(terms.Principal, terms.AnnualRatePercent, terms.TenureMonths, conv),
	}
}
