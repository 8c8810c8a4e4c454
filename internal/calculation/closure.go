package calculation

import (
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ElapsedYears is the year fraction between start and closure under dayCount,
// floored at zero
func ElapsedYears(start, closure dateutil.Date, dayCount dateutil.DayCount) decimal.Decimal {
	days := dateutil.DaysBetween(start, closure)
	if days <= 0 {
		return decimal.Zero
	}
	basis := decimal.NewFromFloat(dayCount.Normalize().Basis())
	return decimal.NewFromInt(int64(days)).Div(basis)
}

// PenaltyPercent returns the penalty rate to apply: the loyalty override when
// one is supplied, the bank-wide percentage otherwise
func PenaltyPercent(bankWide decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return bankWide
}

// SimulateClosure computes the payout of closing terms early on closureDate.
//
// Interest accrues with the same formula as the full-term valuation, evaluated
// at the elapsed year fraction. The penalty is a percentage of accrued
// interest, and the payable amount is principal plus net interest, never below
// zero. The closure date is not checked against the deposit's active window;
// see config.ValidateClosureWindow.
func SimulateClosure(terms domain.DepositTerms, closureDate dateutil.Date, conv domain.InterestConvention, penaltyPercent decimal.Decimal, dayCount dateutil.DayCount) domain.ClosureSimulation {
	elapsed := ElapsedYears(terms.StartDate, closureDate, dayCount)

	accrued := AmountForYears(terms.Principal, terms.AnnualRatePercent, elapsed, conv).Sub(terms.Principal)
	penalty := accrued.Mul(penaltyPercent).Div(hundred)
	net := accrued.Sub(penalty)

	payable := terms.Principal.Add(net)
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	return domain.ClosureSimulation{
		AccruedInterest:    accrued,
		Penalty:            penalty,
		PenaltyPercentUsed: penaltyPercent,
		NetInterest:        net,
		PayableAmount:      payable,
		ElapsedYears:       elapsed,
	}
}
