package remote

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// AmountTolerance is the largest difference between a local and a service
// amount that still counts as agreement at 2 decimal places
var AmountTolerance = decimal.RequireFromString("0.01")

// Mismatch is one field on which the local preview and the service disagree
type Mismatch struct {
	Field  string
	Local  string
	Remote string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: local %s, service %s", m.Field, m.Local, m.Remote)
}

// CheckResult is the outcome of checking one deposit
type CheckResult struct {
	DepositID  string
	FDNumber   string
	Mismatches []Mismatch
}

// OK reports whether the preview agreed with the service
func (r CheckResult) OK() bool {
	return len(r.Mismatches) == 0
}

// CheckPreview recomputes a stored deposit's maturity locally and compares
// it with what the service recorded
func CheckPreview(d domain.Deposit, settings *domain.Settings) CheckResult {
	result := CheckResult{DepositID: d.ID, FDNumber: d.FDNumber}
	local := calculation.ProjectMaturity(d.Terms(), settings.InterestType)

	if local.MaturityDate != d.MaturityDate {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:  "maturity_date",
			Local:  local.MaturityDate.String(),
			Remote: d.MaturityDate.String(),
		})
	}
	if m, ok := compareAmount("maturity_amount", local.MaturityAmount, d.MaturityAmount); !ok {
		result.Mismatches = append(result.Mismatches, m)
	}
	return result
}

// CheckClosure compares a local closure simulation with the service's
func CheckClosure(local, remote domain.ClosureSimulation) []Mismatch {
	var out []Mismatch
	fields := []struct {
		name          string
		local, remote decimal.Decimal
	}{
		{"accrued_interest", local.AccruedInterest, remote.AccruedInterest},
		{"penalty", local.Penalty, remote.Penalty},
		{"net_interest", local.NetInterest, remote.NetInterest},
		{"payable_amount", local.PayableAmount, remote.PayableAmount},
	}
	for _, f := range fields {
		if m, ok := compareAmount(f.name, f.local, f.remote); !ok {
			out = append(out, m)
		}
	}
	return out
}

// Checker runs preview checks against a live service
type Checker struct {
	Client *Client
	Engine *calculation.Engine
}

// CheckAll fetches settings and the deposit register and checks every deposit.
// When closureDate is set, active deposits are also closure-checked on that
// date.
func (ch *Checker) CheckAll(ctx context.Context, filter ListFilter, closureDate dateutil.Date) ([]CheckResult, error) {
	settings, err := ch.Client.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	deposits, err := ch.Client.ListDeposits(ctx, filter)
	if err != nil {
		return nil, err
	}

	engine := ch.Engine
	if engine == nil {
		engine = calculation.NewEngine()
	}

	results := make([]CheckResult, 0, len(deposits))
	for _, d := range deposits {
		result := CheckPreview(d, settings)

		if !closureDate.IsZero() && d.Status == domain.StatusActive {
			local, err := engine.Simulate(d.Terms(), closureDate, settings, nil)
			if err != nil {
				if engine.Logger != nil {
					engine.Logger.Warnf("skipping closure check for %s: %v", d.FDNumber, err)
				}
			} else {
				remote, err := ch.Client.SimulateClosure(ctx, d.ID, closureDate)
				if err != nil {
					return results, err
				}
				result.Mismatches = append(result.Mismatches, CheckClosure(local, *remote)...)
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func compareAmount(field string, local, remote decimal.Decimal) (Mismatch, bool) {
	if local.Sub(remote).Abs().LessThanOrEqual(AmountTolerance) {
		return Mismatch{}, true
	}
	return Mismatch{Field: field, Local: local.StringFixed(2), Remote: remote.StringFixed(2)}, false
}
