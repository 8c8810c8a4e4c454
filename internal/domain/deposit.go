package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// InterestConvention selects the accrual formula. It is a bank-wide setting.
type InterestConvention string

const (
	Simple   InterestConvention = "SIMPLE"
	Compound InterestConvention = "COMPOUND"
)

// ParseInterestConvention parses SIMPLE or COMPOUND, case-insensitively
func ParseInterestConvention(s string) (InterestConvention, error) {
	switch InterestConvention(strings.ToUpper(strings.TrimSpace(s))) {
	case Simple:
		return Simple, nil
	case Compound:
		return Compound, nil
	default:
		return "", fmt.Errorf("interest type must be SIMPLE or COMPOUND, got %q", s)
	}
}

// Valid reports whether c is a known convention
func (c InterestConvention) Valid() bool {
	return c == Simple || c == Compound
}

// DepositStatus is the lifecycle state of a deposit held by the FD service
type DepositStatus string

const (
	StatusActive DepositStatus = "ACTIVE"
	StatusClosed DepositStatus = "CLOSED"
)

// DepositTerms are the inputs to a maturity preview
type DepositTerms struct {
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TenureMonths      int             `yaml:"tenure_months" json:"tenure_months"`
	StartDate         dateutil.Date   `yaml:"start_date" json:"start_date"`
}

// RateField models the interest-rate input of the opening form. A resolved
// default rate may only replace Value while Managed is true.
type RateField struct {
	Value   decimal.Decimal
	Managed bool
}

// DepositInput is the deposit description read from a YAML file or the
// preview API. InterestRate is optional: when omitted the rate is
// system-managed and comes from the default rate table.
type DepositInput struct {
	CustomerName    string           `yaml:"customer_name" json:"customer_name"`
	IDType          string           `yaml:"id_type" json:"id_type"`
	IDNumber        string           `yaml:"id_number" json:"id_number"`
	DepositAmount   decimal.Decimal  `yaml:"deposit_amount" json:"deposit_amount"`
	InterestRate    *decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	TenureMonths    int              `yaml:"tenure_months" json:"tenure_months"`
	StartDate       dateutil.Date    `yaml:"start_date" json:"start_date"`
	ClosureDate     *dateutil.Date   `yaml:"closure_date,omitempty" json:"closure_date,omitempty"`
	PenaltyOverride *decimal.Decimal `yaml:"penalty_percent_override,omitempty" json:"penalty_percent_override,omitempty"`
}

// RateField returns the rate input in its form-field representation
func (in *DepositInput) RateField() RateField {
	if in.InterestRate == nil {
		return RateField{Managed: true}
	}
	return RateField{Value: *in.InterestRate}
}

// Terms builds the preview terms using rate as the annual rate
func (in *DepositInput) Terms(rate decimal.Decimal) DepositTerms {
	return DepositTerms{
		Principal:         in.DepositAmount,
		AnnualRatePercent: rate,
		TenureMonths:      in.TenureMonths,
		StartDate:         in.StartDate,
	}
}

// Request returns the body sent to the service's create-deposit endpoint
func (in *DepositInput) Request(rate decimal.Decimal) DepositRequest {
	return DepositRequest{
		CustomerName:  in.CustomerName,
		IDType:        in.IDType,
		IDNumber:      in.IDNumber,
		DepositAmount: in.DepositAmount,
		InterestRate:  rate,
		TenureMonths:  in.TenureMonths,
		StartDate:     in.StartDate,
	}
}

// DepositRequest is the create-deposit wire shape
type DepositRequest struct {
	CustomerName  string          `json:"customer_name"`
	IDType        string          `json:"id_type"`
	IDNumber      string          `json:"id_number"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	TenureMonths  int             `json:"tenure_months"`
	StartDate     dateutil.Date   `json:"start_date"`
}

// MarshalJSON emits amounts as JSON numbers, which is what the service expects
func (r DepositRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CustomerName  string        `json:"customer_name"`
		IDType        string        `json:"id_type"`
		IDNumber      string        `json:"id_number"`
		DepositAmount json.Number   `json:"deposit_amount"`
		InterestRate  json.Number   `json:"interest_rate"`
		TenureMonths  int           `json:"tenure_months"`
		StartDate     dateutil.Date `json:"start_date"`
	}{
		CustomerName:  r.CustomerName,
		IDType:        r.IDType,
		IDNumber:      r.IDNumber,
		DepositAmount: number(r.DepositAmount),
		InterestRate:  number(r.InterestRate),
		TenureMonths:  r.TenureMonths,
		StartDate:     r.StartDate,
	})
}

// Deposit is an FD record as held by the service
type Deposit struct {
	ID             string          `json:"id"`
	FDNumber       string          `json:"fd_number"`
	CustomerName   string          `json:"customer_name"`
	IDType         string          `json:"id_type"`
	IDNumber       string          `json:"id_number"`
	DepositAmount  decimal.Decimal `json:"deposit_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TenureMonths   int             `json:"tenure_months"`
	StartDate      dateutil.Date   `json:"start_date"`
	MaturityDate   dateutil.Date   `json:"maturity_date"`
	MaturityAmount decimal.Decimal `json:"maturity_amount"`
	Status         DepositStatus   `json:"status"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
}

// Terms returns the valuation terms of a stored deposit
func (d *Deposit) Terms() DepositTerms {
	return DepositTerms{
		Principal:         d.DepositAmount,
		AnnualRatePercent: d.InterestRate,
		TenureMonths:      d.TenureMonths,
		StartDate:         d.StartDate,
	}
}

// FDNumber formats the human-facing deposit number, e.g. FD-2024-0001
func FDNumber(year, seq int) string {
	return fmt.Sprintf("FD-%d-%04d", year, seq)
}

// MaturityProjection is the derived maturity date and amount of a deposit
type MaturityProjection struct {
	MaturityDate   dateutil.Date   `yaml:"maturity_date" json:"maturity_date"`
	MaturityAmount decimal.Decimal `yaml:"maturity_amount" json:"maturity_amount"`
}

// Interest returns the interest earned over the full tenure
func (p MaturityProjection) Interest(principal decimal.Decimal) decimal.Decimal {
	return p.MaturityAmount.Sub(principal)
}

func (p MaturityProjection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MaturityDate   dateutil.Date `json:"maturity_date"`
		MaturityAmount json.Number   `json:"maturity_amount"`
	}{p.MaturityDate, number(p.MaturityAmount)})
}

// ClosureRequest is the body of the simulate/confirm closure endpoints
type ClosureRequest struct {
	ClosureDate dateutil.Date `json:"closure_date"`
}

// ClosureSimulation is the payout breakdown of a premature closure. Field
// names match the service's simulate-closure response.
type ClosureSimulation struct {
	AccruedInterest    decimal.Decimal `json:"accrued_interest"`
	Penalty            decimal.Decimal `json:"penalty"`
	PenaltyPercentUsed decimal.Decimal `json:"penalty_percent_used"`
	NetInterest        decimal.Decimal `json:"net_interest"`
	PayableAmount      decimal.Decimal `json:"payable_amount"`
	ElapsedYears       decimal.Decimal `json:"elapsed_years"`
}

func (s ClosureSimulation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AccruedInterest    json.Number `json:"accrued_interest"`
		Penalty            json.Number `json:"penalty"`
		PenaltyPercentUsed json.Number `json:"penalty_percent_used"`
		NetInterest        json.Number `json:"net_interest"`
		PayableAmount      json.Number `json:"payable_amount"`
		ElapsedYears       json.Number `json:"elapsed_years"`
	}{
		AccruedInterest:    number(s.AccruedInterest),
		Penalty:            number(s.Penalty),
		PenaltyPercentUsed: number(s.PenaltyPercentUsed),
		NetInterest:        number(s.NetInterest),
		PayableAmount:      number(s.PayableAmount),
		ElapsedYears:       number(s.ElapsedYears),
	})
}

// DashboardSummary aggregates the deposit book
type DashboardSummary struct {
	TotalActiveFDs           int             `json:"total_active_fds"`
	TotalMaturityValueActive decimal.Decimal `json:"total_maturity_value_active"`
	TotalClosedFDs           int             `json:"total_closed_fds"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
