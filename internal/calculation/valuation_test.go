package calculation

import (
	"testing"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMaturityAmount(t *testing.T) {
	principal := decimal.NewFromInt(100000)
	rate := decimal.NewFromInt(7)

	tests := []struct {
		name   string
		months int
		conv   domain.InterestConvention
		want   float64
	}{
		{"simple one year", 12, domain.Simple, 107000},
		{"compound one year", 12, domain.Compound, 107000},
		{"simple two years", 24, domain.Simple, 114000},
		{"compound two years", 24, domain.Compound, 114490},
		{"simple six months", 6, domain.Simple, 103500},
		{"compound six months", 6, domain.Compound, 103440.804},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaturityAmount(principal, rate, tt.months, tt.conv)
			assert.InDelta(t, tt.want, got.InexactFloat64(), 0.01)
		})
	}
}

func TestMaturityAmount_SimpleOneYearIsExact(t *testing.T) {
	got := MaturityAmount(decimal.NewFromInt(100000), decimal.NewFromInt(7), 12, domain.Simple)
	assert.True(t, got.Equal(decimal.NewFromInt(107000)), "got %s", got)
}

func TestMaturityAmount_ZeroRateReturnsPrincipal(t *testing.T) {
	principal := decimal.RequireFromString("12345.67")
	for _, conv := range []domain.InterestConvention{domain.Simple, domain.Compound} {
		for _, months := range []int{1, 7, 12, 60} {
			got := MaturityAmount(principal, decimal.Zero, months, conv)
			assert.True(t, got.Equal(principal), "%s %d months: got %s", conv, months, got)
		}
	}
}

func TestMaturityAmount_CompoundBeatsSimpleBeyondOneYear(t *testing.T) {
	principal := decimal.NewFromInt(50000)
	rate := decimal.RequireFromString("6.5")
	for _, months := range []int{13, 24, 36, 120} {
		simple := MaturityAmount(principal, rate, months, domain.Simple)
		compound := MaturityAmount(principal, rate, months, domain.Compound)
		assert.True(t, compound.GreaterThan(simple), "%d months: compound %s <= simple %s", months, compound, simple)
	}
}

func TestMaturityAmount_NeverBelowPrincipal(t *testing.T) {
	principal := decimal.NewFromInt(25000)
	for _, rate := range []string{"0", "0.01", "5", "12.5", "20"} {
		for months := 1; months <= 120; months += 7 {
			for _, conv := range []domain.InterestConvention{domain.Simple, domain.Compound} {
				got := MaturityAmount(principal, decimal.RequireFromString(rate), months, conv)
				assert.False(t, got.LessThan(principal), "rate %s, %d months, %s", rate, months, conv)
			}
		}
	}
}

func TestProjectMaturity(t *testing.T) {
	terms := domain.DepositTerms{
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TenureMonths:      12,
		StartDate:         dateutil.New(2024, 3, 15),
	}

	p := ProjectMaturity(terms, domain.Simple)
	assert.Equal(t, dateutil.New(2025, 3, 15), p.MaturityDate)
	assert.Equal(t, "107000.00", p.MaturityAmount.StringFixed(2))
	assert.Equal(t, "7000.00", p.Interest(terms.Principal).StringFixed(2))
}

func TestProjectMaturity_EndOfMonthStart(t *testing.T) {
	terms := domain.DepositTerms{
		Principal:         decimal.NewFromInt(1000),
		AnnualRatePercent: decimal.NewFromInt(5),
		TenureMonths:      1,
		StartDate:         dateutil.New(2024, 1, 31),
	}
	assert.Equal(t, dateutil.New(2024, 2, 29), ProjectMaturity(terms, domain.Compound).MaturityDate)
}
