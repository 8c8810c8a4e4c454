package config

import (
	"testing"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTerms() domain.DepositTerms {
	return domain.DepositTerms{
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TenureMonths:      12,
		StartDate:         dateutil.New(2024, 3, 15),
	}
}

func TestValidateTerms(t *testing.T) {
	assert.NoError(t, ValidateTerms(validTerms()))

	zeroPrincipal := validTerms()
	zeroPrincipal.Principal = decimal.Zero
	assert.NoError(t, ValidateTerms(zeroPrincipal))

	edgeRate := validTerms()
	edgeRate.AnnualRatePercent = decimal.NewFromInt(20)
	assert.NoError(t, ValidateTerms(edgeRate))

	tests := []struct {
		name   string
		mutate func(*domain.DepositTerms)
	}{
		{"negative principal", func(d *domain.DepositTerms) { d.Principal = decimal.NewFromInt(-1) }},
		{"zero tenure", func(d *domain.DepositTerms) { d.TenureMonths = 0 }},
		{"negative tenure", func(d *domain.DepositTerms) { d.TenureMonths = -3 }},
		{"negative rate", func(d *domain.DepositTerms) { d.AnnualRatePercent = decimal.RequireFromString("-0.1") }},
		{"rate above bound", func(d *domain.DepositTerms) { d.AnnualRatePercent = decimal.RequireFromString("20.01") }},
		{"missing start", func(d *domain.DepositTerms) { d.StartDate = dateutil.Date{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := validTerms()
			tt.mutate(&terms)
			assert.ErrorIs(t, ValidateTerms(terms), ErrInvalidTerms)
		})
	}
}

func TestValidateClosureWindow(t *testing.T) {
	terms := validTerms()

	assert.NoError(t, ValidateClosureWindow(terms, dateutil.New(2024, 3, 15)), "start date is inside the window")
	assert.NoError(t, ValidateClosureWindow(terms, dateutil.New(2024, 9, 15)))
	assert.NoError(t, ValidateClosureWindow(terms, dateutil.New(2025, 3, 14)))

	assert.ErrorIs(t, ValidateClosureWindow(terms, dateutil.New(2024, 3, 14)), ErrClosureOutsideWindow)
	assert.ErrorIs(t, ValidateClosureWindow(terms, dateutil.New(2025, 3, 15)), ErrClosureOutsideWindow)
	assert.ErrorIs(t, ValidateClosureWindow(terms, dateutil.New(2030, 1, 1)), ErrClosureOutsideWindow)
}
