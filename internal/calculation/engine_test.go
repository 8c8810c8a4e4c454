package calculation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records formatted messages per level
type TestLogger struct {
	Debugs []string
	Infos  []string
	Warns  []string
	Errors []string
}

func (l *TestLogger) Debugf(format string, args ...interface{}) {
	l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...interface{}) {
	l.Infos = append(l.Infos, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...interface{}) {
	l.Warns = append(l.Warns, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...interface{}) {
	l.Errors = append(l.Errors, fmt.Sprintf(format, args...))
}

func testSettings() *domain.Settings {
	return &domain.Settings{
		InterestType:   domain.Simple,
		PenaltyPercent: decimal.NewFromInt(1),
		DefaultInterestRates: domain.RateTable{
			{TenureMonths: 6, RatePercent: decimal.RequireFromString("6.5")},
			{TenureMonths: 12, RatePercent: decimal.NewFromInt(7)},
			{TenureMonths: 24, RatePercent: decimal.RequireFromString("7.25")},
		},
		DayCount: dateutil.ACT365Fixed,
	}
}

func testInput(rate *decimal.Decimal) *domain.DepositInput {
	return &domain.DepositInput{
		CustomerName:  "Asha Rao",
		IDType:        "PAN",
		IDNumber:      "ABCDE1234F",
		DepositAmount: decimal.NewFromInt(100000),
		InterestRate:  rate,
		TenureMonths:  12,
		StartDate:     dateutil.New(2024, 3, 15),
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Preview_ManagedRate(t *testing.T) {
	engine := NewEngine()

	preview, err := engine.Preview(testInput(nil), testSettings())
	require.NoError(t, err)

	assert.Equal(t, domain.RateDefault, preview.RateSource)
	assert.Equal(t, "7", preview.Terms.AnnualRatePercent.String())
	assert.Equal(t, dateutil.New(2025, 3, 15), preview.Projection.MaturityDate)
	assert.Equal(t, "107000.00", preview.Projection.MaturityAmount.StringFixed(2))
	assert.Equal(t, domain.Simple, preview.Convention)
}

func TestEngine_Preview_TypedRateWins(t *testing.T) {
	engine := NewEngine()

	preview, err := engine.Preview(testInput(decimalPtr("8")), testSettings())
	require.NoError(t, err)

	assert.Equal(t, domain.RateManual, preview.RateSource)
	assert.Equal(t, "108000.00", preview.Projection.MaturityAmount.StringFixed(2))
}

func TestEngine_Preview_NoDefaultRate(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()
	settings.DefaultInterestRates = nil

	_, err := engine.Preview(testInput(nil), settings)
	assert.True(t, errors.Is(err, ErrNoRate))
}

func TestEngine_Preview_InvalidTerms(t *testing.T) {
	engine := NewEngine()

	input := testInput(decimalPtr("25"))
	_, err := engine.Preview(input, testSettings())
	assert.True(t, errors.Is(err, config.ErrInvalidTerms))

	input = testInput(nil)
	input.TenureMonths = 0
	_, err = engine.Preview(input, testSettings())
	assert.True(t, errors.Is(err, config.ErrInvalidTerms))
}

func TestEngine_Preview_DebugLogging(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Preview(testInput(nil), testSettings())
	require.NoError(t, err)
	require.Len(t, logger.Debugs, 2)
	assert.Contains(t, logger.Debugs[0], "default rate for 12 months")
	assert.Contains(t, logger.Debugs[1], "107000.00")
}

func TestEngine_Simulate(t *testing.T) {
	engine := NewEngine()
	terms := sampleTerms()

	sim, err := engine.Simulate(terms, dateutil.New(2024, 9, 15), testSettings(), nil)
	require.NoError(t, err)
	assert.Equal(t, "103493.48", sim.PayableAmount.StringFixed(2))

	sim, err = engine.Simulate(terms, dateutil.New(2024, 9, 15), testSettings(), decimalPtr("0"))
	require.NoError(t, err)
	assert.True(t, sim.Penalty.IsZero(), "loyalty override of zero waives the penalty")
}

func TestEngine_Simulate_OutsideWindow(t *testing.T) {
	engine := NewEngine()
	terms := sampleTerms()

	_, err := engine.Simulate(terms, dateutil.New(2024, 3, 14), testSettings(), nil)
	assert.True(t, errors.Is(err, config.ErrClosureOutsideWindow))

	_, err = engine.Simulate(terms, dateutil.New(2025, 3, 15), testSettings(), nil)
	assert.True(t, errors.Is(err, config.ErrClosureOutsideWindow), "maturity date itself is not a premature closure")
}

func TestEngine_Report(t *testing.T) {
	engine := NewEngine()
	fixed := time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC)
	engine.Now = func() time.Time { return fixed }

	input := testInput(nil)
	report, err := engine.Report(input, testSettings())
	require.NoError(t, err)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, "Asha Rao", report.CustomerName)
	assert.Nil(t, report.Closure)
	assert.Equal(t, "7000.00", report.TotalInterest().StringFixed(2))

	closure := dateutil.New(2024, 9, 15)
	input.ClosureDate = &closure
	report, err = engine.Report(input, testSettings())
	require.NoError(t, err)
	require.NotNil(t, report.Closure)
	assert.Equal(t, closure, *report.ClosureDate)
	assert.Equal(t, dateutil.ACT365Fixed, report.DayCount)

	bad := dateutil.New(2026, 1, 1)
	input.ClosureDate = &bad
	_, err = engine.Report(input, testSettings())
	assert.ErrorIs(t, err, config.ErrClosureOutsideWindow)
}
