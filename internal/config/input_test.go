package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsYAML = `
interest_type: COMPOUND
penalty_percent: 1.0
default_interest_rates:
  12: 7.0
  6: 6.5
  24: 7.25
`

const depositYAML = `
customer_name: Asha Rao
id_type: PAN
id_number: ABCDE1234F
deposit_amount: 100000
tenure_months: 12
start_date: 2024-03-15
closure_date: 2024-09-15
penalty_percent_override: 0.5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	parser := NewInputParser()
	settings, err := parser.LoadSettings(writeFile(t, "settings.yaml", settingsYAML))
	require.NoError(t, err)

	assert.Equal(t, domain.Compound, settings.InterestType)
	assert.Equal(t, "1", settings.PenaltyPercent.String())
	assert.Equal(t, dateutil.ACT365Fixed, settings.DayCount, "day count defaults to ACT/365F")
	require.Len(t, settings.DefaultInterestRates, 3)
	assert.Equal(t, 12, settings.DefaultInterestRates[0].TenureMonths, "declaration order is kept")
}

func TestLoadSettings_Defaults(t *testing.T) {
	parser := NewInputParser()
	settings, err := parser.ParseSettings([]byte("penalty_percent: 2\ndefault_interest_rates: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.Simple, settings.InterestType)
	assert.Empty(t, settings.DefaultInterestRates)
}

func TestLoadSettings_JSONDocument(t *testing.T) {
	parser := NewInputParser()
	settings, err := parser.ParseSettings([]byte(`{"interest_type":"SIMPLE","penalty_percent":1,"default_interest_rates":{"24":7.25,"12":7},"day_count":"ACT/365.25"}`))
	require.NoError(t, err)
	assert.Equal(t, dateutil.ACT36525, settings.DayCount)
	assert.Equal(t, 24, settings.DefaultInterestRates[0].TenureMonths)
}

func TestLoadSettings_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad yaml", "interest_type: [", "failed to parse YAML"},
		{"unknown convention", "interest_type: DAILY\npenalty_percent: 1\n", "interest_type must be SIMPLE or COMPOUND"},
		{"penalty too high", "penalty_percent: 101\n", "penalty_percent must be between 0 and 100"},
		{"rate out of bounds", "default_interest_rates:\n  12: 21\n", "rate must be between"},
		{"duplicate tenure", "default_interest_rates:\n  12: 7\n  \"12\": 7.5\n", "declared twice"},
		{"non-positive tenure", "default_interest_rates:\n  0: 7\n", "tenure must be positive"},
		{"unsupported day count", "day_count: 30/360\n", "day_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseSettings([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDeposit(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadDeposit(writeFile(t, "deposit.yaml", depositYAML))
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", input.CustomerName)
	assert.True(t, input.DepositAmount.Equal(decimal.NewFromInt(100000)))
	assert.Nil(t, input.InterestRate, "rate left to the system")
	assert.Equal(t, dateutil.New(2024, 3, 15), input.StartDate)
	require.NotNil(t, input.ClosureDate)
	assert.Equal(t, dateutil.New(2024, 9, 15), *input.ClosureDate)
	require.NotNil(t, input.PenaltyOverride)
	assert.Equal(t, "0.5", input.PenaltyOverride.String())
}

func TestLoadDeposit_Validation(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing start", "deposit_amount: 100\ntenure_months: 12\n", "start_date is required"},
		{"negative amount", "deposit_amount: -1\ntenure_months: 12\nstart_date: 2024-01-01\n", "deposit_amount cannot be negative"},
		{"zero tenure", "deposit_amount: 100\ntenure_months: 0\nstart_date: 2024-01-01\n", "tenure_months must be at least 1"},
		{"rate too high", "deposit_amount: 100\ntenure_months: 12\nstart_date: 2024-01-01\ninterest_rate: 20.5\n", "interest_rate"},
		{"override too high", "deposit_amount: 100\ntenure_months: 12\nstart_date: 2024-01-01\npenalty_percent_override: 150\n", "penalty_percent_override"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadDeposit(writeFile(t, "deposit.yaml", tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplySettingsDefaults_CanonicalizesDayCount(t *testing.T) {
	settings := &domain.Settings{DayCount: "act/365"}
	ApplySettingsDefaults(settings)
	assert.Equal(t, dateutil.ACT365Fixed, settings.DayCount)
	assert.Equal(t, domain.Simple, settings.InterestType)
}

func TestDetectKind(t *testing.T) {
	kind, err := DetectKind(writeFile(t, "deposit.yaml", depositYAML))
	require.NoError(t, err)
	assert.Equal(t, KindDeposit, kind)

	kind, err = DetectKind(writeFile(t, "settings.yaml", settingsYAML))
	require.NoError(t, err)
	assert.Equal(t, KindSettings, kind)

	_, err = DetectKind(writeFile(t, "broken.yaml", "deposit_amount: ["))
	assert.Error(t, err)
}
