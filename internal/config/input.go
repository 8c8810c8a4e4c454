package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Environment variables the CLI reads as flag defaults
const (
	EnvAPIURL    = "FDGO_API_URL"
	EnvToken     = "FDGO_TOKEN"
	EnvRedisAddr = "FDGO_REDIS_ADDR"
)

// InputParser handles parsing of settings and deposit files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadSettings loads bank settings from a YAML (or JSON) file and applies defaults
func (ip *InputParser) LoadSettings(filename string) (*domain.Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseSettings(data)
}

// ParseSettings decodes and validates a settings document
func (ip *InputParser) ParseSettings(data []byte) (*domain.Settings, error) {
	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplySettingsDefaults(&settings)
	if err := ip.ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &settings, nil
}

// LoadDeposit loads a deposit description from a YAML (or JSON) file
func (ip *InputParser) LoadDeposit(filename string) (*domain.DepositInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.DepositInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDeposit(&input); err != nil {
		return nil, fmt.Errorf("deposit validation failed: %w", err)
	}
	return &input, nil
}

// FileKind names the two documents the parser understands
type FileKind string

const (
	KindSettings FileKind = "settings"
	KindDeposit  FileKind = "deposit"
)

// DetectKind peeks at a YAML (or JSON) document and reports whether it
// describes a deposit (it has a deposit_amount key) or bank settings
func DetectKind(filename string) (FileKind, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return "", fmt.Errorf("failed to parse YAML: %w", err)
	}
	if _, ok := keys["deposit_amount"]; ok {
		return KindDeposit, nil
	}
	return KindSettings, nil
}

// ApplySettingsDefaults fills in what a settings document may leave out:
// SIMPLE interest and the ACT/365F day count. Known day-count spellings are
// canonicalized; unknown ones are left for ValidateSettings to reject.
func ApplySettingsDefaults(settings *domain.Settings) {
	if settings.InterestType == "" {
		settings.InterestType = domain.Simple
	}
	if dc, err := dateutil.ParseDayCount(string(settings.DayCount)); err == nil {
		settings.DayCount = dc
	}
}

// ValidateSettings validates bank settings
func (ip *InputParser) ValidateSettings(settings *domain.Settings) error {
	if !settings.InterestType.Valid() {
		return fmt.Errorf("interest_type must be SIMPLE or COMPOUND, got %q", settings.InterestType)
	}
	if settings.PenaltyPercent.LessThan(decimal.Zero) || settings.PenaltyPercent.GreaterThan(hundred) {
		return fmt.Errorf("penalty_percent must be between 0 and 100, got %s", settings.PenaltyPercent.String())
	}
	if settings.DayCount != "" && !settings.DayCount.Valid() {
		return fmt.Errorf("day_count %q is not supported (use %s or %s)", settings.DayCount, dateutil.ACT365Fixed, dateutil.ACT36525)
	}

	seen := make(map[int]bool, len(settings.DefaultInterestRates))
	for _, e := range settings.DefaultInterestRates {
		if e.TenureMonths <= 0 {
			return fmt.Errorf("default_interest_rates: tenure must be positive, got %d", e.TenureMonths)
		}
		if seen[e.TenureMonths] {
			return fmt.Errorf("default_interest_rates: tenure %d declared twice", e.TenureMonths)
		}
		seen[e.TenureMonths] = true
		if err := validateRate(e.RatePercent); err != nil {
			return fmt.Errorf("default_interest_rates[%d]: %w", e.TenureMonths, err)
		}
	}
	return nil
}

// ValidateDeposit validates the fields of a deposit description that do not
// depend on settings. The resolved rate is checked later by ValidateTerms.
func (ip *InputParser) ValidateDeposit(input *domain.DepositInput) error {
	if input.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if input.DepositAmount.IsNegative() {
		return fmt.Errorf("deposit_amount cannot be negative: %w", ErrInvalidTerms)
	}
	if input.TenureMonths <= 0 {
		return fmt.Errorf("tenure_months must be at least 1, got %d: %w", input.TenureMonths, ErrInvalidTerms)
	}
	if input.InterestRate != nil {
		if err := validateRate(*input.InterestRate); err != nil {
			return fmt.Errorf("interest_rate: %w", err)
		}
	}
	if input.PenaltyOverride != nil {
		if input.PenaltyOverride.IsNegative() || input.PenaltyOverride.GreaterThan(hundred) {
			return fmt.Errorf("penalty_percent_override must be between 0 and 100, got %s", input.PenaltyOverride.String())
		}
	}
	return nil
}
