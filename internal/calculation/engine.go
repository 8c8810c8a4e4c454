package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrNoRate is returned when a deposit leaves its rate to the system and the
// rate table has nothing to offer
var ErrNoRate = errors.New("no interest rate given and no default rate available")

// Engine runs previews and closure simulations against a settings snapshot
type Engine struct {
	Logger Logger
	Debug  bool // Log each intermediate value
	Now    func() time.Time
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger replaces the engine logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// ResolveRate returns the annual rate a preview should use for input and
// where it came from. A typed rate is always kept as is.
func (e *Engine) ResolveRate(input *domain.DepositInput, settings *domain.Settings) (decimal.Decimal, domain.RateSource, error) {
	field := input.RateField()
	if !field.Managed {
		return field.Value, domain.RateManual, nil
	}
	if ApplyDefaultRate(&field, settings.DefaultInterestRates, input.TenureMonths) {
		if e.Debug {
			e.logger().Debugf("default rate for %d months: %s%%", input.TenureMonths, field.Value.String())
		}
		return field.Value, domain.RateDefault, nil
	}
	return decimal.Zero, "", fmt.Errorf("tenure %d months: %w", input.TenureMonths, ErrNoRate)
}

// Preview resolves the rate for input, validates the resulting terms and
// projects maturity under the settings' interest convention
func (e *Engine) Preview(input *domain.DepositInput, settings *domain.Settings) (domain.Preview, error) {
	if input == nil || settings == nil {
		return domain.Preview{}, fmt.Errorf("preview: input and settings are required")
	}

	rate, source, err := e.ResolveRate(input, settings)
	if err != nil {
		return domain.Preview{}, err
	}

	terms := input.Terms(rate)
	if err := config.ValidateTerms(terms); err != nil {
		return domain.Preview{}, err
	}

	projection := ProjectMaturity(terms, settings.InterestType)
	if e.Debug {
		e.logger().Debugf("maturity %s: %s -> %s (%s, %s%% for %d months)",
			projection.MaturityDate, terms.Principal.StringFixed(2), projection.MaturityAmount.StringFixed(2),
			settings.InterestType, rate.String(), terms.TenureMonths)
	}

	return domain.Preview{
		Terms:      terms,
		Convention: settings.InterestType,
		RateSource: source,
		Projection: projection,
	}, nil
}

// Simulate runs a premature closure of terms on closureDate. The closure date
// must fall inside the deposit's active window.
func (e *Engine) Simulate(terms domain.DepositTerms, closureDate dateutil.Date, settings *domain.Settings, penaltyOverride *decimal.Decimal) (domain.ClosureSimulation, error) {
	if err := config.ValidateTerms(terms); err != nil {
		return domain.ClosureSimulation{}, err
	}
	if err := config.ValidateClosureWindow(terms, closureDate); err != nil {
		return domain.ClosureSimulation{}, err
	}

	pct := PenaltyPercent(settings.PenaltyPercent, penaltyOverride)
	sim := SimulateClosure(terms, closureDate, settings.InterestType, pct, settings.DayCount)
	if e.Debug {
		e.logger().Debugf("closure on %s: elapsed %s years, accrued %s, penalty %s (%s%%), payable %s",
			closureDate, sim.ElapsedYears.StringFixed(4), sim.AccruedInterest.StringFixed(2),
			sim.Penalty.StringFixed(2), pct.String(), sim.PayableAmount.StringFixed(2))
	}
	return sim, nil
}

// Report builds the full report for one deposit: the maturity preview and,
// when the input names a closure date, the closure simulation
func (e *Engine) Report(input *domain.DepositInput, settings *domain.Settings) (*domain.Report, error) {
	preview, err := e.Preview(input, settings)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		GeneratedAt:  e.now(),
		CustomerName: input.CustomerName,
		Preview:      preview,
		DayCount:     settings.DayCount.Normalize(),
	}

	if input.ClosureDate != nil {
		sim, err := e.Simulate(preview.Terms, *input.ClosureDate, settings, input.PenaltyOverride)
		if err != nil {
			return nil, fmt.Errorf("closure simulation: %w", err)
		}
		closureDate := *input.ClosureDate
		report.ClosureDate = &closureDate
		report.Closure = &sim
	}

	e.logger().Infof("report for %q: %d months at %s%% (%s rate)",
		input.CustomerName, preview.Terms.TenureMonths, preview.Terms.AnnualRatePercent.String(), preview.RateSource)
	return report, nil
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
