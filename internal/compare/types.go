package compare

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one rung of a tenure ladder with its derived metrics
type ComparisonResult struct {
	TenureMonths      int               `json:"tenureMonths"`
	AnnualRatePercent decimal.Decimal   `json:"annualRatePercent"`
	RateSource        domain.RateSource `json:"rateSource"`
	Preview           *domain.Preview   `json:"-"`

	// Key Metrics
	MaturityDate   dateutil.Date   `json:"maturityDate"`
	MaturityAmount decimal.Decimal `json:"maturityAmount"`
	Interest       decimal.Decimal `json:"interest"`
	EffectiveYield decimal.Decimal `json:"effectiveYield"` // annualized, percent

	// Comparison to Base
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase  decimal.Decimal `json:"interestPctFromBase"`
	YieldDiffFromBase    decimal.Decimal `json:"yieldDiffFromBase"`
	MonthsDiffFromBase   int             `json:"monthsDiffFromBase"`
}

// Label names the rung for display
func (r *ComparisonResult) Label() string {
	return fmt.Sprintf("%d months", r.TenureMonths)
}

// ComparisonSet is a tenure ladder for one principal and start date
type ComparisonSet struct {
	BaseTenure         int                       `json:"baseTenure"`
	Principal          decimal.Decimal           `json:"principal"`
	StartDate          dateutil.Date             `json:"startDate"`
	Convention         domain.InterestConvention `json:"interestType"`
	BaseResult         *ComparisonResult         `json:"baseResult"`
	AlternativeResults []ComparisonResult        `json:"alternativeResults"`
	Recommendations    []string                  `json:"recommendations"`
	SourcePath         string                    `json:"sourcePath,omitempty"`
}

// MetricsCalculator extracts key metrics from previews
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a single preview
func (mc *MetricsCalculator) CalculateMetrics(preview *domain.Preview) ComparisonResult {
	principal := preview.Terms.Principal
	return ComparisonResult{
		TenureMonths:      preview.Terms.TenureMonths,
		AnnualRatePercent: preview.Terms.AnnualRatePercent,
		RateSource:        preview.RateSource,
		Preview:           preview,
		MaturityDate:      preview.Projection.MaturityDate,
		MaturityAmount:    preview.Projection.MaturityAmount,
		Interest:          preview.Projection.Interest(principal),
		EffectiveYield:    mc.effectiveYield(principal, preview.Projection.MaturityAmount, preview.Terms.TenureMonths),
	}
}

// CalculateComparison computes comparison metrics between a rung and the base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.InterestDiffFromBase = result.Interest.Sub(base.Interest)

	if !base.Interest.IsZero() {
		result.InterestPctFromBase = result.InterestDiffFromBase.
			Div(base.Interest).
			Mul(decimal.NewFromInt(100))
	}

	result.YieldDiffFromBase = result.EffectiveYield.Sub(base.EffectiveYield)
	result.MonthsDiffFromBase = result.TenureMonths - base.TenureMonths

	return result
}

// effectiveYield annualizes the growth from principal to maturity:
// ((maturity/principal)^(12/months) - 1) * 100
func (mc *MetricsCalculator) effectiveYield(principal, maturity decimal.Decimal, months int) decimal.Decimal {
	if principal.IsZero() || months <= 0 {
		return decimal.Zero
	}
	growth := maturity.Div(principal).InexactFloat64()
	annual := math.Pow(growth, 12/float64(months)) - 1
	return decimal.NewFromFloat(annual * 100).Round(6)
}

// GenerateRecommendations picks out the rungs worth pointing at
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Most interest in absolute terms
	bestInterest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Interest.GreaterThan(bestInterest.Interest) {
			bestInterest = alt
		}
	}

	if bestInterest != compSet.BaseResult {
		diff := bestInterest.Interest.Sub(compSet.BaseResult.Interest)
		recommendations = append(recommendations,
			"Most Interest: "+bestInterest.Label()+" earns ₹"+diff.StringFixed(2)+
				" more than the base tenure")
	}

	// Best annualized yield
	bestYield := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EffectiveYield.GreaterThan(bestYield.EffectiveYield) {
			bestYield = alt
		}
	}

	if bestYield != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Yield: %s at %s%% a year (%s%% vs base)",
				bestYield.Label(), bestYield.EffectiveYield.StringFixed(2),
				signed(bestYield.EffectiveYield.Sub(compSet.BaseResult.EffectiveYield))))
	}

	// Shorter tenures that match the base yield lock money up for less time
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthsDiffFromBase < 0 && alt.EffectiveYield.GreaterThanOrEqual(compSet.BaseResult.EffectiveYield) {
			recommendations = append(recommendations,
				fmt.Sprintf("Shorter Lock-in: %s yields at least as much as the base with %d fewer months",
					alt.Label(), -alt.MonthsDiffFromBase))
			break
		}
	}

	return recommendations
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
