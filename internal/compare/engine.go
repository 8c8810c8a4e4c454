package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/domain"
)

// CompareEngine orchestrates tenure comparisons
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseTenure int   // Tenure to compare against; 0 means the deposit's own tenure
	Tenures    []int // Alternative tenures in months
}

// Compare values the deposit at every requested tenure. A typed rate is used
// for every rung; a system-managed rate is resolved per tenure.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	input *domain.DepositInput,
	settings *domain.Settings,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseTenure := options.BaseTenure
	if baseTenure == 0 {
		baseTenure = input.TenureMonths
	}

	basePreview, err := ce.preview(input, settings, baseTenure)
	if err != nil {
		return nil, fmt.Errorf("failed to value base tenure of %d months: %w", baseTenure, err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(basePreview)

	alternatives := []ComparisonResult{}
	seen := map[int]bool{baseTenure: true}

	for _, tenure := range options.Tenures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if seen[tenure] {
			continue
		}
		seen[tenure] = true

		altPreview, err := ce.preview(input, settings, tenure)
		if err != nil {
			return nil, fmt.Errorf("failed to value tenure of %d months: %w", tenure, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altPreview)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseTenure:         baseTenure,
		Principal:          input.DepositAmount,
		StartDate:          input.StartDate,
		Convention:         settings.InterestType,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) preview(input *domain.DepositInput, settings *domain.Settings, tenure int) (*domain.Preview, error) {
	rung := *input
	rung.TenureMonths = tenure
	preview, err := ce.CalcEngine.Preview(&rung, settings)
	if err != nil {
		return nil, err
	}
	return &preview, nil
}
