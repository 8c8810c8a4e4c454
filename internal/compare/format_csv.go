package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Tenure (Months)",
		"Type",
		"Rate %",
		"Rate Source",
		"Maturity Date",
		"Maturity Amount",
		"Interest",
		"Effective Yield %",
		"Interest Diff from Base",
		"Interest % Change",
		"Yield Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		strconv.Itoa(result.TenureMonths),
		rowType,
		result.AnnualRatePercent.StringFixed(2),
		string(result.RateSource),
		result.MaturityDate.String(),
		result.MaturityAmount.StringFixed(2),
		result.Interest.StringFixed(2),
		result.EffectiveYield.StringFixed(4),
		result.InterestDiffFromBase.StringFixed(2),
		result.InterestPctFromBase.StringFixed(2),
		result.YieldDiffFromBase.StringFixed(4),
	}
}
