package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing tenures
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FIXED DEPOSIT TENURE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Principal: ₹%s | Start: %s | Interest: %s\n",
		tf.formatDecimal(compSet.Principal), compSet.StartDate, compSet.Convention))
	if compSet.SourcePath != "" {
		sb.WriteString(fmt.Sprintf("Deposit File: %s\n", compSet.SourcePath))
	}
	sb.WriteString("\n")

	nameWidth := 16
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Tenure",
		numWidth, "Rate",
		numWidth, "Maturity",
		numWidth, "Interest",
		numWidth, "Yield p.a."))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Label()))

			sb.WriteString(fmt.Sprintf("  Interest:       %s₹%s (%s%%)\n",
				tf.deltaSymbol(alt.InterestDiffFromBase),
				tf.formatDecimal(alt.InterestDiffFromBase.Abs()),
				alt.InterestPctFromBase.StringFixed(1)))

			if !alt.YieldDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Yield p.a.:     %s%s%%\n",
					tf.deltaSymbol(alt.YieldDiffFromBase),
					alt.YieldDiffFromBase.Abs().StringFixed(2)))
			}

			if alt.MonthsDiffFromBase != 0 {
				sign := "+"
				if alt.MonthsDiffFromBase < 0 {
					sign = "-"
				}
				sb.WriteString(fmt.Sprintf("  Lock-in:        %s%d months\n", sign, abs(alt.MonthsDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single tenure row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Label()
	if isBase {
		name += " (base)"
	}

	rate := result.AnnualRatePercent.StringFixed(2) + "%"
	if result.RateSource == domain.RateDefault {
		rate += "*"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, rate,
		numWidth, "₹"+tf.formatDecimal(result.MaturityAmount),
		numWidth, "₹"+tf.formatDecimal(result.Interest),
		numWidth, result.EffectiveYield.StringFixed(2)+"%")
}

// formatDecimal formats a decimal for display, in thousands above 1000
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		crores := d.Div(decimal.NewFromInt(10000000))
		return crores.StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		lakhs := d.Div(decimal.NewFromInt(100000))
		return lakhs.StringFixed(2) + "L"
	}
	return d.StringFixed(2)
}

// deltaSymbol returns + or - for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the ladder
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %d months | ", compSet.BaseTenure))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.InterestDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+₹%s", tf.formatDecimal(alt.InterestDiffFromBase))
		} else if alt.InterestDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-₹%s", tf.formatDecimal(alt.InterestDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.Label(), change))
	}

	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
