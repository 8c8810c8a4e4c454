package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fdgo/internal/domain"
)

// ConsoleFormatter renders a human readable report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Preview

	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintln(&buf, "FIXED DEPOSIT VALUATION")
	fmt.Fprintln(&buf, "=================================================================")
	if report.CustomerName != "" {
		fmt.Fprintf(&buf, "Customer:        %s\n", report.CustomerName)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TERMS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Principal:       %s\n", FormatCurrency(p.Terms.Principal))
	fmt.Fprintf(&buf, "  Annual Rate:     %s (%s)\n", FormatPercentage(p.Terms.AnnualRatePercent), p.RateSource)
	fmt.Fprintf(&buf, "  Tenure:          %d months\n", p.Terms.TenureMonths)
	fmt.Fprintf(&buf, "  Start Date:      %s\n", p.Terms.StartDate)
	fmt.Fprintf(&buf, "  Interest Type:   %s\n", p.Convention)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "MATURITY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Maturity Date:   %s\n", p.Projection.MaturityDate)
	fmt.Fprintf(&buf, "  Maturity Amount: %s\n", FormatCurrency(p.Projection.MaturityAmount))
	fmt.Fprintf(&buf, "  Total Interest:  %s\n", FormatCurrency(report.TotalInterest()))
	fmt.Fprintln(&buf)

	if report.Closure != nil {
		sim := report.Closure
		fmt.Fprintln(&buf, "PREMATURE CLOSURE")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		if report.ClosureDate != nil {
			fmt.Fprintf(&buf, "  Closure Date:    %s\n", report.ClosureDate)
		}
		fmt.Fprintf(&buf, "  Elapsed Years:   %s (%s)\n", sim.ElapsedYears.StringFixed(4), report.DayCount.Normalize())
		fmt.Fprintf(&buf, "  Accrued:         %s\n", FormatCurrency(sim.AccruedInterest))
		fmt.Fprintf(&buf, "  Penalty:         %s (%s)\n", FormatCurrency(sim.Penalty), FormatPercentage(sim.PenaltyPercentUsed))
		fmt.Fprintf(&buf, "  Net Interest:    %s\n", FormatCurrency(sim.NetInterest))
		fmt.Fprintf(&buf, "  Payable:         %s\n", FormatCurrency(sim.PayableAmount))
		fmt.Fprintf(&buf, "  Forgone vs. maturity: %s\n", FormatCurrency(p.Projection.MaturityAmount.Sub(sim.PayableAmount)))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range Assumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}
