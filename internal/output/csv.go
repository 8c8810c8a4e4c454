package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fdgo/internal/domain"
)

// CSVFormatter renders one header row and one data row. Closure columns are
// empty when the report has no closure simulation.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Customer", "Principal", "AnnualRatePercent", "RateSource", "TenureMonths", "StartDate", "InterestType",
		"MaturityDate", "MaturityAmount", "TotalInterest",
		"ClosureDate", "ElapsedYears", "AccruedInterest", "PenaltyPercentUsed", "Penalty", "NetInterest", "PayableAmount",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	p := report.Preview
	row := []string{
		report.CustomerName,
		p.Terms.Principal.StringFixed(2),
		p.Terms.AnnualRatePercent.String(),
		string(p.RateSource),
		strconv.Itoa(p.Terms.TenureMonths),
		p.Terms.StartDate.String(),
		string(p.Convention),
		p.Projection.MaturityDate.String(),
		p.Projection.MaturityAmount.StringFixed(2),
		report.TotalInterest().StringFixed(2),
	}
	if sim := report.Closure; sim != nil {
		closureDate := ""
		if report.ClosureDate != nil {
			closureDate = report.ClosureDate.String()
		}
		row = append(row,
			closureDate,
			sim.ElapsedYears.StringFixed(6),
			sim.AccruedInterest.StringFixed(2),
			sim.PenaltyPercentUsed.String(),
			sim.Penalty.StringFixed(2),
			sim.NetInterest.StringFixed(2),
			sim.PayableAmount.StringFixed(2),
		)
	} else {
		row = append(row, "", "", "", "", "", "", "")
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
