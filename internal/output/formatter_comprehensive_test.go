package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport(withClosure bool) *domain.Report {
	r := &domain.Report{
		GeneratedAt:  time.Date(2024, 9, 15, 10, 30, 0, 0, time.UTC),
		CustomerName: "Asha Rao",
		DayCount:     dateutil.ACT365Fixed,
		Preview: domain.Preview{
			Terms: domain.DepositTerms{
				Principal:         decimal.NewFromInt(100000),
				AnnualRatePercent: decimal.NewFromInt(7),
				TenureMonths:      12,
				StartDate:         dateutil.New(2024, 3, 15),
			},
			Convention: domain.Simple,
			RateSource: domain.RateDefault,
			Projection: domain.MaturityProjection{
				MaturityDate:   dateutil.New(2025, 3, 15),
				MaturityAmount: decimal.NewFromInt(107000),
			},
		},
	}
	if withClosure {
		closure := dateutil.New(2024, 9, 15)
		r.ClosureDate = &closure
		r.Closure = &domain.ClosureSimulation{
			AccruedInterest:    decimal.RequireFromString("3528.767123"),
			Penalty:            decimal.RequireFromString("35.287671"),
			PenaltyPercentUsed: decimal.NewFromInt(1),
			NetInterest:        decimal.RequireFromString("3493.479452"),
			PayableAmount:      decimal.RequireFromString("103493.479452"),
			ElapsedYears:       decimal.RequireFromString("0.504109589"),
		}
	}
	return r
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *domain.Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			called = true
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport(false)
	output, err := formatter.Format(report)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), output, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "csv", "html"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.NotNil(t, GetFormatterByName(" JSON "))
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "json", "csv", "html"}, FormatterNames())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(false), "txt")
	assert.NoError(t, err, "Should not error")
	assert.Contains(t, filename, "fd_report_", "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	assert.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(false), "txt")
	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestReport(false))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "FIXED DEPOSIT VALUATION")
	assert.Contains(t, content, "Customer:        Asha Rao")
	assert.Contains(t, content, "Maturity Date:   2025-03-15")
	assert.Contains(t, content, "Maturity Amount: ₹107000.00")
	assert.Contains(t, content, "Total Interest:  ₹7000.00")
	assert.Contains(t, content, "7.00% (default)")
	assert.NotContains(t, content, "PREMATURE CLOSURE")
	assert.Contains(t, content, "Interest convention: SIMPLE")
}

func TestConsoleFormatter_Format_WithClosure(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestReport(true))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "PREMATURE CLOSURE")
	assert.Contains(t, content, "Closure Date:    2024-09-15")
	assert.Contains(t, content, "Elapsed Years:   0.5041 (ACT/365F)")
	assert.Contains(t, content, "Penalty:         ₹35.29 (1.00%)")
	assert.Contains(t, content, "Payable:         ₹103493.48")
	assert.Contains(t, content, "Forgone vs. maturity: ₹3506.52")
}

func TestJSONFormatter_Format(t *testing.T) {
	output, err := JSONFormatter{}.Format(buildTestReport(true))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Equal(t, "Asha Rao", decoded["customer_name"])

	preview := decoded["preview"].(map[string]interface{})
	assert.Equal(t, "SIMPLE", preview["interest_type"])
	projection := preview["projection"].(map[string]interface{})
	assert.Equal(t, "2025-03-15", projection["maturity_date"])
	assert.Equal(t, float64(107000), projection["maturity_amount"])

	closure := decoded["closure"].(map[string]interface{})
	assert.InDelta(t, 103493.48, closure["payable_amount"], 0.01)
	assert.Equal(t, "2024-09-15", decoded["closure_date"])
}

func TestCSVFormatter_Format(t *testing.T) {
	output, err := CSVFormatter{}.Format(buildTestReport(true))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(output))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[1], len(records[0]))

	row := map[string]string{}
	for i, h := range records[0] {
		row[h] = records[1][i]
	}
	assert.Equal(t, "100000.00", row["Principal"])
	assert.Equal(t, "107000.00", row["MaturityAmount"])
	assert.Equal(t, "2024-09-15", row["ClosureDate"])
	assert.Equal(t, "103493.48", row["PayableAmount"])

	output, err = CSVFormatter{}.Format(buildTestReport(false))
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(string(output))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records[1], len(records[0]), "closure columns stay present but empty")
}

func TestHTMLFormatter_Format(t *testing.T) {
	output, err := HTMLFormatter{}.Format(buildTestReport(true))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "<h1>Fixed Deposit Valuation</h1>")
	assert.Contains(t, content, "Asha Rao")
	assert.Contains(t, content, "₹107000.00")
	assert.Contains(t, content, "<h2>Premature closure</h2>")
	assert.Contains(t, content, "0.5041 (ACT/365F)")
}

func TestHTMLFormatter_Format_ClosureSectionOnlyWithClosure(t *testing.T) {
	output, err := HTMLFormatter{}.Format(buildTestReport(false))
	require.NoError(t, err)

	content := string(output)
	assert.NotContains(t, content, "<h2>Premature closure</h2>")
	assert.NotContains(t, content, "Payable")
	// the assumptions list still explains how a closure would be charged
	assert.Contains(t, content, "Premature closure penalty is a percentage of accrued interest")
}

func TestFormatCurrencyAndPercentage(t *testing.T) {
	assert.Equal(t, "₹3528.77", FormatCurrency(decimal.RequireFromString("3528.767")))
	assert.Equal(t, "₹0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "7.25%", FormatPercentage(decimal.RequireFromString("7.25")))
}
