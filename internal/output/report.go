package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

// Formatters lists every built-in formatter
func Formatters() []Formatter {
	return []Formatter{ConsoleFormatter{}, JSONFormatter{}, CSVFormatter{}, HTMLFormatter{}}
}

// GetFormatterByName returns the built-in formatter with the given name, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Formatters() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FormatterNames lists the names accepted by GetFormatterByName
func FormatterNames() []string {
	var names []string
	for _, f := range Formatters() {
		names = append(names, f.Name())
	}
	return names
}

// WriteFormatted renders report with f and writes it to a timestamped file in
// the working directory, returning the file name
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("fd_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
