package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fdgo/internal/compare"
	"github.com/rgehrsitz/fdgo/internal/config"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [deposit-file]",
		Short: "Compare a deposit across several tenures",
		Long: `Value a deposit at several tenures and compare against its own tenure.

A rate typed in the deposit file is used for every tenure; without one each
tenure gets its default rate from the settings.

Examples:
  fdgo compare deposit.yaml --tenures 6,12,24,36
  fdgo compare deposit.yaml --tenures 6,24 --base 12 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			input, err := config.NewInputParser().LoadDeposit(args[0])
			if err != nil {
				return err
			}

			tenuresStr, _ := cmd.Flags().GetString("tenures")
			tenures, err := parseTenureList(tenuresStr)
			if err != nil {
				return err
			}
			if len(tenures) == 0 {
				tenures = settings.DefaultInterestRates.Tenures()
			}
			base, _ := cmd.Flags().GetInt("base")

			compareEngine := compare.NewCompareEngine(newEngine(cmd))
			comparisonSet, err := compareEngine.Compare(context.Background(), input, settings, compare.CompareOptions{
				BaseTenure: base,
				Tenures:    tenures,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.SourcePath = args[0]

			outputFormat, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "csv":
				formatted, err := (&compare.CSVFormatter{}).Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, formatted)

			case "json":
				formatted, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, formatted)

			case "compact":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))

			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("tenures", "", "Comma-separated tenures in months (default: every tenure in the rate table)")
	cmd.Flags().Int("base", 0, "Tenure to compare against (default: the deposit's own tenure)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

// parseTenureList parses "6, 12,24" into months
func parseTenureList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid tenure %q in --tenures", part)
		}
		out = append(out, n)
	}
	return out, nil
}
