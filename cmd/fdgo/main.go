package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/internal/output"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fdgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// envOr returns the environment variable key, or fallback when it is unset
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fdgo",
		Short:         "Fixed deposit valuation CLI",
		Long:          "Maturity previews, default-rate lookup and premature-closure simulation for fixed deposits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("settings", "s", "settings.yaml", "Bank settings file (interest type, penalty, default rate table)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(maturityCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(remoteCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// loadSettings reads the --settings file
func loadSettings(cmd *cobra.Command) (*domain.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	return config.NewInputParser().LoadSettings(path)
}

// newEngine returns a calculation engine honoring --debug
func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

// writeReport renders report with the --format formatter, to stdout or, with
// --save, to a timestamped file
func writeReport(cmd *cobra.Command, report *domain.Report) error {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.FormatterNames(), ", "))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		path, err := output.WriteFormatted(f, report, f.Name())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.FormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

func maturityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maturity [deposit-file]",
		Short: "Project maturity date and amount for a deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			input, err := config.NewInputParser().LoadDeposit(args[0])
			if err != nil {
				return err
			}
			// closure simulation has its own command
			input.ClosureDate = nil

			report, err := newEngine(cmd).Report(input, settings)
			if err != nil {
				return err
			}
			return writeReport(cmd, report)
		},
	}
	addReportFlags(cmd)
	return cmd
}

func rateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Look up the default interest rate for a tenure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenure, _ := cmd.Flags().GetInt("tenure")
			if tenure < 1 {
				return fmt.Errorf("--tenure must be at least 1 month")
			}
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			rate, ok := calculation.ResolveDefaultRate(settings.DefaultInterestRates, tenure)
			if !ok {
				return fmt.Errorf("tenure %d months: %w", tenure, calculation.ErrNoRate)
			}
			match := "nearest configured tenure"
			if _, exact := settings.DefaultInterestRates.Get(tenure); exact {
				match = "exact"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d months: %s%% (%s)\n", tenure, rate.StringFixed(2), match)
			return nil
		},
	}
	cmd.Flags().IntP("tenure", "t", 0, "Tenure in months")
	_ = cmd.MarkFlagRequired("tenure")
	return cmd
}

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [deposit-file]",
		Short: "Simulate a premature closure of a deposit",
		Long: `Simulate closing a deposit before maturity.

Examples:
  fdgo simulate deposit.yaml --closure-date 2024-09-15
  fdgo simulate deposit.yaml --closure-date 2024-09-15 --penalty 0.5 --format json`,
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

			if s, _ := cmd.Flags().GetString("closure-date"); s != "" {
				closureDate, err := dateutil.ParseDate(s)
				if err != nil {
					return fmt.Errorf("--closure-date: %w", err)
				}
				input.ClosureDate = &closureDate
			}
			if input.ClosureDate == nil {
				return fmt.Errorf("a closure date is required (--closure-date or closure_date in %s)", args[0])
			}
			if cmd.Flags().Changed("penalty") {
				s, _ := cmd.Flags().GetString("penalty")
				pct, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("--penalty: %w", err)
				}
				input.PenaltyOverride = &pct
				if err := config.NewInputParser().ValidateDeposit(input); err != nil {
					return err
				}
			}

			report, err := newEngine(cmd).Report(input, settings)
			if err != nil {
				return err
			}
			return writeReport(cmd, report)
		},
	}
	cmd.Flags().String("closure-date", "", "Closure date (YYYY-MM-DD)")
	cmd.Flags().String("penalty", "", "Penalty percent for this deposit, overriding the bank-wide rate")
	addReportFlags(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate settings and deposit files",
		Long:  "Validate settings and deposit files. Files with a deposit_amount key are checked as deposits, everything else as settings.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			for _, path := range args {
				kind, err := config.DetectKind(path)
				if err != nil {
					return err
				}
				switch kind {
				case config.KindDeposit:
					_, err = parser.LoadDeposit(path)
				default:
					_, err = parser.LoadSettings(path)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s file %s is valid\n", kind, path)
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
