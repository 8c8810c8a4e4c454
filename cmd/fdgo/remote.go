package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/internal/output"
	"github.com/rgehrsitz/fdgo/internal/remote"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
)

func remoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Work with deposits held by the FD service",
		Long: `Talk to the FD service that owns the deposit register.

The service URL and bearer token default to $` + config.EnvAPIURL + ` and $` + config.EnvToken + `.`,
	}
	cmd.PersistentFlags().String("api-url", envOr(config.EnvAPIURL, "http://localhost:8000"), "FD service base URL")
	cmd.PersistentFlags().String("token", envOr(config.EnvToken, ""), "Bearer token")

	cmd.AddCommand(remoteLoginCmd())
	cmd.AddCommand(remoteSettingsCmd())
	cmd.AddCommand(remoteListCmd())
	cmd.AddCommand(remoteCreateCmd())
	cmd.AddCommand(remoteSimulateCmd())
	cmd.AddCommand(remoteCloseCmd())
	cmd.AddCommand(remoteCheckCmd())
	cmd.AddCommand(remoteDashboardCmd())
	return cmd
}

func newClient(cmd *cobra.Command) *remote.Client {
	apiURL, _ := cmd.Flags().GetString("api-url")
	token, _ := cmd.Flags().GetString("token")
	return remote.NewClient(apiURL, token)
}

// closureDateFlag parses the required --closure-date flag
func closureDateFlag(cmd *cobra.Command) (dateutil.Date, error) {
	s, _ := cmd.Flags().GetString("closure-date")
	if s == "" {
		return dateutil.Date{}, fmt.Errorf("--closure-date is required")
	}
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return dateutil.Date{}, fmt.Errorf("--closure-date: %w", err)
	}
	return d, nil
}

func remoteLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("FDGO_PASSWORD")
			}

			resp, err := newClient(cmd).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Logged in as %s (%s)\n", resp.Email, resp.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "export %s=%s\n", config.EnvToken, resp.AccessToken)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Officer email")
	cmd.Flags().String("password", "", "Password (default $FDGO_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func remoteSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the service's bank settings",
		Long: `Show the service's bank settings.

With --save the settings are written as YAML, ready to be used with --settings
by the local commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := newClient(cmd).GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("save"); path != "" {
				data, err := yaml.Marshal(settings)
				if err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Interest type:  %s\n", settings.InterestType)
			fmt.Fprintf(out, "Penalty:        %s%%\n", settings.PenaltyPercent.String())
			fmt.Fprintf(out, "Day count:      %s\n", settings.DayCount.Normalize())
			fmt.Fprintln(out, "Default rates:")
			if len(settings.DefaultInterestRates) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, e := range settings.DefaultInterestRates {
				fmt.Fprintf(out, "  %4d months  %s%%\n", e.TenureMonths, e.RatePercent.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().String("save", "", "Write the settings to this YAML file")
	return cmd
}

func remoteListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deposits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := listFilterFlags(cmd)
			if err != nil {
				return err
			}
			deposits, err := newClient(cmd).ListDeposits(cmd.Context(), filter)
			if err != nil {
				return err
			}
			writeDepositTable(cmd, deposits)
			return nil
		},
	}
	addListFilterFlags(cmd)
	return cmd
}

func addListFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Only deposits with this status (ACTIVE, CLOSED)")
	cmd.Flags().String("customer", "", "Only deposits whose customer name contains this text")
	cmd.Flags().String("from", "", "Only deposits starting on or after this date")
	cmd.Flags().String("to", "", "Only deposits starting on or before this date")
}

func listFilterFlags(cmd *cobra.Command) (remote.ListFilter, error) {
	var filter remote.ListFilter
	status, _ := cmd.Flags().GetString("status")
	switch s := domain.DepositStatus(strings.ToUpper(status)); s {
	case "", domain.StatusActive, domain.StatusClosed:
		filter.Status = s
	default:
		return filter, fmt.Errorf("--status must be ACTIVE or CLOSED, got %q", status)
	}
	filter.CustomerName, _ = cmd.Flags().GetString("customer")

	for flag, dst := range map[string]*dateutil.Date{"from": &filter.StartFrom, "to": &filter.StartTo} {
		s, _ := cmd.Flags().GetString(flag)
		if s == "" {
			continue
		}
		d, err := dateutil.ParseDate(s)
		if err != nil {
			return filter, fmt.Errorf("--%s: %w", flag, err)
		}
		*dst = d
	}
	return filter, nil
}

func writeDepositTable(cmd *cobra.Command, deposits []domain.Deposit) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "FD NUMBER\tCUSTOMER\tAMOUNT\tRATE\tTENURE\tSTART\tMATURITY\tMATURITY AMOUNT\tSTATUS\t")
	for _, d := range deposits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%d\t%s\t%s\t%s\t%s\t\n",
			d.FDNumber, d.CustomerName, output.FormatCurrency(d.DepositAmount), d.InterestRate.StringFixed(2),
			d.TenureMonths, d.StartDate, d.MaturityDate, output.FormatCurrency(d.MaturityAmount), d.Status)
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "%d deposit(s)\n", len(deposits))
}

func remoteCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [deposit-file]",
		Short: "Open a deposit from a deposit file",
		Long: `Open a deposit on the service.

Without interest_rate in the file the default rate for the tenure is taken
from the service's current settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadDeposit(args[0])
			if err != nil {
				return err
			}
			client := newClient(cmd)
			settings, err := client.GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			engine := newEngine(cmd)
			preview, err := engine.Preview(input, settings)
			if err != nil {
				return err
			}

			d, err := client.CreateDeposit(cmd.Context(), input.Request(preview.Terms.AnnualRatePercent))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s for %s: %s at %s%% (%s rate), matures %s for %s\n",
				d.FDNumber, d.CustomerName, output.FormatCurrency(d.DepositAmount), d.InterestRate.StringFixed(2),
				preview.RateSource, d.MaturityDate, output.FormatCurrency(d.MaturityAmount))

			if check := remote.CheckPreview(*d, settings); !check.OK() {
				for _, m := range check.Mismatches {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: preview disagrees with service: %s\n", m)
				}
			}
			return nil
		},
	}
}

func writeClosure(cmd *cobra.Command, sim *domain.ClosureSimulation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Elapsed:          %s years\n", sim.ElapsedYears.StringFixed(4))
	fmt.Fprintf(out, "Accrued interest: %s\n", output.FormatCurrency(sim.AccruedInterest))
	fmt.Fprintf(out, "Penalty:          %s (%s%%)\n", output.FormatCurrency(sim.Penalty), sim.PenaltyPercentUsed.String())
	fmt.Fprintf(out, "Net interest:     %s\n", output.FormatCurrency(sim.NetInterest))
	fmt.Fprintf(out, "Payable:          %s\n", output.FormatCurrency(sim.PayableAmount))
}

func remoteSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [deposit-id]",
		Short: "Ask the service to simulate a premature closure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closureDate, err := closureDateFlag(cmd)
			if err != nil {
				return err
			}
			sim, err := newClient(cmd).SimulateClosure(cmd.Context(), args[0], closureDate)
			if err != nil {
				return err
			}
			writeClosure(cmd, sim)
			return nil
		},
	}
	cmd.Flags().String("closure-date", "", "Closure date (YYYY-MM-DD)")
	return cmd
}

func remoteCloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close [deposit-id]",
		Short: "Prematurely close a deposit",
		Long:  "Prematurely close a deposit. The simulation is shown first; --yes confirms the closure.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closureDate, err := closureDateFlag(cmd)
			if err != nil {
				return err
			}
			client := newClient(cmd)
			sim, err := client.SimulateClosure(cmd.Context(), args[0], closureDate)
			if err != nil {
				return err
			}
			writeClosure(cmd, sim)

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				fmt.Fprintln(cmd.OutOrStdout(), "Not closed. Re-run with --yes to confirm.")
				return nil
			}
			d, err := client.ConfirmClosure(cmd.Context(), args[0], closureDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", d.FDNumber, d.Status)
			return nil
		},
	}
	cmd.Flags().String("closure-date", "", "Closure date (YYYY-MM-DD)")
	cmd.Flags().Bool("yes", false, "Confirm the closure")
	return cmd
}

func remoteCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check local valuation against the service's stored figures",
		Long: `Recompute every listed deposit locally and compare the maturity date and
amount with what the service stored. With --closure-date, active deposits are
also simulated on both sides and compared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := listFilterFlags(cmd)
			if err != nil {
				return err
			}
			var closureDate dateutil.Date
			if s, _ := cmd.Flags().GetString("closure-date"); s != "" {
				if closureDate, err = dateutil.ParseDate(s); err != nil {
					return fmt.Errorf("--closure-date: %w", err)
				}
			}

			checker := &remote.Checker{Client: newClient(cmd), Engine: newEngine(cmd)}
			results, err := checker.CheckAll(cmd.Context(), filter, closureDate)
			if err != nil {
				return err
			}

			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.OK() {
					fmt.Fprintf(out, "ok    %s\n", r.FDNumber)
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL  %s\n", r.FDNumber)
				for _, m := range r.Mismatches {
					fmt.Fprintf(out, "      %s\n", m)
				}
			}
			fmt.Fprintf(out, "%d checked, %d disagree\n", len(results), failed)
			if failed > 0 {
				return fmt.Errorf("%d deposit(s) disagree with the service", failed)
			}
			return nil
		},
	}
	addListFilterFlags(cmd)
	cmd.Flags().String("closure-date", "", "Also compare premature-closure simulations on this date")
	return cmd
}

func remoteDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show deposit book totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(cmd)
			var summary *domain.DashboardSummary

			if local, _ := cmd.Flags().GetBool("local"); local {
				deposits, err := client.ListDeposits(cmd.Context(), remote.ListFilter{})
				if err != nil {
					return err
				}
				s := calculation.Summarize(deposits)
				summary = &s
			} else {
				var err error
				if summary, err = client.Dashboard(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Active deposits:         %d\n", summary.TotalActiveFDs)
			fmt.Fprintf(out, "Active maturity value:   %s\n", output.FormatCurrency(summary.TotalMaturityValueActive))
			fmt.Fprintf(out, "Closed deposits:         %d\n", summary.TotalClosedFDs)
			return nil
		},
	}
	cmd.Flags().Bool("local", false, "Aggregate the deposit list locally instead of asking the service")
	return cmd
}
