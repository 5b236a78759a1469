package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/output"
	"github.com/rgehrsitz/drawdown/internal/server"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadPlan sets up the application and parses the plan file
func loadPlan(cmd *cobra.Command, path string) (*app, *domain.Configuration, error) {
	a, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("plan loaded", zap.String("path", path))
	return a, plan, nil
}

// render writes a report in the configured format, to stdout or to a
// timestamped file when --save is set
func (a *app) render(cmd *cobra.Command, report *domain.Report) error {
	formatter := output.GetFormatterByName(a.settings.Output.Format)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s (available: %v, aliases: %v)",
			a.settings.Output.Format, output.AvailableFormatterNames(), output.AvailableFormatAliases())
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		filename, err := output.WriteFormatted(formatter, report, extensionFor(formatter.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func extensionFor(formatter string) string {
	switch formatter {
	case "csv", "json":
		return formatter
	default:
		return "txt"
	}
}

func addSaveFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Run every phase the plan defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := a.engine.RunConfiguration(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return a.render(cmd, report)
		},
	}
	addSaveFlag(cmd)
	return cmd
}

func newEligibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligibility [plan-file]",
		Short: "Show statutory pension ages, start dates and year fractions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			from, to := calculation.EligibilityWindow(plan)
			if f, _ := cmd.Flags().GetInt("from"); f > 0 {
				from = f
			}
			if t, _ := cmd.Flags().GetInt("to"); t > 0 {
				to = t
			}
			infos, err := a.engine.EligibilityReport(cmd.Context(), plan.Household, from, to)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Name: plan.Household.Self.Name, Eligibility: infos})
		},
	}
	cmd.Flags().Int("from", 0, "First calendar year of the fraction report")
	cmd.Flags().Int("to", 0, "Last calendar year of the fraction report")
	addSaveFlag(cmd)
	return cmd
}

func newBuildUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildup [plan-file]",
		Short: "Project the build-up phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			if plan.BuildUp == nil {
				return domain.NewValidationError("build_up", "the plan has no build-up phase")
			}
			result, err := a.engine.BuildUp(cmd.Context(), *plan.BuildUp)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Name: plan.Household.Self.Name, BuildUp: result})
		},
	}
	addSaveFlag(cmd)
	return cmd
}

func newForwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward [plan-file]",
		Short: "Produce the year-by-year withdrawal schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			if plan.Withdrawal == nil {
				return domain.NewValidationError("withdrawal", "the plan has no withdrawal phase")
			}
			// the build-up phase, if any, still feeds the starting capital
			forwardOnly := *plan
			forwardOnly.Reverse = nil
			report, err := a.engine.RunConfiguration(cmd.Context(), &forwardOnly)
			if err != nil {
				return err
			}
			return a.render(cmd, report)
		},
	}
	addSaveFlag(cmd)
	return cmd
}

func newReverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse [plan-file]",
		Short: "Solve the capital a target income requires and how to close the gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			if plan.Reverse == nil {
				return domain.NewValidationError("reverse", "the plan has no reverse request")
			}
			req := *plan.Reverse
			if blend, _ := cmd.Flags().GetString("blend"); blend != "" {
				pct, err := decimal.NewFromString(blend)
				if err != nil {
					return domain.NewValidationError("reverse.lump_sum_percentage", "invalid blend %q", blend)
				}
				req = req.WithLumpSumPercentage(pct)
			}
			result, err := a.engine.Reverse(cmd.Context(), req, plan.Household, plan.IncomeSources)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Name: plan.Household.Self.Name, Reverse: result})
		},
	}
	cmd.Flags().String("blend", "", "Lump sum percentage override, 0 (monthly only) to 100 (lump sum only)")
	addSaveFlag(cmd)
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare lump sum / monthly blends for the reverse request",
		Long: `Solves the reverse request once per lump sum percentage and compares
the blends against a base: upfront lump sum, monthly deposit and total outlay.

Examples:
  drawdown compare plan.yaml
  drawdown compare plan.yaml --blends 0,50,100 --base 25
  drawdown compare plan.yaml --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, plan, err := loadPlan(cmd, args[0])
			if err != nil {
				return err
			}

			options := compare.CompareOptions{ConfigPath: args[0]}
			blends, _ := cmd.Flags().GetStringSlice("blends")
			for _, b := range blends {
				pct, err := decimal.NewFromString(b)
				if err != nil {
					return domain.NewValidationError("blends", "invalid blend %q", b)
				}
				options.Percentages = append(options.Percentages, pct)
			}
			if base, _ := cmd.Flags().GetString("base"); base != "" {
				pct, err := decimal.NewFromString(base)
				if err != nil {
					return domain.NewValidationError("base", "invalid base blend %q", base)
				}
				options.BasePercentage = &pct
			}

			compSet, err := compare.NewCompareEngine(a.engine).CompareConfiguration(cmd.Context(), plan, options)
			if err != nil {
				return err
			}

			text, err := formatComparison(a.settings.Output.Format, compSet)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringSlice("blends", nil, "Lump sum percentages to compare (default 0,25,50,75,100)")
	cmd.Flags().String("base", "", "Base blend percentage (default: the plan's own blend)")
	return cmd
}

// formatComparison renders a comparison in the configured report format. The
// lite report formats map to the one-line-per-blend compact table.
func formatComparison(format string, compSet *compare.ComparisonSet) (string, error) {
	switch format {
	case "", "console", "verbose", "table":
		return (&compare.TableFormatter{}).Format(compSet), nil
	case "console-lite", "lite", "summary", "compact":
		return (&compare.TableFormatter{}).FormatCompact(compSet) + "\n", nil
	case "csv":
		return (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		return (&compare.JSONFormatter{}).Format(compSet)
	}
	return "", fmt.Errorf("unknown output format: %s (valid: console, console-lite, csv, json, compact)", format)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			addr := a.settings.Server.Addr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
				addr = flagAddr
			}

			srv, err := server.New(a.engine, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
