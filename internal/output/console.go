package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// ConsoleFormatter renders every section of a report as plain text tables
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	writeTitle(&buf, report)
	if len(report.Eligibility) > 0 {
		writeEligibility(&buf, report.Eligibility)
	}
	if report.BuildUp != nil {
		writeBuildUp(&buf, report.BuildUp)
	}
	if report.Schedule != nil {
		writeSchedule(&buf, report.Schedule)
	}
	if report.Reverse != nil {
		writeReverse(&buf, report.Reverse)
	}
	return buf.Bytes(), nil
}

func writeTitle(buf *bytes.Buffer, report *domain.Report) {
	title := "DRAWDOWN PLAN"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintln(buf, titleStyle.Render(title))
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintln(buf)
}

func writeSection(buf *bytes.Buffer, name string) {
	fmt.Fprintln(buf, sectionStyle.Render(name))
	fmt.Fprintln(buf, strings.Repeat("-", len(name)))
}

func writeEligibility(buf *bytes.Buffer, infos []domain.EligibilityInfo) {
	writeSection(buf, "STATE PENSION ELIGIBILITY")
	for _, info := range infos {
		who := string(info.Owner)
		if info.Name != "" {
			who = fmt.Sprintf("%s (%s)", info.Name, info.Owner)
		}
		if !info.Age.Determined || info.StartDate == nil {
			fmt.Fprintf(buf, "%s: statutory age not yet determined\n", who)
			continue
		}
		fmt.Fprintf(buf, "%s: statutory age %s, starts %s\n", who, info.Age, info.StartDate.Format("2006-01-02"))
		for _, f := range info.Fractions {
			if f.Fraction.IsZero() {
				continue
			}
			fmt.Fprintf(buf, "  %d: %s\n", f.Year, FormatFraction(f.Fraction))
			if f.Fraction.Equal(decimal.NewFromInt(1)) {
				// later years are all full
				break
			}
		}
	}
	fmt.Fprintln(buf)
}

func writeBuildUp(buf *bytes.Buffer, result *domain.BuildUpResult) {
	writeSection(buf, "BUILD-UP PHASE")
	plan := result.Plan
	fmt.Fprintf(buf, "Lump sum:            %s\n", FormatCurrency(plan.LumpSum))
	fmt.Fprintf(buf, "Annual contribution: %s (%s of year)\n", FormatCurrency(plan.AnnualContribution), plan.ContributionTiming)
	fmt.Fprintf(buf, "Growth rate:         %s\n", FormatPercentage(plan.GrowthRate))
	fmt.Fprintf(buf, "Years:               %d\n", plan.Years)
	fmt.Fprintf(buf, "Future value:        %s\n", FormatCurrency(result.FutureValue))
	if len(result.Trajectory) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%-5s %16s %14s %14s %16s\n", "Year", "Opening", "Deposit", "Growth", "Closing")
		for _, y := range result.Trajectory {
			fmt.Fprintf(buf, "%-5d %16s %14s %14s %16s\n", y.Index,
				FormatCurrency(y.OpeningBalance), FormatCurrency(y.Contribution),
				FormatCurrency(y.Growth), FormatCurrency(y.ClosingBalance))
		}
	}
	fmt.Fprintln(buf)
}

func writeSchedule(buf *bytes.Buffer, schedule *domain.Schedule) {
	writeSection(buf, "WITHDRAWAL SCHEDULE")
	tracking := schedule.StartingCapital != nil
	header := fmt.Sprintf("%-6s %14s %13s %13s %12s %14s %14s", "Year", "Gross", "State self", "State partner", "Private", "Net", "Present value")
	if tracking {
		header += fmt.Sprintf(" %16s", "Capital (end)")
	}
	fmt.Fprintln(buf, header)
	for _, r := range schedule.Records {
		line := fmt.Sprintf("%-6d %14s %13s %13s %12s %14s %14s", r.Year,
			FormatCurrency(r.GrossWithdrawal), FormatCurrency(r.SelfStatePension.Amount),
			FormatCurrency(r.PartnerStatePension.Amount), FormatCurrency(r.PrivatePension),
			FormatCurrency(r.NetWithdrawal), FormatCurrency(r.PresentValue))
		if tracking && r.ClosingCapital != nil {
			line += fmt.Sprintf(" %16s", FormatCurrency(*r.ClosingCapital))
		}
		fmt.Fprintln(buf, line)
	}
	t := schedule.Totals
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "%-6s %14s %27s %12s %14s %14s\n", "Total",
		FormatCurrency(t.GrossWithdrawal), FormatCurrency(t.StatePension),
		FormatCurrency(t.PrivatePension), FormatCurrency(t.NetWithdrawal), FormatCurrency(t.PresentValue))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Present value of withdrawals: %s\n", FormatCurrency(t.PresentValue))
	if tracking {
		fmt.Fprintf(buf, "Starting capital:             %s\n", FormatCurrency(*schedule.StartingCapital))
		fmt.Fprintf(buf, "Surplus:                      %s\n", FormatCurrency(*schedule.Surplus))
		if schedule.IsDepleted() {
			fmt.Fprintln(buf, warnStyle.Render(fmt.Sprintf("Capital depleted in %d", schedule.DepletionYear)))
		}
	}
	writeWarnings(buf, schedule.Warnings)
	fmt.Fprintln(buf)
}

func writeReverse(buf *bytes.Buffer, result *domain.ReverseResult) {
	writeSection(buf, "REQUIRED CAPITAL")
	fmt.Fprintf(buf, "Retirement year:               %d\n", result.RetirementYear)
	fmt.Fprintf(buf, "Required capital:              %s\n", FormatCurrency(result.RequiredCapital))
	fmt.Fprintf(buf, "Future value current capital:  %s\n", FormatCurrency(result.FutureValueCurrentCapital))
	fmt.Fprintf(buf, "Shortfall:                     %s\n", FormatCurrency(result.Shortfall))
	if result.IsFunded() {
		fmt.Fprintln(buf, "Current capital covers the requirement.")
		writeWarnings(buf, result.Warnings)
		fmt.Fprintln(buf)
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Blend: %s%% lump sum\n", result.LumpSumPercentage.StringFixed(0))
	fmt.Fprintf(buf, "  Lump sum today:   %s\n", FormatCurrency(result.Required.LumpSum))
	fmt.Fprintf(buf, "  Annual deposit:   %s\n", FormatCurrency(result.Required.AnnualDeposit))
	fmt.Fprintf(buf, "  Monthly deposit:  %s\n", FormatCurrency(result.Required.MonthlyDeposit))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Closing the whole shortfall one way:")
	fmt.Fprintf(buf, "  Lump sum only:    %s\n", FormatCurrency(result.FullLumpSum))
	fmt.Fprintf(buf, "  Annual only:      %s\n", FormatCurrency(result.FullPeriodic.AnnualDeposit))
	fmt.Fprintf(buf, "  Monthly only:     %s\n", FormatCurrency(result.FullPeriodic.MonthlyDeposit))
	writeWarnings(buf, result.Warnings)
	fmt.Fprintln(buf)
}

func writeWarnings(buf *bytes.Buffer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(buf, warnStyle.Render("⚠ "+w))
	}
}

// ConsoleLiteFormatter prints the headline figures only
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DRAWDOWN SUMMARY")
	fmt.Fprintln(&buf, "================")
	for _, info := range report.Eligibility {
		fmt.Fprintf(&buf, "State pension age (%s): %s\n", info.Owner, info.Age)
	}
	if report.BuildUp != nil {
		fmt.Fprintf(&buf, "Build-up future value: %s\n", FormatCurrency(report.BuildUp.FutureValue))
	}
	if s := report.Schedule; s != nil && len(s.Records) > 0 {
		fmt.Fprintf(&buf, "Withdrawals %d-%d, present value %s\n", s.Records[0].Year, s.Records[len(s.Records)-1].Year, FormatCurrency(s.Totals.PresentValue))
		if s.Surplus != nil {
			fmt.Fprintf(&buf, "Surplus: %s\n", FormatCurrency(*s.Surplus))
		}
	}
	if r := report.Reverse; r != nil {
		fmt.Fprintf(&buf, "Required capital: %s, shortfall %s\n", FormatCurrency(r.RequiredCapital), FormatCurrency(r.Shortfall))
		fmt.Fprintf(&buf, "Close with %s lump sum + %s/month\n", FormatCurrency(r.Required.LumpSum), FormatCurrency(r.Required.MonthlyDeposit))
	}
	return buf.Bytes(), nil
}
