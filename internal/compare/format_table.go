package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing blends
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("FUNDING BLEND COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Blend: %s\n", compSet.BaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Retirement Year: %d (%d years away)\n", compSet.RetirementYear, compSet.YearsToRetirement))
	sb.WriteString(fmt.Sprintf("Required Capital: €%s  Shortfall: €%s\n",
		tf.formatDecimal(compSet.RequiredCapital), tf.formatDecimal(compSet.Shortfall)))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Blend",
		numWidth, "Lump Sum",
		numWidth, "Annual",
		numWidth, "Monthly",
		numWidth, "Total Outlay"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			sb.WriteString(fmt.Sprintf("  Lump Sum:      %s€%s\n",
				tf.deltaSymbol(alt.LumpSumDiffFromBase), tf.formatDecimal(alt.LumpSumDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Monthly:       %s€%s\n",
				tf.deltaSymbol(alt.MonthlyDiffFromBase), tf.formatDecimal(alt.MonthlyDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Total Outlay:  %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.OutlayDiffFromBase), tf.formatDecimal(alt.OutlayDiffFromBase),
				alt.OutlayPctFromBase.StringFixed(1)))
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

// formatRow formats a single blend row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "€"+tf.formatDecimal(result.LumpSum),
		numWidth, "€"+tf.formatDecimal(result.AnnualDeposit),
		numWidth, "€"+tf.formatDecimal(result.MonthlyDeposit),
		numWidth, "€"+tf.formatDecimal(result.TotalOutlay))
}

// formatDecimal formats the magnitude of a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	d = d.Abs()
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign of a delta, a space for zero
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

// FormatCompact creates a compact single-line summary for each blend
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.OutlayDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s€%s", tf.deltaSymbol(alt.OutlayDiffFromBase), tf.formatDecimal(alt.OutlayDiffFromBase))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}
