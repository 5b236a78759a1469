package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Blend",
		"Type",
		"Lump Sum Percentage",
		"Lump Sum",
		"Annual Deposit",
		"Monthly Deposit",
		"Total Outlay",
		"Lump Sum Diff from Base",
		"Monthly Diff from Base",
		"Outlay Diff from Base",
		"Outlay % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, blendType string) []string {
	return []string{
		result.Name,
		blendType,
		result.Percentage.String(),
		result.LumpSum.StringFixed(2),
		result.AnnualDeposit.StringFixed(2),
		result.MonthlyDeposit.StringFixed(2),
		result.TotalOutlay.StringFixed(2),
		result.LumpSumDiffFromBase.StringFixed(2),
		result.MonthlyDiffFromBase.StringFixed(2),
		result.OutlayDiffFromBase.StringFixed(2),
		result.OutlayPctFromBase.StringFixed(2),
	}
}
