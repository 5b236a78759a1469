package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

func newScheduleTable() table.Model {
	columns := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Gross", Width: 14},
		{Title: "State pension", Width: 14},
		{Title: "Private", Width: 12},
		{Title: "Net", Width: 14},
		{Title: "Present value", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)
	return t
}

func scheduleRows(records []domain.YearRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Year),
			tuistyles.FormatCurrency(r.GrossWithdrawal),
			tuistyles.FormatCurrency(r.StatePensionTotal()),
			tuistyles.FormatCurrency(r.PrivatePension),
			tuistyles.FormatCurrency(r.NetWithdrawal),
			tuistyles.FormatCurrency(r.PresentValue),
		})
	}
	return rows
}
