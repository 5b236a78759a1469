package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/tui/components"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// View renders the current state of the explorer
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage)
	case m.currentScene == SceneSchedule:
		content = m.renderSchedule()
	case m.currentScene == SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderSummary()
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("DRAWDOWN - Capital Explorer")
	breadcrumb := m.currentScene.String()
	if m.config != nil && m.config.Household.Self.Name != "" {
		breadcrumb = fmt.Sprintf("%s / %s", m.config.Household.Self.Name, breadcrumb)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
}

// renderSummary shows the blend slider and the figures of the current solve
func (m Model) renderSummary() string {
	r := m.reverse
	if r == nil {
		return tuistyles.BorderStyle.Render("No result yet")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Retirement in %d, withdrawals for %d years\n\n", r.RetirementYear, len(r.Records)))

	b.WriteString(components.FigureRow(m.width,
		components.NewFigure("Required capital", r.RequiredCapital),
		components.NewFigure("Current capital grows to", r.FutureValueCurrentCapital),
		components.NewFigure("Shortfall", r.Shortfall),
	))
	b.WriteString("\n\n")

	if r.IsFunded() {
		b.WriteString(tuistyles.MetricTrendStyle(true).Render("Current capital covers the requirement."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.blend.Render())
		b.WriteString("\n\n")
		b.WriteString(components.FigureRow(m.width, m.contributionFigures()...))
		b.WriteString("\n")
	}

	for _, w := range r.Warnings {
		b.WriteString(tuistyles.WarningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}
	return b.String()
}

// contributionFigures shows what the current blend asks for, compared with the
// blend shown before the slider last moved
func (m Model) contributionFigures() []components.Figure {
	r := m.reverse
	figures := []components.Figure{
		components.NewFigure("Lump sum today", r.Required.LumpSum).
			WithNote("all lump sum: " + tuistyles.FormatCurrency(r.FullLumpSum)),
		components.NewFigure("Monthly deposit", r.Required.MonthlyDeposit).
			WithNote("no lump sum: " + tuistyles.FormatCurrency(r.FullPeriodic.MonthlyDeposit)),
		components.NewFigure("Annual deposit", r.Required.AnnualDeposit).
			WithNote("no lump sum: " + tuistyles.FormatCurrency(r.FullPeriodic.AnnualDeposit)),
	}
	if p := m.previous; p != nil {
		blend := p.LumpSumPercentage.String() + "%"
		figures[0] = figures[0].Since(p.Required.LumpSum, blend)
		figures[1] = figures[1].Since(p.Required.MonthlyDeposit, blend)
		figures[2] = figures[2].Since(p.Required.AnnualDeposit, blend)
	}
	return figures
}

// renderSchedule shows the year table
func (m Model) renderSchedule() string {
	var b strings.Builder
	if m.schedule != nil {
		b.WriteString(tuistyles.SubtitleStyle.Render("Withdrawal plan schedule"))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Present value: %s", tuistyles.FormatCurrency(m.schedule.Totals.PresentValue)))
		if m.schedule.Surplus != nil {
			surplus := *m.schedule.Surplus
			b.WriteString("   ")
			b.WriteString(tuistyles.MetricTrendStyle(!surplus.IsNegative()).Render("Surplus: " + tuistyles.FormatCurrency(surplus)))
		}
		if m.schedule.IsDepleted() {
			b.WriteString("\n")
			b.WriteString(tuistyles.WarningStyle.Render(fmt.Sprintf("Capital depleted in %d", m.schedule.DepletionYear)))
		}
		return b.String()
	}
	b.WriteString(tuistyles.SubtitleStyle.Render("Withdrawals the required capital has to fund"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	return b.String()
}

func (m Model) renderHelp() string {
	helpText := `DRAWDOWN - Capital Explorer

KEYBOARD SHORTCUTS:
  ← / h / -   Lower the lump sum share by 5%
  → / l / +   Raise the lump sum share by 5%
  tab         Switch between summary and schedule
  ↑ / ↓       Scroll the schedule
  ?           Show this help
  esc         Go back
  q/Ctrl+C    Quit
`
	return tuistyles.BorderStyle.Render(helpText)
}
