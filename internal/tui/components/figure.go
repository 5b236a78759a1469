package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// Figure is one amount of a reverse solve. When the blend slider has moved,
// Previous holds the same amount at the blend shown before.
type Figure struct {
	Label  string
	Amount decimal.Decimal
	Note   string

	Previous      *decimal.Decimal
	PreviousBlend string
}

// NewFigure creates a figure without a comparison
func NewFigure(label string, amount decimal.Decimal) Figure {
	return Figure{Label: label, Amount: amount}
}

// Since compares the figure with its value at an earlier blend
func (f Figure) Since(previous decimal.Decimal, blend string) Figure {
	f.Previous = &previous
	f.PreviousBlend = blend
	return f
}

// WithNote adds a muted line under the amount
func (f Figure) WithNote(note string) Figure {
	f.Note = note
	return f
}

// Delta is the change against the previous blend; false when there is nothing
// to compare or the amount did not move
func (f Figure) Delta() (decimal.Decimal, bool) {
	if f.Previous == nil {
		return decimal.Zero, false
	}
	d := f.Amount.Sub(*f.Previous).Round(2)
	return d, !d.IsZero()
}

// deltaLine renders the change. Every figure here is money the user has to
// put in, so a decrease is shown as good news.
func (f Figure) deltaLine() string {
	d, ok := f.Delta()
	if !ok {
		return ""
	}
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	}
	text := fmt.Sprintf("%s %s%s vs %s", tuistyles.TrendIndicator(d.IsPositive()), sign,
		tuistyles.FormatCurrency(d.Abs()), f.PreviousBlend)
	return tuistyles.MetricTrendStyle(d.IsNegative()).Render(text)
}

// Render draws the figure as a bordered card of the given width
func (f Figure) Render(width int) string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(f.Label),
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(f.Amount)),
	}
	if delta := f.deltaLine(); delta != "" {
		lines = append(lines, delta)
	}
	if f.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(f.Note))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// FigureRow lays figures side by side, sharing totalWidth between them
func FigureRow(totalWidth int, figures ...Figure) string {
	if len(figures) == 0 {
		return ""
	}
	// border and padding take four columns per card
	width := max(totalWidth/len(figures)-4, 16)
	cards := make([]string, len(figures))
	for i, f := range figures {
		cards[i] = f.Render(width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
