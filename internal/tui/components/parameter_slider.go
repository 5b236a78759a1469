package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable parameter with a visual bar
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // e.g. "%"
	Format      string // e.g. "%.0f"
	Width       int
	Description string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  30,
	}
	p.SetValue(value)
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithDescription adds a help line
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value + p.Step)
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value - p.Step)
}

// SetValue sets the value, clamped to min/max, and reports whether it changed
func (p *ParameterSlider) SetValue(value float64) bool {
	clamped := math.Max(p.Min, math.Min(p.Max, value))
	changed := clamped != p.Value
	p.Value = clamped
	return changed
}

// Percentage returns the value as a share of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Render returns the styled slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.ParameterLabelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(tuistyles.ParameterValueStyle.Render(p.formatValue(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.formatValue(p.Min), p.formatValue(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}

	return content.String()
}

func (p *ParameterSlider) formatValue(v float64) string {
	return fmt.Sprintf(p.Format, v) + p.Unit
}

// renderBar draws the track with the thumb at the current value
func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i <= p.Width; i++ {
		switch {
		case i == filled:
			bar.WriteString(tuistyles.SliderThumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(tuistyles.SliderThumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
