package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFigure_Delta(t *testing.T) {
	tests := []struct {
		name   string
		figure Figure
		want   string
		moved  bool
	}{
		{"no earlier blend", NewFigure("Lump sum today", decimal.NewFromInt(1000)), "0", false},
		{"unchanged", NewFigure("Lump sum today", decimal.NewFromInt(1000)).Since(decimal.NewFromInt(1000), "25%"), "0", false},
		{"sub-cent change", NewFigure("Lump sum today", decimal.RequireFromString("1000.001")).Since(decimal.NewFromInt(1000), "25%"), "0", false},
		{"increase", NewFigure("Lump sum today", decimal.NewFromInt(1250)).Since(decimal.NewFromInt(1000), "25%"), "250", true},
		{"decrease", NewFigure("Monthly deposit", decimal.RequireFromString("80.555")).Since(decimal.NewFromInt(100), "25%"), "-19.45", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, moved := tt.figure.Delta()
			assert.Equal(t, tt.moved, moved)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), "got %s", d)
		})
	}
}

func TestFigure_Render(t *testing.T) {
	plain := NewFigure("Lump sum today", decimal.NewFromInt(1250)).WithNote("all lump sum: €5,000.00")
	out := plain.Render(60)
	assert.Contains(t, out, "Lump sum today")
	assert.Contains(t, out, "€1,250.00")
	assert.Contains(t, out, "all lump sum: €5,000.00")
	assert.NotContains(t, out, " vs ")

	up := plain.Since(decimal.NewFromInt(1000), "25%").Render(60)
	assert.Contains(t, up, "▲ +€250.00 vs 25%")

	down := NewFigure("Monthly deposit", decimal.NewFromInt(80)).Since(decimal.NewFromInt(100), "75%").Render(60)
	assert.Contains(t, down, "▼ -€20.00 vs 75%")
}

func TestFigureRow(t *testing.T) {
	assert.Empty(t, FigureRow(100))

	row := FigureRow(90,
		NewFigure("Required capital", decimal.NewFromInt(500000)),
		NewFigure("Shortfall", decimal.NewFromInt(120000)),
	)
	assert.Contains(t, row, "Required capital")
	assert.Contains(t, row, "Shortfall")
	assert.Equal(t, 2, strings.Count(strings.Split(row, "\n")[0], "╭"), "cards sit side by side")
}
