package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a bar for value within [0, maxVal], colored by how full it is.
func (r *Renderer) DrawBar(x, y int32, label string, value, maxVal float64, width int32) int32 {
	ratio := 0.0
	if maxVal > 0 {
		ratio = min(max(value/maxVal, 0), 1)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	color := r.Theme.BarFillHigh
	switch {
	case ratio < 0.3:
		color = r.Theme.BarFillLow
	case ratio < 0.6:
		color = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, color)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawColumns draws one vertical bar per value, scaled to the largest, and
// returns the new Y position. Used for vision cells.
func (r *Renderer) DrawColumns(x, y int32, label string, values []float64, width, height int32) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	if len(values) == 0 {
		return y
	}

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}

	colWidth := width / int32(len(values))
	for i, v := range values {
		cx := x + int32(i)*colWidth
		rl.DrawRectangle(cx, y, colWidth-2, height, r.Theme.BarBg)
		if peak > 0 {
			h := int32(float64(height) * v / peak)
			rl.DrawRectangle(cx, y+height-h, colWidth-2, h, r.Theme.BarFill)
		}
	}
	return y + height + r.Theme.Padding/2
}
