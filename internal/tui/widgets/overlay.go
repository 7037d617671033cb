package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#89b4fa")).
	Padding(1, 2)

// RenderPopup centers popup over base in a bordered card, keeping the base
// rows visible around it. base is padded or clipped to width x height first
// so dialogs always land in a stable canvas.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rows := canvasRows(base, height)
	for i := range rows {
		rows[i] = padRightANSI(rows[i], width)
	}

	card := popupBorder.Render(popup)
	cardRows := strings.Split(card, "\n")
	cardWidth := widestRow(cardRows)
	if cardWidth <= 0 || len(cardRows) == 0 {
		return strings.Join(rows, "\n")
	}

	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(cardRows))/2)

	for i, cardRow := range cardRows {
		row := y + i
		if row >= height {
			break
		}
		rows[row] = spliceRow(rows[row], padRightANSI(cardRow, cardWidth), x, width)
	}
	return strings.Join(rows, "\n")
}

// spliceRow lays over on top of target starting at column x, keeping the
// remainder of target visible to the right. All widths are ANSI-aware.
func spliceRow(target, over string, x, width int) string {
	left := ansi.Truncate(target, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	pos := x + ansi.StringWidth(over)
	right := cutColumns(target, pos)
	if gap := width - pos - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + over + right
}

// canvasRows splits s into exactly height rows, clipping or padding with
// empties as needed.
func canvasRows(s string, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

func widestRow(rows []string) int {
	w := 0
	for _, row := range rows {
		if rw := ansi.StringWidth(row); rw > w {
			w = rw
		}
	}
	return w
}

// cutColumns drops the first cols display columns from s.
func cutColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
