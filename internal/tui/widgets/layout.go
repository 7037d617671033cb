package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HStack lays widgets side by side. Ratios (optional) split the width; when
// absent the widgets share it evenly. Gap is the number of blank columns
// between neighbors.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 {
		return ""
	}
	gaps := h.Gap * (n - 1)
	avail := width - gaps
	if avail < n {
		avail = n
	}

	widths := make([]int, n)
	used := 0
	for i := range h.Widgets {
		var w int
		if i < len(h.Ratios) {
			w = int(float64(avail) * h.Ratios[i])
		} else {
			w = avail / n
		}
		if w < 1 {
			w = 1
		}
		widths[i] = w
		used += w
	}
	// last widget absorbs rounding leftovers
	if diff := avail - used; diff > 0 {
		widths[n-1] += diff
	}

	cols := make([]string, 0, 2*n-1)
	gap := strings.Repeat(" ", h.Gap)
	for i, w := range h.Widgets {
		if i > 0 && h.Gap > 0 {
			cols = append(cols, gap)
		}
		cols = append(cols, w.Render(widths[i], height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// VStack lays widgets top to bottom with Spacing blank lines between them.
type VStack struct {
	Widgets []Widget
	Spacing int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 {
		return ""
	}
	parts := make([]string, 0, len(v.Widgets))
	for _, w := range v.Widgets {
		parts = append(parts, w.Render(width, height))
	}
	sep := strings.Repeat("\n", v.Spacing+1)
	return strings.Join(parts, sep)
}
