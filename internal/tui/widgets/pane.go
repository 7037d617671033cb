package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MenuItem is a caller-supplied overflow menu entry. Action runs when the
// entry is chosen; a nil Action renders the entry disabled.
type MenuItem struct {
	Label  string
	Action tea.Cmd
}

// Pane is the reusable card container: a bordered box with a title row, an
// optional overflow menu, and body content. The pane owns only ephemeral
// presentation state (menu open/closed and the menu cursor); everything else
// is supplied by the caller on each render.
type Pane struct {
	Title       string
	Content     string
	Height      int
	Selected    bool
	Focused     bool
	Menu        []MenuItem
	DisableMenu bool
	PadX        int // horizontal content padding override; 1 when zero

	menuOpen   bool
	menuCursor int
}

// MenuOpen reports whether the overflow menu is showing.
func (p *Pane) MenuOpen() bool { return p.menuOpen && !p.DisableMenu && len(p.Menu) > 0 }

// ToggleMenu opens or closes the overflow menu. It is a no-op when the menu
// is disabled or empty.
func (p *Pane) ToggleMenu() {
	if p.DisableMenu || len(p.Menu) == 0 {
		return
	}
	p.menuOpen = !p.menuOpen
	p.menuCursor = 0
}

// CloseMenu closes the overflow menu and resets the cursor.
func (p *Pane) CloseMenu() {
	p.menuOpen = false
	p.menuCursor = 0
}

// MenuUp moves the menu cursor up.
func (p *Pane) MenuUp() {
	if p.menuCursor > 0 {
		p.menuCursor--
	}
}

// MenuDown moves the menu cursor down.
func (p *Pane) MenuDown() {
	if p.menuCursor < len(p.Menu)-1 {
		p.menuCursor++
	}
}

// SelectMenu closes the menu and returns the chosen entry's action.
func (p *Pane) SelectMenu() tea.Cmd {
	if !p.MenuOpen() || p.menuCursor >= len(p.Menu) {
		return nil
	}
	item := p.Menu[p.menuCursor]
	p.CloseMenu()
	return item.Action
}

func (p *Pane) Render(width, height int) string {
	if width <= 0 {
		return ""
	}
	// Height pins the box; when unset the pane fills the box the caller
	// supplies. An open menu always gets room for every entry so the cursor
	// can never rest on a hidden row.
	h := p.Height
	if h <= 0 {
		h = height
	}
	if height > 0 && p.Height > 0 && h > height {
		h = height
	}
	if p.MenuOpen() {
		if needed := len(p.Menu) + 2; h < needed {
			h = needed
		}
	}
	if width < 4 {
		width = 4
	}
	if h < 3 {
		h = 3
	}

	border := lipgloss.Color("#6c7086")
	if p.Selected {
		border = lipgloss.Color("#89b4fa")
	}
	if p.Focused {
		border = lipgloss.Color("#a6e3a1")
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
	contentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))

	titlePrefix := "  "
	if p.Selected {
		titlePrefix = "▶ "
	}
	if p.Focused {
		titlePrefix = "● "
	}

	pad := p.PadX
	if pad <= 0 {
		pad = 1
	}

	innerWidth := width - 2
	contentWidth := innerWidth - 2*pad
	if contentWidth < 1 {
		contentWidth = 1
		innerWidth = contentWidth + 2*pad
		width = innerWidth + 2
	}

	title := strings.TrimSpace(titlePrefix + p.Title)
	if !p.DisableMenu && len(p.Menu) > 0 {
		title += " ⋮"
	}
	titleText := " " + title + " "
	if ansi.StringWidth(titleText) > innerWidth {
		titleText = " " + ansi.Truncate(title, max(1, innerWidth-2), "") + " "
	}
	titleW := ansi.StringWidth(titleText)
	dashes := innerWidth - titleW
	if dashes < 0 {
		dashes = 0
	}
	leftDash := 1
	if dashes == 0 {
		leftDash = 0
	} else if leftDash > dashes {
		leftDash = dashes
	}
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	tl := borderStyle.Render("╭")
	tr := borderStyle.Render("╮")
	bl := borderStyle.Render("╰")
	br := borderStyle.Render("╯")

	top := tl +
		borderStyle.Render(strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)) +
		tr

	body := p.Content
	if p.MenuOpen() {
		body = p.renderMenu()
	}

	innerHeight := h - 2
	contentLines := splitLines(body)
	if len(contentLines) == 0 {
		contentLines = []string{""}
	}
	padding := strings.Repeat(" ", pad)
	rows := make([]string, 0, innerHeight+2)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		line = ansi.Truncate(line, contentWidth, "")
		line = contentStyle.Render(line)
		row := v + padding + padRightANSI(line, contentWidth) + padding + v
		rows = append(rows, row)
	}
	bottom := bl + borderStyle.Render(strings.Repeat("─", innerWidth)) + br
	rows = append(rows, bottom)

	return strings.Join(rows, "\n")
}

func (p *Pane) renderMenu() string {
	var b strings.Builder
	for i, item := range p.Menu {
		marker := "  "
		if i == p.menuCursor {
			marker = "▶ "
		}
		label := item.Label
		if item.Action == nil {
			label += " (unavailable)"
		}
		b.WriteString(marker + label)
		if i < len(p.Menu)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
