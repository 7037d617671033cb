package widgets

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestPaneRendersTitleAndContent(t *testing.T) {
	p := Pane{Title: "Balance", Content: "1,500,000 sat", Height: 5}
	out := p.Render(30, 5)
	if !strings.Contains(out, "Balance") {
		t.Fatalf("expected title in output:\n%s", out)
	}
	if !strings.Contains(out, "1,500,000 sat") {
		t.Fatalf("expected content in output:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("line count = %d, want 5", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 30 {
			t.Fatalf("line %d width = %d, want 30", i, w)
		}
	}
}

func TestPaneMenuToggleAndSelect(t *testing.T) {
	ran := false
	p := Pane{
		Title: "Addresses",
		Menu: []MenuItem{
			{Label: "Copy", Action: func() tea.Msg { ran = true; return nil }},
			{Label: "Delete", Action: nil},
		},
	}

	if p.MenuOpen() {
		t.Fatalf("menu should start closed")
	}
	p.ToggleMenu()
	if !p.MenuOpen() {
		t.Fatalf("menu should open after toggle")
	}
	out := p.Render(30, 6)
	if !strings.Contains(out, "Copy") || !strings.Contains(out, "Delete") {
		t.Fatalf("expected menu entries in output:\n%s", out)
	}

	cmd := p.SelectMenu()
	if cmd == nil {
		t.Fatalf("expected an action for the first entry")
	}
	cmd()
	if !ran {
		t.Fatalf("selected action did not run")
	}
	if p.MenuOpen() {
		t.Fatalf("menu should close after select")
	}
}

func TestPaneMenuDisabled(t *testing.T) {
	p := Pane{
		Title:       "Info",
		DisableMenu: true,
		Menu:        []MenuItem{{Label: "Copy"}},
	}
	p.ToggleMenu()
	if p.MenuOpen() {
		t.Fatalf("disabled menu must never open")
	}
	if strings.Contains(p.Render(20, 4), "⋮") {
		t.Fatalf("disabled menu should not show the overflow marker")
	}
}

func TestPaneMenuCursorBounds(t *testing.T) {
	p := Pane{
		Menu: []MenuItem{{Label: "a"}, {Label: "b"}},
	}
	p.ToggleMenu()
	p.MenuUp() // already at top
	p.MenuDown()
	p.MenuDown() // already at bottom
	out := p.Render(20, 5)
	if !strings.Contains(out, "▶ b") {
		t.Fatalf("cursor should rest on the last entry:\n%s", out)
	}
}

func TestPaneMenuFitsAllEntries(t *testing.T) {
	p := Pane{
		Title:  "Addresses",
		Height: 4,
		Menu:   []MenuItem{{Label: "one"}, {Label: "two"}, {Label: "three"}},
	}
	p.ToggleMenu()
	out := p.Render(30, 4)
	for _, label := range []string{"one", "two", "three"} {
		if !strings.Contains(out, label) {
			t.Fatalf("menu entry %q cut off:\n%s", label, out)
		}
	}
}

func TestPanePaddingOverride(t *testing.T) {
	p := Pane{Title: "t", Content: "x", PadX: 3}
	out := p.Render(20, 3)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least two lines")
	}
	if !strings.Contains(lines[1], "   x") {
		t.Fatalf("expected 3-column padding before content, got %q", lines[1])
	}
}
