package tui

import "github.com/charmbracelet/lipgloss"

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
