package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusFailed  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))

	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// Field renders a label/value row of the stats panel.
func Field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// Verdict renders a pass/fail marker.
func Verdict(pass bool) string {
	if pass {
		return StatusRunning.Render("PASS")
	}
	return StatusFailed.Render("FAIL")
}

// CheckLine renders one check result for the CLI report.
func CheckLine(name string, value, tolerance float64, pass bool) string {
	return fmt.Sprintf("%s  %s %s", Verdict(pass),
		labelStyle.Width(24).Render(name),
		valueStyle.Render(fmt.Sprintf("%.6g (tol %.3g)", value, tolerance)))
}

func Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
