package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#E8A87C") // warm orange
	secondaryColor = lipgloss.Color("#85DCB0") // mint green
	errorColor     = lipgloss.Color("#E85D75") // soft red
	warningColor   = lipgloss.Color("#F6AE2D") // amber
	mutedColor     = lipgloss.Color("#6B7280")
	textColor      = lipgloss.Color("#F3F4F6")
	dimTextColor   = lipgloss.Color("#9CA3AF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	fileNameStyle = lipgloss.NewStyle().
			Foreground(textColor)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	overrideStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2).
			MarginTop(1)

	countStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(1)

	iconSuccess  = "✓"
	iconError    = "✗"
	iconOverride = "⚠"
	iconArrow    = "→"
	iconFolder   = "📁"
)
