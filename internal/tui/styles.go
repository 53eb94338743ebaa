// Package tui provides the interactive chat screen for glassai.
package tui

import "github.com/charmbracelet/lipgloss"

// Monochrome palette, matching the app's black & white theme
var (
	colorText    = lipgloss.Color("#E5E5E5")
	colorTextDim = lipgloss.Color("#888888")
	colorBorder  = lipgloss.Color("#404040")
	colorAccent  = lipgloss.Color("#FFFFFF")
	colorError   = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, true, false).
			BorderForeground(colorBorder).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	userTextStyle = lipgloss.NewStyle().
			Foreground(colorText)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Bold(true)

	attachmentStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)
