package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette tuned for light and dark terminals
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6366f1", Dark: "#818cf8"} // Indigo
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#f59e0b", Dark: "#fbbf24"} // Amber
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"} // Green
	ColorError     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"} // Red
	ColorText      = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f3f4f6"}
	ColorTextMuted = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NarrationStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// Step trail styles
	StepDoneStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StepActiveStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	SwatchCursorStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)
