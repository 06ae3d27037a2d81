package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nvm/sysinspect/internal/platform"
)

// Color palette
var (
	primaryColor   = lipgloss.Color("205") // Pink/Magenta
	successColor   = lipgloss.Color("42")  // Green
	errorColor     = lipgloss.Color("196") // Red
	warningColor   = lipgloss.Color("220") // Yellow
	mutedColor     = lipgloss.Color("241") // Gray
	accentColor    = lipgloss.Color("63")  // Purple
	highlightColor = lipgloss.Color("117") // Light blue
	selectedBg     = lipgloss.Color("240")
	selectedFg     = lipgloss.Color("230")
)

// Text styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(selectedFg).
			Background(accentColor).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor).
			Padding(0, 1)

	modalHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	inputStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// Box style for modals
var modalBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(accentColor).
	Padding(1, 2)

// swatch renders a block filled with c.
func swatch(c platform.Colour, width, height int) string {
	line := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// overlayContent centers a modal over the main view
func overlayContent(_, modal string, termWidth, termHeight int) string {
	// Use lipgloss.Place to center the modal in the terminal viewport
	return lipgloss.Place(
		termWidth,
		termHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}
