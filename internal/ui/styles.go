package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorYellow  = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#E5C07B"}
	colorRed     = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	colorBlue    = lipgloss.AdaptiveColor{Light: "#005FD7", Dark: "#61AFEF"}
	colorCyan    = lipgloss.AdaptiveColor{Light: "#00878F", Dark: "#56B6C2"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	keyStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(colorBorder)
)

// bandColors follow the scale printed by `fng info`.
var bandColors = []lipgloss.AdaptiveColor{colorGreen, colorYellow, colorBlue, colorRed}
