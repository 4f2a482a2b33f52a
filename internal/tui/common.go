package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage of the CLI
var (
	// ColorGreen for available books and success toasts
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for authors and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for highlights and the selected row
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorOrange for overdue loans
	ColorOrange = lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FF8700"}

	// ColorTealLight for genres and tab labels
	ColorTealLight = lipgloss.AdaptiveColor{Light: "#5F8787", Dark: "#87D7D7"}

	// ColorRed for errors
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	// ColorDim for disabled controls
	ColorDim = lipgloss.AdaptiveColor{Light: "#BCBCBC", Dark: "#4E4E4E"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleAvailable marks books with copies on the shelf
	StyleAvailable = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleOverdue marks loans past their due date
	StyleOverdue = lipgloss.NewStyle().Foreground(ColorOrange)

	// StyleGenre is for genres and tab labels
	StyleGenre = lipgloss.NewStyle().Foreground(ColorTealLight)

	// StyleAuthor is for authors and secondary identifiers
	StyleAuthor = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleError is for inline validation errors and error toasts
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleDisabled is for controls that cannot be used right now
	StyleDisabled = lipgloss.NewStyle().Foreground(ColorDim)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

// StatusStyle picks the style a transaction or loan status renders in.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "overdue":
		return StyleOverdue
	case "returned":
		return StyleHelp
	case "active", "borrowed":
		return StyleAvailable
	}
	return StyleNormal
}
