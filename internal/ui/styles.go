package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for scan output
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - resolved devices
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for scan output
var (
	// TitleStyle is for section titles ("Discovered devices")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// DeviceNameStyle is for a device's friendly name
	DeviceNameStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// FieldKeyStyle is for detail keys ("Location:", "USN:")
	FieldKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(14)

	// FieldValueStyle is for detail values
	FieldValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// HintStyle is for troubleshooting hints and footers
	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ErrorStyle is for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// SpinnerStyle is for the watch screen spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdout is an interactive terminal. Styled
// output and the watch screen are only offered on real terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DeviceCardStyle returns the border style for one device card
func DeviceCardStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 1)
}

// Field is one "key: value" detail line on a device card. Empty values
// are skipped by RenderDeviceCard.
type Field struct {
	Key   string
	Value string
}

// RenderDeviceCard renders one resolved device as a bordered card sized
// to the terminal: the device name on top, detail fields below.
func RenderDeviceCard(name string, fields []Field) string {
	lines := []string{DeviceNameStyle.Render(name)}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		lines = append(lines,
			FieldKeyStyle.Render(f.Key+":")+FieldValueStyle.Render(f.Value))
	}
	return DeviceCardStyle(GetTerminalWidth()).Render(strings.Join(lines, "\n"))
}
