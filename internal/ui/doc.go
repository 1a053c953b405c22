// Package ui holds the shared lipgloss styles and terminal helpers used
// by the CLI commands and the watch screen.
package ui
