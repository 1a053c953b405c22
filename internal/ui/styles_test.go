package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetTerminalWidth_WithinBounds(t *testing.T) {
	width := GetTerminalWidth()
	if width < MinTerminalWidth || width > MaxContentWidth {
		t.Errorf("GetTerminalWidth() = %d, want between %d and %d",
			width, MinTerminalWidth, MaxContentWidth)
	}
}

func TestDeviceCardStyle_RendersToRequestedWidth(t *testing.T) {
	out := DeviceCardStyle(MinTerminalWidth).Render("x")

	for i, line := range strings.Split(out, "\n") {
		if got := lipgloss.Width(line); got != MinTerminalWidth {
			t.Errorf("line %d width = %d, want %d", i, got, MinTerminalWidth)
		}
	}
}

func TestRenderDeviceCard(t *testing.T) {
	card := RenderDeviceCard("Living Room TV", []Field{
		{Key: "Type", Value: "urn:schemas-upnp-org:device:MediaRenderer:1"},
		{Key: "Vendor", Value: ""},
		{Key: "USN", Value: "uuid:42"},
	})

	for _, want := range []string{"Living Room TV", "Type:", "USN:", "uuid:42"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
	if strings.Contains(card, "Vendor") {
		t.Errorf("card includes empty field:\n%s", card)
	}
}

func TestRenderDeviceCard_SkipsAllEmptyFields(t *testing.T) {
	card := RenderDeviceCard("bare", []Field{{Key: "Model", Value: ""}})

	if !strings.Contains(card, "bare") {
		t.Errorf("card missing name:\n%s", card)
	}
	if strings.Contains(card, "Model") {
		t.Errorf("card includes empty field:\n%s", card)
	}
}
