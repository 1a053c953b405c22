package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwhitley/upnpscan/internal/description"
	"github.com/mwhitley/upnpscan/internal/discovery"
	"github.com/mwhitley/upnpscan/internal/ui"
)

// scanCompleteMsg carries the result of one background scan
type scanCompleteMsg struct {
	devices []*description.Device
}

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Rescan, k.Quit}}
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// deviceItem wraps a resolved Device for bubbles/list
type deviceItem struct {
	device *description.Device
}

// FilterValue implements list.Item
func (d deviceItem) FilterValue() string {
	return d.device.FriendlyName + " " + d.device.DeviceType + " " + d.device.USN
}

// Title returns the device name for list display
func (d deviceItem) Title() string {
	if d.device.FriendlyName != "" {
		return d.device.FriendlyName
	}
	return d.device.UDN
}

// Description returns device details for list display
func (d deviceItem) Description() string {
	return fmt.Sprintf("%s • %s", d.device.DeviceType, d.device.BaseURL)
}

// WatchModel is the live discovery screen: a spinner while a scan runs,
// then the resolved devices in a filterable list. Rescan re-runs the
// same search target.
type WatchModel struct {
	client       *discovery.Client
	searchTarget string

	scanning bool
	devices  list.Model
	spinner  spinner.Model
	help     help.Model
	keys     watchKeyMap
	width    int
	height   int
}

// NewWatchModel creates the watch screen for one search target
func NewWatchModel(client *discovery.Client, searchTarget string) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SpinnerStyle

	delegate := list.NewDefaultDelegate()
	devices := list.New(nil, delegate, 0, 0)
	devices.Title = "Discovered devices"
	devices.SetShowStatusBar(false)
	devices.SetShowHelp(false)

	return WatchModel{
		client:       client,
		searchTarget: searchTarget,
		scanning:     true,
		devices:      devices,
		spinner:      s,
		help:         help.New(),
		keys:         defaultWatchKeys(),
	}
}

// Init implements tea.Model
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startScan())
}

// startScan runs one full search in the background
func (m WatchModel) startScan() tea.Cmd {
	client, target := m.client, m.searchTarget
	return func() tea.Msg {
		var devices []*description.Device
		if target == "" {
			devices = client.SearchAll()
		} else {
			devices = client.Fetcher.FetchAll(client.SearchDevices(target))
		}
		return scanCompleteMsg{devices: devices}
	}
}

// Update implements tea.Model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.devices.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rescan):
			if m.scanning {
				return m, nil
			}
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.startScan())
		}

	case scanCompleteMsg:
		m.scanning = false
		items := make([]list.Item, 0, len(msg.devices))
		for _, d := range msg.devices {
			items = append(items, deviceItem{device: d})
		}
		return m, m.devices.SetItems(items)

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.devices, cmd = m.devices.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m WatchModel) View() string {
	target := m.searchTarget
	if target == "" {
		target = "ssdp:all"
	}

	header := ui.TitleStyle.Render("upnpscan watch") + "  " +
		ui.HintStyle.Render(target) + "\n\n"

	if m.scanning {
		return header + m.spinner.View() + " Scanning the network...\n\n" +
			m.help.View(m.keys)
	}

	if len(m.devices.Items()) == 0 {
		return header + ui.HintStyle.Render("No devices responded.") + "\n\n" +
			m.help.View(m.keys)
	}

	return header + m.devices.View() + "\n" + m.help.View(m.keys)
}

// Run starts the watch screen and blocks until the user quits
func Run(client *discovery.Client, searchTarget string) error {
	program := tea.NewProgram(NewWatchModel(client, searchTarget), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
