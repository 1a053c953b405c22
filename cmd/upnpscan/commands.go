package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhitley/upnpscan/internal/config"
	"github.com/mwhitley/upnpscan/internal/description"
	"github.com/mwhitley/upnpscan/internal/discovery"
	"github.com/mwhitley/upnpscan/internal/mdns"
	"github.com/mwhitley/upnpscan/internal/server"
	"github.com/mwhitley/upnpscan/internal/ssdp"
	"github.com/mwhitley/upnpscan/internal/tui"
	"github.com/mwhitley/upnpscan/internal/ui"
)

// Command flags
var (
	searchTarget  string
	deviceType    string
	deviceVersion int
	outputFormat  string
	rawOutput     bool
	windowMS      int
	mdnsService   string
	mdnsTimeout   int
	serveHost     string
	servePort     int
	serveLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(mdnsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

// newClient builds a discovery client from the preferences file, with
// flag overrides applied on top.
func newClient() (*discovery.Client, error) {
	prefs, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	client := discovery.NewClient()
	client.Searcher.SendCount = prefs.SendCount
	client.Searcher.MX = prefs.MX
	client.Searcher.Window = time.Duration(prefs.SearchWindowMS) * time.Millisecond
	client.Fetcher.HTTPClient.Timeout = time.Duration(prefs.HTTPTimeoutSeconds) * time.Second

	if windowMS > 0 {
		client.Searcher.Window = time.Duration(windowMS) * time.Millisecond
	}
	if searchTarget == "" {
		searchTarget = prefs.DefaultSearchTarget
	}

	return client, nil
}

// searchCmd runs one SSDP scan
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Scan for UPnP devices on the network",
	Long: `Scan for UPnP devices using SSDP multicast search.

The search request is multicast from every local interface address; all
responses arriving within the reception window are parsed, deduplicated
by USN, and resolved into device records via each device's description
document.`,
	Example: `  # Discover everything (ssdp:all)
  upnpscan search

  # Search for media servers
  upnpscan search --type MediaServer

  # Arbitrary search target, longer window
  upnpscan search --st urn:schemas-upnp-org:device:InternetGatewayDevice:1 --window 5000

  # Raw notifications without descriptor resolution
  upnpscan search --raw`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTarget, "st", "", "Search target (default from config, usually ssdp:all)")
	searchCmd.Flags().StringVar(&deviceType, "type", "", "Device type shorthand (expands to urn:schemas-upnp-org:device:<type>:<version>)")
	searchCmd.Flags().IntVar(&deviceVersion, "device-version", 1, "Device URN version used with --type")
	searchCmd.Flags().IntVar(&windowMS, "window", 0, "Reception window in milliseconds")
	searchCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print deduplicated notifications without fetching descriptors")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	target := searchTarget
	if deviceType != "" {
		target = ssdp.DeviceSearchTarget(deviceType, deviceVersion)
	}
	if target == "" {
		target = ssdp.AllDevices
	}

	fmt.Printf("Searching for %s ...\n\n", target)

	notifications := client.SearchDevices(target)

	if rawOutput {
		return printNotifications(notifications)
	}

	devices := client.Fetcher.FetchAll(notifications)
	return printDevices(devices)
}

// describeCmd fetches a single description document directly
var describeCmd = &cobra.Command{
	Use:   "describe <location-url>",
	Short: "Fetch and print one device description document",
	Long: `Fetch a device description document by its location URL and print
the bound device record. Useful for inspecting a device found earlier
with 'search --raw'.`,
	Example: `  upnpscan describe http://192.168.1.50:8200/rootDesc.xml`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		device, err := client.Fetcher.Fetch(ssdp.Notification{Location: args[0]})
		if err != nil {
			return fmt.Errorf("failed to resolve descriptor: %w", err)
		}

		return printDevices([]*description.Device{device})
	},
}

// mdnsCmd browses DNS-SD services
var mdnsCmd = &cobra.Command{
	Use:   "mdns",
	Short: "Browse mDNS/DNS-SD services on the network",
	Long: `Browse for mDNS/DNS-SD service advertisements.

Some devices only announce themselves over multicast DNS; this command
complements the SSDP search for such networks.`,
	Example: `  # Browse HTTP services (default)
  upnpscan mdns

  # Browse a specific service type
  upnpscan mdns --service _printer._tcp --timeout 5`,
	RunE: runMDNS,
}

func init() {
	mdnsCmd.Flags().StringVar(&mdnsService, "service", "", "DNS-SD service type (default _http._tcp)")
	mdnsCmd.Flags().IntVar(&mdnsTimeout, "timeout", 0, "Browse timeout in seconds")
}

func runMDNS(cmd *cobra.Command, args []string) error {
	prefs, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if mdnsTimeout <= 0 {
		mdnsTimeout = prefs.MDNSTimeoutSeconds
	}

	fmt.Printf("Browsing mDNS services (timeout: %ds)...\n\n", mdnsTimeout)

	services, err := mdns.Scan(mdnsService, time.Duration(mdnsTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("mDNS browse failed: %w", err)
	}

	if len(services) == 0 {
		fmt.Println("No services found.")
		return nil
	}

	if outputFormat == "json" {
		return printJSON(services)
	}

	for i, svc := range services {
		fmt.Printf("%d. %s\n", i+1, svc.Instance)
		fmt.Printf("   Host:     %s\n", svc.Hostname)
		fmt.Printf("   Address:  %s:%d\n", svc.IP, svc.Port)
		if len(svc.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", svc.Metadata)
		}
		fmt.Println()
	}

	return nil
}

// watchCmd runs the interactive watch screen
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the network interactively",
	Long: `Launch an interactive screen that scans the network and lists the
resolved devices, with rescan on demand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsTerminal() {
			return fmt.Errorf("watch requires an interactive terminal")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		return tui.Run(client, searchTarget)
	},
}

func init() {
	watchCmd.Flags().StringVar(&searchTarget, "st", "", "Search target (default ssdp:all)")
}

// serveCmd runs the HTTP/websocket server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scan results over HTTP and websocket",
	Long: `Run an HTTP server exposing discovery to dashboards and scripts.

GET /api/devices?st=<target> runs a scan and returns JSON; GET /ws
streams scan events over a websocket.`,
	Example: `  upnpscan serve --host 0.0.0.0 --port 8089`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		srv, err := server.New(&server.Config{
			Host:     serveHost,
			Port:     servePort,
			LogLevel: serveLogLevel,
		}, client)
		if err != nil {
			return err
		}

		fmt.Printf("Serving on http://%s:%d (Ctrl-C to stop)\n", serveHost, servePort)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Listen address")
	serveCmd.Flags().IntVar(&servePort, "port", 8089, "Listen port")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printNotifications(notifications []ssdp.Notification) error {
	if len(notifications) == 0 {
		printEmptyHints()
		return nil
	}

	if outputFormat == "json" {
		return printJSON(notifications)
	}

	fmt.Printf("Found %d notification(s):\n\n", len(notifications))
	for i, n := range notifications {
		fmt.Printf("%d. %s\n", i+1, n.USN)
		fmt.Printf("   Location: %s\n", n.Location)
		if n.Server != "" {
			fmt.Printf("   Server:   %s\n", n.Server)
		}
		fmt.Println()
	}

	return nil
}

func printDevices(devices []*description.Device) error {
	if len(devices) == 0 {
		printEmptyHints()
		return nil
	}

	if outputFormat == "json" {
		return printJSON(devices)
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	styled := ui.IsTerminal()
	for i, device := range devices {
		name := device.FriendlyName
		if name == "" {
			name = device.UDN
		}

		if styled {
			fmt.Println(ui.RenderDeviceCard(name, []ui.Field{
				{Key: "Type", Value: device.DeviceType},
				{Key: "Base URL", Value: device.BaseURL},
				{Key: "Vendor", Value: device.Manufacturer},
				{Key: "Model", Value: device.ModelName},
				{Key: "USN", Value: device.USN},
			}))
			continue
		}

		fmt.Printf("%d. %s\n", i+1, name)
		fmt.Printf("   Type:     %s\n", device.DeviceType)
		fmt.Printf("   Base URL: %s\n", device.BaseURL)
		if device.Manufacturer != "" {
			fmt.Printf("   Vendor:   %s\n", device.Manufacturer)
		}
		if device.ModelName != "" {
			fmt.Printf("   Model:    %s\n", device.ModelName)
		}
		fmt.Printf("   USN:      %s\n", device.USN)
		fmt.Println()
	}

	return nil
}

func printEmptyHints() {
	fmt.Println("No devices found.")
	fmt.Println("\nTroubleshooting:")
	fmt.Println("  - Ensure you are on the same network segment as the devices")
	fmt.Println("  - Check that your firewall allows UDP port 1900")
	fmt.Println("  - Try increasing --window for slow responders")
	fmt.Println("  - Some devices only announce over mDNS; try 'upnpscan mdns'")
}
