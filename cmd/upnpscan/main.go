// Upnpscan discovers UPnP devices on the local network.
//
// It multicasts SSDP searches from every local interface, fetches each
// responder's XML description document, and prints the resolved devices.
// A complementary mDNS browse, a live watch screen, and a small HTTP/
// websocket server are included for networks and workflows where a
// one-shot scan is not enough.
//
// Usage:
//
//	upnpscan [command] [flags]
//
// Running without arguments scans for all devices (ssdp:all).
// See 'upnpscan --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/ui"
	"github.com/mwhitley/upnpscan/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine formats a fatal error, styled when attached to a terminal.
func errorLine(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if ui.IsTerminal() {
		return ui.ErrorStyle.Render(msg)
	}
	return msg
}

var rootCmd = &cobra.Command{
	Use:   "upnpscan",
	Short: "UPnP/SSDP device scanner",
	Long: `A scanner for UPnP devices on the local network.

Multicasts SSDP search requests from every local interface, retrieves
each responder's description document, and prints the resolved devices.

If no command is specified, a full scan (ssdp:all) runs.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: full scan when no subcommand provided
		return runSearch(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("upnpscan %s\n", version.Full())
	},
}
