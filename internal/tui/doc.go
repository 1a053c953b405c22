// Package tui implements the interactive watch screen: repeated SSDP
// scans rendered as a live, filterable device list.
package tui
