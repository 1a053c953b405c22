package ssdp

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/logging"
)

// Required-header parse failures. A response missing one of these is
// skipped, never fatal to the search; the classified errors exist so
// callers and tests can assert why a response was rejected.
var (
	// ErrMissingUSN marks a response with no USN header, leaving nothing
	// to deduplicate on.
	ErrMissingUSN = errors.New("ssdp: response has no USN header")

	// ErrMissingLocation marks a response with no LOCATION header,
	// leaving no description document to fetch.
	ErrMissingLocation = errors.New("ssdp: response has no LOCATION header")
)

// Notification is one SSDP search response bound into named fields. The
// well-known headers get fields of their own; Headers carries every
// header verbatim under its lower-cased name.
type Notification struct {
	// USN is the Unique Service Name, the identity responses are
	// deduplicated on.
	USN string

	// Location is the URL of the device's description document.
	Location string

	// SearchTarget is the ST header echoed by the responder.
	SearchTarget string

	// Server is the responder's server identification string.
	Server string

	// Headers holds all response headers, keyed by lower-cased name.
	Headers map[string]string
}

// parseHeaders splits a raw response into a header map. Both CRLF and
// bare LF line endings are accepted; lines without a separator (the
// status line included) are ignored; a repeated header keeps its last
// value.
func parseHeaders(raw string) map[string]string {
	headers := make(map[string]string)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(parts[0]))
		headers[name] = strings.TrimSpace(parts[1])
	}

	return headers
}

// ParseNotification binds one raw response into a Notification. Header
// names match case-insensitively. A response missing USN or LOCATION is
// a parse failure for that response alone.
func ParseNotification(raw string) (Notification, error) {
	headers := parseHeaders(raw)

	n := Notification{
		USN:          headers["usn"],
		Location:     headers["location"],
		SearchTarget: headers["st"],
		Server:       headers["server"],
		Headers:      headers,
	}

	if n.USN == "" {
		return Notification{}, ErrMissingUSN
	}
	if n.Location == "" {
		return Notification{}, ErrMissingLocation
	}

	return n, nil
}

// DedupNotifications removes duplicate notifications by USN. The first
// occurrence wins and input order is preserved.
func DedupNotifications(notifications []Notification) []Notification {
	seen := make(map[string]struct{}, len(notifications))
	unique := make([]Notification, 0, len(notifications))

	for _, n := range notifications {
		if _, dup := seen[n.USN]; dup {
			continue
		}
		seen[n.USN] = struct{}{}
		unique = append(unique, n)
	}

	return unique
}

// ParseResponses parses every raw response, skipping malformed ones, and
// returns the deduplicated notifications in arrival order.
func ParseResponses(raws []string) []Notification {
	notifications := make([]Notification, 0, len(raws))

	for _, raw := range raws {
		n, err := ParseNotification(raw)
		if err != nil {
			logging.Debug("skipping malformed SSDP response", zap.Error(err))
			continue
		}
		notifications = append(notifications, n)
	}

	return DedupNotifications(notifications)
}
