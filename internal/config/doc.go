// Package config loads and stores user preferences for scan behavior:
// reception window, send count, advertised MX, HTTP timeout, and the
// default search target. Preferences live in a YAML file under the
// platform config directory; a missing file means stock defaults.
package config
