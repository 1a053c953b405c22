package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "upnpscan"
	configFile = "config.yaml"
)

// Preferences holds the user-tunable scan parameters. The defaults
// reproduce the protocol's fixed behavior (three sends, a three-second
// window, MX 3); the file only exists to override them.
type Preferences struct {
	// SearchWindowMS is the per-interface reception window in milliseconds
	SearchWindowMS int `yaml:"search_window_ms"`

	// SendCount is the number of M-SEARCH transmissions per interface
	SendCount int `yaml:"send_count"`

	// MX is the maximum wait time (seconds) advertised to responders
	MX int `yaml:"mx"`

	// HTTPTimeoutSeconds is the timeout for one descriptor fetch
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`

	// DefaultSearchTarget is the ST used when no target is given
	DefaultSearchTarget string `yaml:"default_search_target,omitempty"`

	// MDNSTimeoutSeconds is the mDNS browse timeout
	MDNSTimeoutSeconds int `yaml:"mdns_timeout_seconds"`
}

// DefaultPreferences returns the stock scan parameters.
func DefaultPreferences() *Preferences {
	return &Preferences{
		SearchWindowMS:      3000,
		SendCount:           3,
		MX:                  3,
		HTTPTimeoutSeconds:  10,
		DefaultSearchTarget: "ssdp:all",
		MDNSTimeoutSeconds:  10,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application:
//   - Linux: $XDG_CONFIG_HOME/upnpscan or $HOME/.config/upnpscan
//   - macOS: $HOME/.config/upnpscan (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\upnpscan
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// macOS, Linux and other Unix-like systems
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the preferences file, returning defaults when it does not
// exist. Values absent from the file keep their defaults, so a file that
// only sets search_window_ms does what the user expects.
func Load() (*Preferences, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads preferences from an explicit path.
func LoadFrom(path string) (*Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	prefs.fillZeroes()
	return prefs, nil
}

// Save writes the preferences to the default config path, creating the
// directory if needed.
func (p *Preferences) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return p.SaveTo(configPath)
}

// SaveTo writes the preferences to an explicit path.
func (p *Preferences) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fillZeroes restores defaults for fields the file left unset. An
// explicit zero is indistinguishable from absence with plain yaml
// scalars; zero is never a useful value for any of these, so defaults
// win.
func (p *Preferences) fillZeroes() {
	defaults := DefaultPreferences()

	if p.SearchWindowMS <= 0 {
		p.SearchWindowMS = defaults.SearchWindowMS
	}
	if p.SendCount <= 0 {
		p.SendCount = defaults.SendCount
	}
	if p.MX <= 0 {
		p.MX = defaults.MX
	}
	if p.HTTPTimeoutSeconds <= 0 {
		p.HTTPTimeoutSeconds = defaults.HTTPTimeoutSeconds
	}
	if p.DefaultSearchTarget == "" {
		p.DefaultSearchTarget = defaults.DefaultSearchTarget
	}
	if p.MDNSTimeoutSeconds <= 0 {
		p.MDNSTimeoutSeconds = defaults.MDNSTimeoutSeconds
	}
}
