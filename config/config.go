package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DeviceConfig is a saved association between a MIDI port and a pedal.
// Once a port has been used with a profile, reconnecting it later should
// not require choosing the pedal type again.
type DeviceConfig struct {
	PortName    string `json:"portName"`
	ProfileType string `json:"profileType"`
	Channel     uint8  `json:"channel"`
	AutoConnect bool   `json:"autoConnect"`
}

// UIConfig stores session preferences
type UIConfig struct {
	LastDevice string `json:"lastDevice,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Devices    []DeviceConfig `json:"devices,omitempty"`
	LibraryDir string         `json:"libraryDir,omitempty"`
	UI         UIConfig       `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pedal-librarian"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LibraryPath returns the preset library directory, honoring an override
func (c *Config) LibraryPath() (string, error) {
	if c.LibraryDir != "" {
		return c.LibraryDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "library"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindDevice finds a saved device config by port name
func (c *Config) FindDevice(portName string) *DeviceConfig {
	for i := range c.Devices {
		if c.Devices[i].PortName == portName {
			return &c.Devices[i]
		}
	}
	return nil
}

// SavedProfile returns the profile type a port was last used with, or ""
func (c *Config) SavedProfile(portName string) string {
	if d := c.FindDevice(portName); d != nil {
		return d.ProfileType
	}
	return ""
}

// AddDevice adds or updates a saved device config
func (c *Config) AddDevice(dev DeviceConfig) {
	for i := range c.Devices {
		if c.Devices[i].PortName == dev.PortName {
			c.Devices[i] = dev
			return
		}
	}
	c.Devices = append(c.Devices, dev)
}

// AutoConnectDevices returns devices with autoConnect enabled
func (c *Config) AutoConnectDevices() []DeviceConfig {
	var result []DeviceConfig
	for _, dev := range c.Devices {
		if dev.AutoConnect {
			result = append(result, dev)
		}
	}
	return result
}
