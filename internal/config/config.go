package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gifflet/scrcpy-connect/internal/logging"
	"github.com/gifflet/scrcpy-connect/pkg/connect"
)

// Chooser modes.
const (
	ChooserPrompt = "prompt"
	ChooserTUI    = "tui"
	ChooserAuto   = "auto"
)

// Config holds the application configuration
type Config struct {
	IP             string   `yaml:"ip"`
	ADB            string   `yaml:"adb"`
	Scrcpy         string   `yaml:"scrcpy"`
	Port           int      `yaml:"port"`
	Retries        int      `yaml:"retries"`
	LogLevel       string   `yaml:"log_level"`
	Interface      string   `yaml:"interface"`
	Chooser        string   `yaml:"chooser"`
	StopOnSuccess  bool     `yaml:"stop_on_success"`
	CommandTimeout Duration `yaml:"command_timeout"`
	ScrcpyArgs     []string `yaml:"scrcpy_args"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	if text == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("command_timeout: %w", err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ADB:       connect.DefaultBridgeProgram,
		Scrcpy:    connect.DefaultMirrorProgram,
		Port:      connect.DefaultPort,
		Retries:   connect.DefaultRetries,
		LogLevel:  logging.DefaultLevel,
		Interface: connect.DefaultInterface,
		Chooser:   ChooserPrompt,
	}
}

// configPath returns the path to the config file
func configPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "scrcpy-connect", "config.yaml")
}

// Load reads the configuration from path, or from the default location when
// path is empty. Only a missing default file falls back to defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults restores defaults for fields left empty in the file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.ADB == "" {
		c.ADB = def.ADB
	}
	if c.Scrcpy == "" {
		c.Scrcpy = def.Scrcpy
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Interface == "" {
		c.Interface = def.Interface
	}
	if c.Chooser == "" {
		c.Chooser = def.Chooser
	}
}

// Validate checks values that cannot be recovered from at run time.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Chooser {
	case ChooserPrompt, ChooserTUI, ChooserAuto:
	default:
		return fmt.Errorf("invalid chooser %q, expected %s, %s or %s", c.Chooser, ChooserPrompt, ChooserTUI, ChooserAuto)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative")
	}
	return nil
}

// Options converts the configuration into connector options.
func (c *Config) Options() connect.Options {
	return connect.Options{
		BridgeProgram:  c.ADB,
		MirrorProgram:  c.Scrcpy,
		Interface:      c.Interface,
		StopOnSuccess:  c.StopOnSuccess,
		CommandTimeout: time.Duration(c.CommandTimeout),
	}
}

// ConfigPath returns the path where the config file should be located
func ConfigPath() string {
	return configPath()
}
