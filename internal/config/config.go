package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"imgsort/internal/errors"
	"imgsort/pkg/types"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "IMGSORT_CONFIG"

// Config represents the application configuration structure.
type Config struct {
	Directories Directories         `yaml:"directories"`
	Settings    Settings            `yaml:"settings"`
	Preview     Preview             `yaml:"preview"`
	Trash       Trash               `yaml:"trash"`
	Theme       Theme               `yaml:"theme"`
	Keys        map[string][]string `yaml:"keys"` // control name -> key names
}

// Directories holds the source folder and the three category destinations
type Directories struct {
	Source string `yaml:"source"` // Folder opened on start
	One    string `yaml:"one"`
	Two    string `yaml:"two"`
	Three  string `yaml:"three"`
}

// Settings tunes the sort engine
type Settings struct {
	KeepScanOrder    bool   `yaml:"keep_scan_order"`    // Strict FIFO instead of swap removal
	RequeueOnFailure bool   `yaml:"requeue_on_failure"` // Put the image back when a move/delete fails
	Remember         bool   `yaml:"remember"`           // Save chosen folders back to the config file
	Debug            bool   `yaml:"debug"`
	LogFormat        string `yaml:"log_format"` // text or json
}

// Preview is the viewport used when a shell cannot report its own size
type Preview struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Trash locates the trash directory; empty means the desktop default
type Trash struct {
	Dir string `yaml:"dir"`
}

// Theme holds the colors used by the terminal shell
type Theme struct {
	Name     string `yaml:"name"`
	Primary  string `yaml:"primary"`
	Success  string `yaml:"success"`
	Warning  string `yaml:"warning"`
	Error    string `yaml:"error"`
	Info     string `yaml:"info"`
	Emphasis string `yaml:"emphasis"`
	Border   string `yaml:"border"`
}

// DefaultPath returns $IMGSORT_CONFIG, else $XDG_CONFIG_HOME/imgsort/config.yaml,
// else ~/.config/imgsort/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "imgsort", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "imgsort", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.fillTheme()
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Decoding over the defaults keeps every field the file leaves unset.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Settings.KeepScanOrder = false
	cfg.Settings.RequeueOnFailure = true
	cfg.Settings.Remember = false
	cfg.Settings.LogFormat = "text"

	cfg.Preview.Width = 1000
	cfg.Preview.Height = 700

	cfg.Theme.Name = "default"
	cfg.Keys = DefaultKeys()

	return cfg
}

// DefaultKeys returns the default key names for every bindable control
func DefaultKeys() map[string][]string {
	return map[string][]string{
		types.ControlSortOne.String():    {"1"},
		types.ControlSortTwo.String():    {"2"},
		types.ControlSortThree.String():  {"3"},
		types.ControlDelete.String():     {"d", "delete"},
		types.ControlUndo.String():       {"u", "backspace"},
		types.ControlOpenFolder.String(): {"o"},
		types.ControlQuit.String():       {"q", "ctrl+c"},
	}
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if c.Preview.Width < 1 {
		return errors.NewConfigError("must be at least 1", "preview.width", errors.InvalidConfig, nil)
	}
	if c.Preview.Height < 1 {
		return errors.NewConfigError("must be at least 1", "preview.height", errors.InvalidConfig, nil)
	}

	switch c.Settings.LogFormat {
	case "", "text", "json":
	default:
		return errors.NewConfigError("log format must be text or json", "settings.log_format", errors.InvalidConfig, nil)
	}

	for name, keys := range c.Keys {
		if _, ok := types.ParseControl(name); !ok {
			return errors.NewConfigError("unknown control", "keys."+name, errors.InvalidConfig, nil)
		}
		for _, k := range keys {
			if k == "" {
				return errors.NewConfigError("empty key name", "keys."+name, errors.InvalidConfig, nil)
			}
		}
	}

	// One key cannot trigger two controls
	owner := make(map[string]string)
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, k := range c.Keys[name] {
			if prev, dup := owner[k]; dup {
				return errors.NewConfigError(fmt.Sprintf("key %q bound to both %s and %s", k, prev, name),
					"keys", errors.InvalidConfig, nil)
			}
			owner[k] = name
		}
	}

	return nil
}

// Destination returns the configured directory for slot s
func (c *Config) Destination(s types.Slot) string {
	switch s {
	case types.SlotOne:
		return c.Directories.One
	case types.SlotTwo:
		return c.Directories.Two
	case types.SlotThree:
		return c.Directories.Three
	}
	return ""
}

// SetDestination stores dir as the directory for slot s
func (c *Config) SetDestination(s types.Slot, dir string) {
	switch s {
	case types.SlotOne:
		c.Directories.One = dir
	case types.SlotTwo:
		c.Directories.Two = dir
	case types.SlotThree:
		c.Directories.Three = dir
	}
}

// KeysFor returns the key names bound to control
func (c *Config) KeysFor(control types.Control) []string {
	return c.Keys[control.String()]
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.fillTheme()
	return cfg
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	if name == "" {
		name = "default"
	}
	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// fillTheme fills colors the config leaves empty from its named theme
func (c *Config) fillTheme() {
	theme := GetTheme(c.Theme.Name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Success, "success")
	fill(&c.Theme.Warning, "warning")
	fill(&c.Theme.Error, "error")
	fill(&c.Theme.Info, "info")
	fill(&c.Theme.Emphasis, "emphasis")
	fill(&c.Theme.Border, "border")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
