package config

import (
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"folderpick/internal/errors"

	"gopkg.in/yaml.v3"
)

// Endpoints lists the backend routes. Picker entries are path prefixes;
// "/files" and "/colors" are appended to them.
type Endpoints struct {
	List         string `yaml:"list"`          // Directory listing for the panel
	ResolveIndex string `yaml:"resolve_index"` // Path to index resolution
	Thumbnail    string `yaml:"thumbnail"`     // Scaled preview image
	View         string `yaml:"view"`          // Raw file bytes
	LastPath     string `yaml:"last_path"`     // Last browsed directory
	OpenExplorer string `yaml:"open_explorer"` // Reveal in OS file manager
	ListDir      string `yaml:"list_dir"`      // Flat listing for the simple file picker
	HexPicker    string `yaml:"hex_picker"`    // Hex palette prefix
	RVBPicker    string `yaml:"rvb_picker"`    // RVB palette prefix
	Fonts        string `yaml:"fonts"`         // Font list for the text maker
}

// ExtensionConfig overrides how one extension attaches to nodes
type ExtensionConfig struct {
	Disabled   bool     `yaml:"disabled"`   // Skip the extension entirely
	Names      []string `yaml:"names"`      // Node name globs, replaces the built-in ones
	Categories []string `yaml:"categories"` // Node category globs
}

// Config represents the application configuration structure.
type Config struct {
	Backend struct {
		URL       string    `yaml:"url"` // Base URL of the node host backend
		Endpoints Endpoints `yaml:"endpoints"`
	} `yaml:"backend"`
	Panel struct {
		DefaultView      string        `yaml:"default_view"`       // grid or list
		TypeAheadTimeout time.Duration `yaml:"type_ahead_timeout"` // Buffer clears after this much idle time
		DoubleClick      time.Duration `yaml:"double_click"`       // Max gap between clicks of a double-click
		Thumbnails       bool          `yaml:"thumbnails"`         // Render image previews in cards
		CardWidth        int           `yaml:"card_width"`         // Grid card width in cells
		CardHeight       int           `yaml:"card_height"`        // Grid card height in rows
		ThumbCacheTTL    time.Duration `yaml:"thumb_cache_ttl"`    // How long rendered thumbnails are kept
	} `yaml:"panel"`
	Preview struct {
		Player []string `yaml:"player"` // Command for video/audio, the file URL is appended
		Opener []string `yaml:"opener"` // Command for other files, empty uses the platform default
	} `yaml:"preview"`
	Extensions map[string]ExtensionConfig `yaml:"extensions"`
	Theme      struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for headers and focus
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Selected card highlight
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
	Logging struct {
		File  string `yaml:"file"`  // Log file used while the TUI is running
		Level string `yaml:"level"` // debug, info, warn or error
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/folderpick/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "folderpick", "config.yaml"), nil
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
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Decoding over the defaults leaves keys absent from the file untouched
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	// A named theme supplies the palette; colors set explicitly in the
	// file still win, so decode once more on top of it.
	if cfg.Theme.Name != "default" {
		cfg.ApplyTheme(cfg.Theme.Name)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Backend.URL = "http://127.0.0.1:8188"
	cfg.Backend.Endpoints = Endpoints{
		List:         "/folder_file_pro/list",
		ResolveIndex: "/folder_file_pro/resolve_index",
		Thumbnail:    "/folder_file_pro/thumbnail",
		View:         "/folder_file_pro/view",
		LastPath:     "/folder_file_pro/get_last_path",
		OpenExplorer: "/folder_file_pro/open_explorer",
		ListDir:      "/dao_master/list_dir",
		HexPicker:    "/dao/hex_picker",
		RVBPicker:    "/dao/rvb_picker",
		Fonts:        "/dao/text/fonts",
	}

	cfg.Panel.DefaultView = "grid"
	cfg.Panel.TypeAheadTimeout = 800 * time.Millisecond
	cfg.Panel.DoubleClick = 400 * time.Millisecond
	cfg.Panel.Thumbnails = true
	cfg.Panel.CardWidth = 18
	cfg.Panel.CardHeight = 8
	cfg.Panel.ThumbCacheTTL = 10 * time.Minute

	cfg.Preview.Player = []string{"ffplay", "-autoexit", "-loglevel", "quiet"}

	cfg.Extensions = map[string]ExtensionConfig{}

	cfg.ApplyTheme("default")

	cfg.Logging.Level = "info"
	if cache, err := os.UserCacheDir(); err == nil {
		cfg.Logging.File = filepath.Join(cache, "folderpick", "folderpick.log")
	}

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

func invalid(param, msg string) error {
	return errors.NewConfigError(msg, param, errors.InvalidConfig, nil)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return invalid("", "nil config")
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("backend.url", "backend url must be an absolute http(s) URL")
	}

	endpoints := map[string]string{
		"list":          c.Backend.Endpoints.List,
		"resolve_index": c.Backend.Endpoints.ResolveIndex,
		"thumbnail":     c.Backend.Endpoints.Thumbnail,
		"view":          c.Backend.Endpoints.View,
		"last_path":     c.Backend.Endpoints.LastPath,
		"open_explorer": c.Backend.Endpoints.OpenExplorer,
		"list_dir":      c.Backend.Endpoints.ListDir,
		"hex_picker":    c.Backend.Endpoints.HexPicker,
		"rvb_picker":    c.Backend.Endpoints.RVBPicker,
		"fonts":         c.Backend.Endpoints.Fonts,
	}
	for name, path := range endpoints {
		if path == "" || path[0] != '/' {
			return invalid("backend.endpoints."+name, "endpoint must start with /")
		}
	}

	if c.Panel.DefaultView != "grid" && c.Panel.DefaultView != "list" {
		return invalid("panel.default_view", "view must be grid or list")
	}
	if c.Panel.TypeAheadTimeout <= 0 {
		return invalid("panel.type_ahead_timeout", "timeout must be positive")
	}
	if c.Panel.DoubleClick <= 0 {
		return invalid("panel.double_click", "double-click window must be positive")
	}
	if c.Panel.CardWidth < 8 || c.Panel.CardHeight < 3 {
		return invalid("panel.card_width", "cards must be at least 8x3 cells")
	}

	for name, ext := range c.Extensions {
		if name == "" {
			return invalid("extensions", "extension name cannot be empty")
		}
		for _, pattern := range append(append([]string{}, ext.Names...), ext.Categories...) {
			if pattern == "" {
				return invalid("extensions."+name, "match pattern cannot be empty")
			}
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("logging.level", "unknown log level "+c.Logging.Level)
	}

	return nil
}

// Extension returns the overrides for the named extension
func (c *Config) Extension(name string) ExtensionConfig {
	if c.Extensions == nil {
		return ExtensionConfig{}
	}
	return c.Extensions[name]
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig(backendURL string) *Config {
	cfg := defaultConfig()
	cfg.Backend.URL = backendURL
	cfg.Panel.Thumbnails = false
	cfg.Preview.Player = nil
	cfg.Logging.File = ""
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "240", // Grey
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"border":   "236",
	},
	"light": {
		"primary":  "135",
		"success":  "150",
		"warning":  "222",
		"error":    "210",
		"info":     "117",
		"emphasis": "219",
		"border":   "250",
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
	"ocean": {
		"primary":  "31",
		"success":  "36",
		"warning":  "220",
		"error":    "196",
		"info":     "33",
		"emphasis": "51",
		"border":   "24",
	},
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns the available theme names, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
