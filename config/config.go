// Package config holds taobar's settings. The defaults live in Go source and
// can be overridden, key by key, from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taobar/taobar/widget"
)

// Config is the complete configuration.
type Config struct {
	// Commands started by key bindings.
	Terminal   []string `yaml:"terminal"`
	Launcher   []string `yaml:"launcher"`
	Screenshot []string `yaml:"screenshot"`
	Poweroff   []string `yaml:"poweroff"`
	// Scripts called with "up", "down" or "mute".
	VolumeScript     string `yaml:"volume_script"`
	BrightnessScript string `yaml:"brightness_script"`
	// Autostart is run once, when taobar first starts.
	Autostart string `yaml:"autostart"`

	Groups []string `yaml:"groups"`
	// Ratio is the main pane share of the monadtall layout.
	Ratio        float64 `yaml:"ratio"`
	BorderFocus  string  `yaml:"border_focus"`
	BorderNormal string  `yaml:"border_normal"`
	BorderWidth  int     `yaml:"border_width"`

	FollowMouseFocus bool    `yaml:"follow_mouse_focus"`
	FloatRules       []Match `yaml:"float_rules"`

	// IconTheme and Font are announced to clients over XSETTINGS.
	IconTheme string `yaml:"icon_theme"`

	// Wallpaper is a PNG drawn behind the windows of every screen.
	Wallpaper     string `yaml:"wallpaper"`
	WallpaperMode string `yaml:"wallpaper_mode"`
	// WMName is the window manager name announced to clients. Java toolkits
	// only draw correctly under names they know.
	WMName string `yaml:"wmname"`

	WidgetDefaults map[string]any `yaml:"widget_defaults"`
	Bar            Bar            `yaml:"bar"`
}

// Match selects windows by WM_CLASS instance or class, or by exact title.
type Match struct {
	WMClass string `yaml:"wm_class"`
	Title   string `yaml:"title"`
}

// Matches reports whether a window with the given classes and title matches.
func (m Match) Matches(classes []string, title string) bool {
	if m.Title != "" && m.Title == title {
		return true
	}
	if m.WMClass == "" {
		return false
	}
	for _, c := range classes {
		if c == m.WMClass {
			return true
		}
	}
	return false
}

type Bar struct {
	Height  int            `yaml:"height"`
	Widgets []WidgetConfig `yaml:"widgets"`
}

// WidgetConfig is one bar slot: a widget type and its options.
type WidgetConfig struct {
	Type    string         `yaml:"type"`
	Options map[string]any `yaml:",inline"`
}

func w(kind string, opts map[string]any) WidgetConfig {
	return WidgetConfig{Type: kind, Options: opts}
}

func sep() WidgetConfig {
	return w("textbox", map[string]any{"text": " | "})
}

// WallpaperStretch scales the wallpaper to each screen, ignoring its aspect
// ratio. It is the only mode.
const WallpaperStretch = "stretch"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Terminal:         []string{"st", "tmux"},
		Launcher:         []string{"dmenu_run"},
		Screenshot:       []string{"flameshot", "gui"},
		Poweroff:         []string{"systemctl", "poweroff"},
		VolumeScript:     "~/.config/taobar/scripts/volume.sh",
		BrightnessScript: "~/.config/taobar/scripts/brightness.sh",
		Autostart:        "~/.config/taobar/scripts/xorg_autostart.sh",

		Groups:       []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Ratio:        0.55,
		BorderFocus:  "#d2d9f8",
		BorderNormal: "#5e5f67",
		BorderWidth:  3,

		FollowMouseFocus: true,
		FloatRules: []Match{
			{WMClass: "confirmreset"},
			{WMClass: "makebranch"},
			{WMClass: "maketag"},
			{WMClass: "ssh-askpass"},
			{Title: "branchdialog"},
			{Title: "pinentry"},
		},

		IconTheme: "Tango",

		Wallpaper:     "~/pictures/groot-dark.png",
		WallpaperMode: WallpaperStretch,
		WMName:        "LG3D",

		WidgetDefaults: map[string]any{
			"font":       "JetBrainsMono Nerd Font ExtraBold",
			"fontsize":   16,
			"background": "#1a1b26",
			"foreground": "#d2d9f8",
			"padding":    0,
			"margin":     0,
		},
		Bar: Bar{
			Height: 26,
			Widgets: []WidgetConfig{
				w("groupbox", map[string]any{
					"active":    "#d2d9f8",
					"inactive":  "#5e5f67",
					"highlight": "#5e5f67",
					"padding":   10,
				}),
				w("currentlayout", map[string]any{"fmt": "{} "}),
				w("windowname", map[string]any{"max_chars": 70}),
				sep(),
				w("volume", map[string]any{"fmt": "VOL {}", "update_interval": 1}),
				sep(),
				w("memory", map[string]any{"format": "MEM {MemUsed:.0f}M", "update_interval": 2}),
				sep(),
				w("battery", map[string]any{"format": "BAT {percent:2.0%}"}),
				sep(),
				w("wlan", map[string]any{"format": "NET {essid}", "interface": "wlo1", "update_interval": 5}),
				sep(),
				w("clock", map[string]any{"format": "%H:%M", "update_interval": 30}),
				w("textbox", map[string]any{"text": " "}),
			},
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return ExpandHome("~/.config/taobar/config.yaml")
}

// Load returns the defaults overridden by the YAML file at path. A missing
// file is only an error when explicit is set.
func Load(path string, explicit bool) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return c, c.Validate()
	case err != nil:
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the parts of the configuration that the window manager
// would otherwise trip over at run time.
func (c *Config) Validate() error {
	if len(c.Groups) == 0 || len(c.Groups) > 9 {
		return fmt.Errorf("need between 1 and 9 groups, have %d", len(c.Groups))
	}
	seen := map[string]bool{}
	for _, g := range c.Groups {
		if seen[g] {
			return fmt.Errorf("duplicate group %q", g)
		}
		seen[g] = true
	}
	if c.Ratio <= 0 || c.Ratio >= 1 {
		return fmt.Errorf("ratio %v out of range (0, 1)", c.Ratio)
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("negative border_width %d", c.BorderWidth)
	}
	for _, col := range []string{c.BorderFocus, c.BorderNormal} {
		if _, err := widget.ParseColor(col); err != nil {
			return err
		}
	}
	if c.Bar.Height <= 0 {
		return fmt.Errorf("bar height %d must be positive", c.Bar.Height)
	}
	if len(c.Terminal) == 0 {
		return errors.New("no terminal command")
	}
	if c.WallpaperMode != WallpaperStretch {
		return fmt.Errorf("unknown wallpaper_mode %q", c.WallpaperMode)
	}
	for i, wc := range c.Bar.Widgets {
		if _, _, err := c.widgetOptions(wc); err != nil {
			return fmt.Errorf("bar widget %d (%s): %w", i, wc.Type, err)
		}
	}
	return nil
}

func (c *Config) widgetOptions(wc WidgetConfig) (widget.Options, []string, error) {
	if _, err := widget.New(wc.Type, widget.Options{}); err != nil {
		return widget.Options{}, nil, err
	}
	opts, unused, err := widget.DecodeOptions(c.WidgetDefaults, wc.Options)
	if err != nil {
		return widget.Options{}, nil, err
	}
	opts.ThemePath = ExpandHome(opts.ThemePath)
	return opts, unused, nil
}

// Widgets builds the bar widgets, in order. Unknown option keys are logged.
func (c *Config) Widgets(log *zap.Logger) ([]widget.Widget, error) {
	ws := make([]widget.Widget, 0, len(c.Bar.Widgets))
	for i, wc := range c.Bar.Widgets {
		opts, unused, err := c.widgetOptions(wc)
		if err != nil {
			return nil, fmt.Errorf("bar widget %d (%s): %w", i, wc.Type, err)
		}
		if len(unused) > 0 {
			log.Warn("ignoring unknown widget options", zap.String("widget", wc.Type), zap.Strings("keys", unused))
		}
		opts.Logger = log
		wgt, err := widget.New(wc.Type, opts)
		if err != nil {
			return nil, err
		}
		ws = append(ws, wgt)
	}
	return ws, nil
}

// Font is the font name from the widget defaults.
func (c *Config) Font() string {
	s, _ := c.WidgetDefaults["font"].(string)
	return s
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
