package widget

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Options is the static key-value configuration of a widget. Keys follow the
// names used in configuration files.
type Options struct {
	Font           string   `mapstructure:"font"`
	FontSize       int      `mapstructure:"fontsize"`
	Background     string   `mapstructure:"background"`
	Foreground     string   `mapstructure:"foreground"`
	Padding        int      `mapstructure:"padding"`
	Margin         int      `mapstructure:"margin"`
	Fmt            string   `mapstructure:"fmt"`
	Emoji          bool     `mapstructure:"emoji"`
	EmojiList      []string `mapstructure:"emoji_list"`
	ThemePath      string   `mapstructure:"theme_path"`
	UpdateInterval float64  `mapstructure:"update_interval"`

	Text      string `mapstructure:"text"`
	Format    string `mapstructure:"format"`
	MaxChars  int    `mapstructure:"max_chars"`
	Active    string `mapstructure:"active"`
	Inactive  string `mapstructure:"inactive"`
	Highlight string `mapstructure:"highlight"`

	Battery             string `mapstructure:"battery"`
	Interface           string `mapstructure:"interface"`
	DisconnectedMessage string `mapstructure:"disconnected_message"`

	Logger *zap.Logger `mapstructure:"-"`
}

const (
	defaultForeground = "#ffffff"
	defaultBackground = "#000000"
)

// DecodeOptions merges raw over defaults and decodes the result. Values are
// weakly typed, so "16" and 16 both decode into fontsize. Keys that no widget
// understands are returned in unused rather than failing the decode.
func DecodeOptions(defaults, raw map[string]any) (opts Options, unused []string, err error) {
	merged := make(map[string]any, len(defaults)+len(raw))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range raw {
		merged[k] = v
	}

	opts = Options{Fmt: "{}"}
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, nil, err
	}
	if err := dec.Decode(merged); err != nil {
		return Options{}, nil, fmt.Errorf("decoding widget options: %w", err)
	}
	for _, c := range []struct{ key, val string }{
		{"background", opts.Background},
		{"foreground", opts.Foreground},
		{"active", opts.Active},
		{"inactive", opts.Inactive},
		{"highlight", opts.Highlight},
	} {
		if c.val == "" {
			continue
		}
		if _, err := ParseColor(c.val); err != nil {
			return Options{}, nil, fmt.Errorf("option %s: %w", c.key, err)
		}
	}
	if opts.UpdateInterval < 0 {
		return Options{}, nil, fmt.Errorf("option update_interval: negative value %v", opts.UpdateInterval)
	}
	sort.Strings(md.Unused)
	return opts, md.Unused, nil
}

// ParseColor parses a "#rrggbb" colour.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// mustColor parses s, falling back to def. Options are validated by
// DecodeOptions, so the fallback only covers options built by hand.
func mustColor(s, def string) color.RGBA {
	if s == "" {
		s = def
	}
	c, err := ParseColor(s)
	if err != nil {
		c, _ = ParseColor(def)
	}
	return c
}

func (o Options) colors() (fg, bg color.RGBA) {
	return mustColor(o.Foreground, defaultForeground), mustColor(o.Background, defaultBackground)
}

// interval returns update_interval as a duration, or def when unset.
func (o Options) interval(def time.Duration) time.Duration {
	if o.UpdateInterval <= 0 {
		return def
	}
	return time.Duration(o.UpdateInterval * float64(time.Second))
}
