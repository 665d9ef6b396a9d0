package widget

import (
	"context"
	"image"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
)

// Mode is how the volume widget renders.
type Mode int

const (
	// ModeIcon paints an icon from theme_path.
	ModeIcon Mode = iota
	// ModeEmoji shows one of four glyphs and the level.
	ModeEmoji
	// ModeText shows the level.
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModeIcon:
		return "icon"
	case ModeEmoji:
		return "emoji"
	case ModeText:
		return "text"
	}
	return "unknown"
}

// Muted is the volume level reported for a muted channel.
const Muted = -1

const (
	MutedGlyph = "\U000f0581"
	MutedLabel = "muted"
)

// DefaultEmojiList replaces an emoji_list with fewer than four entries.
var DefaultEmojiList = []string{"\U0001f507", "\U0001f508", "\U0001f509", "\U0001f50a"}

// VolumeIcons are the icon names, without extension, looked up in theme_path.
var VolumeIcons = []string{
	"audio-volume-muted",
	"audio-volume-low",
	"audio-volume-medium",
	"audio-volume-high",
}

var iconRules = Rules[string]{
	{Match: AtMost(0), Out: "audio-volume-muted"},
	{Match: AtMost(30), Out: "audio-volume-low"},
	{Match: Below(80), Out: "audio-volume-medium"},
	{Match: Always, Out: "audio-volume-high"},
}

var emojiRules = Rules[int]{
	{Match: AtMost(10), Out: 0},
	{Match: AtMost(30), Out: 1},
	{Match: Below(50), Out: 2},
	{Match: Always, Out: 3},
}

// IconName is the theme icon for a volume level.
func IconName(volume int) string {
	name, _ := iconRules.Pick(volume)
	return name
}

// EmojiText is the emoji-mode display for a volume level. icons must have at
// least four entries.
func EmojiText(volume int, icons []string) string {
	if volume == Muted {
		return MutedGlyph + " " + MutedLabel
	}
	i, _ := emojiRules.Pick(volume)
	return icons[i] + " " + strconv.Itoa(volume) + "%"
}

// PlainText is the text-mode display for a volume level.
func PlainText(volume int) string {
	if volume == Muted {
		return MutedLabel
	}
	return strconv.Itoa(volume) + "%"
}

// VolumeSource reads the current volume level.
type VolumeSource interface {
	Volume(ctx context.Context) (int, error)
}

// Volume shows the audio volume. Its rendering mode is chosen by which
// options are set: theme_path takes precedence over emoji.
type Volume struct {
	Base
	src    VolumeSource
	volume int
	known  bool
	icons  map[string]image.Image

	poller  *Poller[int]
	watcher *themeWatcher
}

func NewVolume(opts Options, src VolumeSource) *Volume {
	return &Volume{
		Base: newBase("volume", opts),
		src:  src,
	}
}

// Mode reports the rendering mode selected by the options.
func (w *Volume) Mode() Mode {
	switch {
	case w.opts.ThemePath != "":
		return ModeIcon
	case w.opts.Emoji:
		return ModeEmoji
	}
	return ModeText
}

func (w *Volume) Level() int { return w.volume }

func (w *Volume) Mount(bar Bar, bus *hook.Bus) {
	w.mount(bar)
	if w.Mode() == ModeIcon {
		w.loadIcons()
		w.watcher = newThemeWatcher(w.opts.ThemePath, w.log)
		w.watcher.Start(func(ctx context.Context) {
			bar.Post(ctx, func() {
				if w.state == Unmounted {
					return
				}
				w.loadIcons()
				if w.known {
					w.update()
				}
			})
		})
	}
	if w.src == nil {
		return
	}
	w.poller = &Poller[int]{
		Interval: w.opts.interval(200 * time.Millisecond),
		Fetch:    w.src.Volume,
		Apply:    w.SetVolume,
		Post:     bar.Post,
		OnError: func(err error) {
			w.log.Debug("reading volume", zap.Error(err))
		},
	}
	w.poller.Start(context.Background())
}

func (w *Volume) Unmount() {
	w.Base.Unmount()
	if w.poller != nil {
		w.poller.Stop()
	}
	if w.watcher != nil {
		w.watcher.Stop()
	}
}

// SetVolume records a new level. The display is recomputed only when the
// level changes.
func (w *Volume) SetVolume(v int) {
	if !w.deliver() {
		return
	}
	if v < Muted {
		v = Muted
	} else if v > 100 {
		v = 100
	}
	if w.known && v == w.volume {
		return
	}
	w.volume, w.known = v, true
	w.update()
}

func (w *Volume) update() {
	switch w.Mode() {
	case ModeIcon:
		s := w.Surface()
		s.Clear(w.bg)
		s.Paint(w.icons[IconName(w.volume)])
	case ModeEmoji:
		if len(w.opts.EmojiList) < len(DefaultEmojiList) {
			w.opts.EmojiList = DefaultEmojiList
			w.log.Warn("Emoji list given has less than 4 items. Falling back to default emojis.")
		}
		w.SetText(EmojiText(w.volume, w.opts.EmojiList))
	default:
		w.SetText(PlainText(w.volume))
	}
	w.Redraw()
}

func (w *Volume) loadIcons() {
	icons, err := LoadIcons(w.opts.ThemePath, VolumeIcons)
	if err != nil {
		w.log.Warn("loading volume icons", zap.String("theme_path", w.opts.ThemePath), zap.Error(err))
	}
	w.icons = icons
}
