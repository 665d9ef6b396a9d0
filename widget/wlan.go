package widget

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
)

// maxLinkQuality is the top of the link quality scale most drivers report in
// /proc/net/wireless.
const maxLinkQuality = 70

// WlanStatus is one reading of a wireless interface. Connected is false when
// the interface is missing from /proc/net/wireless.
type WlanStatus struct {
	Interface string
	Connected bool
	Quality   int
	Level     int // dBm
	ESSID     string
}

// LinkQuality reads the wireless statistics of iface from the proc
// filesystem mounted at root.
func LinkQuality(root, iface string) (WlanStatus, error) {
	fs, err := procfs.NewFS(root)
	if err != nil {
		return WlanStatus{}, err
	}
	ws, err := fs.Wireless()
	if err != nil {
		return WlanStatus{}, err
	}
	return findInterface(ws, iface), nil
}

func findInterface(ws []*procfs.Wireless, iface string) WlanStatus {
	for _, w := range ws {
		if w.Name == iface {
			return WlanStatus{Interface: iface, Connected: true, Quality: w.QualityLink, Level: w.QualityLevel}
		}
	}
	return WlanStatus{Interface: iface}
}

// ESSID asks iwgetid(8) for the network iface is associated with.
func ESSID(ctx context.Context, iface string) (string, error) {
	out, err := exec.CommandContext(ctx, "iwgetid", "-r", iface).Output()
	if err != nil {
		return "", fmt.Errorf("iwgetid: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Percent is the link quality as a ratio of maxLinkQuality.
func (s WlanStatus) Percent() float64 {
	return min(max(float64(s.Quality)/maxLinkQuality, 0), 1)
}

// Format expands {essid}, {quality}, {level} and {percent}. percent takes the
// percentage form, as in "{percent:2.0%}".
func (s WlanStatus) Format(tmpl string) string {
	return expandFields(tmpl, map[string]field{
		"essid":   {text: s.ESSID},
		"quality": {text: strconv.Itoa(s.Quality)},
		"level":   {text: strconv.Itoa(s.Level)},
		"percent": {text: fmt.Sprintf("%.0f%%", s.Percent()*100), ratio: s.Percent()},
	})
}

// Wlan shows the network and link quality of a wireless interface.
type Wlan struct {
	Base
	proc   string
	essid  func(ctx context.Context, iface string) (string, error)
	poller *Poller[WlanStatus]
}

func NewWlan(opts Options) *Wlan {
	if opts.Format == "" {
		opts.Format = "{essid} {percent:2.0%}"
	}
	if opts.Interface == "" {
		opts.Interface = "wlan0"
	}
	if opts.DisconnectedMessage == "" {
		opts.DisconnectedMessage = "Disconnected"
	}
	return &Wlan{Base: newBase("wlan", opts), proc: procfs.DefaultMountPoint, essid: ESSID}
}

func (w *Wlan) Mount(bar Bar, _ *hook.Bus) {
	w.mount(bar)
	w.poller = &Poller[WlanStatus]{
		Interval: w.opts.interval(time.Second),
		Fetch:    w.fetch,
		Apply:    w.Show,
		Post:     bar.Post,
		OnError: func(err error) {
			w.log.Debug("reading wireless status", zap.String("interface", w.opts.Interface), zap.Error(err))
		},
	}
	w.poller.Start(context.Background())
}

func (w *Wlan) fetch(ctx context.Context) (WlanStatus, error) {
	s, err := LinkQuality(w.proc, w.opts.Interface)
	if err != nil || !s.Connected {
		return s, err
	}
	essid, err := w.essid(ctx, w.opts.Interface)
	if errors.Is(err, context.Canceled) {
		return s, err
	}
	if err != nil {
		w.log.Debug("reading essid", zap.Error(err))
	}
	s.ESSID = essid
	return s, nil
}

// Show redisplays the widget for s.
func (w *Wlan) Show(s WlanStatus) {
	if !w.deliver() {
		return
	}
	text := w.opts.DisconnectedMessage
	if s.Connected {
		text = s.Format(w.opts.Format)
	}
	if Format(w.opts.Fmt, text) == w.text {
		return
	}
	w.SetText(text)
	w.Redraw()
}

func (w *Wlan) Unmount() {
	w.Base.Unmount()
	if w.poller != nil {
		w.poller.Stop()
	}
}
