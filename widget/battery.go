package widget

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/procfs/sysfs"
	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
)

// BatteryStatus is one reading of a power supply of type Battery.
type BatteryStatus struct {
	Name    string
	Percent float64 // 0 to 1
	Status  string  // Charging, Discharging, Full, Not charging or Unknown
}

var errNoBattery = errors.New("no battery")

// ReadBattery reads the named battery, or the first one found when name is
// empty, from the sysfs filesystem mounted at root.
func ReadBattery(root, name string) (BatteryStatus, error) {
	fs, err := sysfs.NewFS(root)
	if err != nil {
		return BatteryStatus{}, err
	}
	psc, err := fs.PowerSupplyClass()
	if err != nil {
		return BatteryStatus{}, err
	}
	return pickBattery(psc, name)
}

func pickBattery(psc sysfs.PowerSupplyClass, name string) (BatteryStatus, error) {
	names := make([]string, 0, len(psc))
	for n, ps := range psc {
		if ps.Type == "Battery" && (name == "" || n == name) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		if name != "" {
			return BatteryStatus{}, fmt.Errorf("%w %q", errNoBattery, name)
		}
		return BatteryStatus{}, errNoBattery
	}
	sort.Strings(names)
	ps := psc[names[0]]
	b := BatteryStatus{Name: ps.Name, Status: strings.TrimSpace(ps.Status)}
	switch {
	case ps.Capacity != nil:
		b.Percent = float64(*ps.Capacity) / 100
	case ps.EnergyNow != nil && ps.EnergyFull != nil && *ps.EnergyFull > 0:
		b.Percent = float64(*ps.EnergyNow) / float64(*ps.EnergyFull)
	case ps.ChargeNow != nil && ps.ChargeFull != nil && *ps.ChargeFull > 0:
		b.Percent = float64(*ps.ChargeNow) / float64(*ps.ChargeFull)
	default:
		return BatteryStatus{}, fmt.Errorf("battery %s reports no charge level", ps.Name)
	}
	b.Percent = min(max(b.Percent, 0), 1)
	return b, nil
}

// Char is the one-character summary of the battery status.
func (b BatteryStatus) Char() string {
	switch b.Status {
	case "Charging":
		return "^"
	case "Discharging":
		return "V"
	case "Full", "Not charging":
		return "="
	}
	if b.Percent == 0 {
		return "x"
	}
	return "?"
}

// Format expands {percent}, {status} and {char}. percent takes the
// percentage form, as in "{percent:2.0%}".
func (b BatteryStatus) Format(tmpl string) string {
	pct := field{text: fmt.Sprintf("%.0f%%", b.Percent*100), ratio: b.Percent}
	return expandFields(tmpl, map[string]field{
		"percent": pct,
		"status":  {text: b.Status},
		"char":    {text: b.Char()},
	})
}

// Battery shows the charge of a battery from /sys/class/power_supply.
type Battery struct {
	Base
	sys    string
	poller *Poller[BatteryStatus]
}

func NewBattery(opts Options) *Battery {
	if opts.Format == "" {
		opts.Format = "{char} {percent:2.0%}"
	}
	return &Battery{Base: newBase("battery", opts), sys: sysfs.DefaultMountPoint}
}

func (w *Battery) Mount(bar Bar, _ *hook.Bus) {
	w.mount(bar)
	w.poller = &Poller[BatteryStatus]{
		Interval: w.opts.interval(60 * time.Second),
		Fetch: func(context.Context) (BatteryStatus, error) {
			return ReadBattery(w.sys, w.opts.Battery)
		},
		Apply: w.Show,
		Post:  bar.Post,
		OnError: func(err error) {
			w.log.Debug("reading battery", zap.Error(err))
		},
	}
	w.poller.Start(context.Background())
}

// Show redisplays the widget for b.
func (w *Battery) Show(b BatteryStatus) {
	if !w.deliver() {
		return
	}
	text := b.Format(w.opts.Format)
	if Format(w.opts.Fmt, text) == w.text {
		return
	}
	w.SetText(text)
	w.Redraw()
}

func (w *Battery) Unmount() {
	w.Base.Unmount()
	if w.poller != nil {
		w.poller.Stop()
	}
}
