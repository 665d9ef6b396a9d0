package main

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/widget"
)

var (
	previewLayout  string
	previewWindows int
	previewWait    time.Duration
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the bar widgets once to the terminal",
	Long: `Builds the configured widgets against a fake screen, lets their pollers
run for --wait, and prints the bar in the widgets' colours. No X server is
needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := cfg.Widgets(logger)
		if err != nil {
			return err
		}
		b := newPreviewBar(cfg.Groups, cfg.Bar.Height, previewLayout, previewWindows)
		b.run(cmd.Context(), ws, previewWait)
		fmt.Fprintln(cmd.OutOrStdout(), renderPreview(ws))
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewLayout, "layout", "monadtall", "layout of the shown group")
	previewCmd.Flags().IntVar(&previewWindows, "windows", 2, "number of windows in the shown group")
	previewCmd.Flags().DurationVar(&previewWait, "wait", 500*time.Millisecond, "how long to let widgets poll before rendering")
}

// previewBar hosts widgets without a window manager. Posted closures run
// on the goroutine that calls run.
type previewBar struct {
	screen *hook.StaticScreen
	groups []hook.Group
	height int
	queue  chan func()
}

func newPreviewBar(names []string, height int, layoutName string, windows int) *previewBar {
	b := &previewBar{
		screen: &hook.StaticScreen{},
		height: height,
		queue:  make(chan func()),
	}
	for i, name := range names {
		g := &hook.StaticGroup{GroupName: name, GroupLayout: hook.StaticLayout(layoutName), FocusIndex: -1}
		if i == 0 {
			for j := 0; j < windows; j++ {
				g.Clients = append(g.Clients, hook.StaticWindow(fmt.Sprintf("window %d", j+1)))
			}
			if windows > 0 {
				g.FocusIndex = 0
			}
			b.screen.Show(g)
		}
		b.groups = append(b.groups, g)
	}
	return b
}

func (b *previewBar) Screen() (hook.Screen, bool) { return b.screen, true }
func (b *previewBar) Groups() []hook.Group        { return b.groups }
func (b *previewBar) Height() int                 { return b.height }
func (b *previewBar) Draw()                       {}

func (b *previewBar) Post(ctx context.Context, f func()) bool {
	select {
	case b.queue <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

// run mounts ws, runs their posted updates for wait, and unmounts them.
func (b *previewBar) run(ctx context.Context, ws []widget.Widget, wait time.Duration) {
	bus := hook.NewBus()
	for _, w := range ws {
		w.Mount(b, bus)
	}
	bus.FireStartupOnce()

	timer := time.NewTimer(wait)
	defer timer.Stop()
loop:
	for {
		select {
		case f := <-b.queue:
			f()
		case <-timer.C:
			break loop
		case <-ctx.Done():
			break loop
		}
	}
	for _, w := range ws {
		w.Unmount()
	}
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderPreview renders each widget's spans in their colours. Image
// renderings, which a terminal cannot show, are drawn as a placeholder.
func renderPreview(ws []widget.Widget) string {
	var parts []string
	for _, w := range ws {
		r := w.Render()
		if r.Image != nil {
			parts = append(parts, lipgloss.NewStyle().Faint(true).Render("["+w.Name()+"]"))
			continue
		}
		for _, s := range r.Spans {
			st := lipgloss.NewStyle().
				Foreground(hexColor(s.Foreground)).
				Background(hexColor(s.Background))
			parts = append(parts, st.Render(s.Text))
		}
	}
	return strings.Join(parts, "")
}
