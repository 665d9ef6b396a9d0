package widget

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadIcons decodes dir/<name>.png for each name. Icons that fail to load are
// left out of the map and reported in the joined error.
func LoadIcons(dir string, names []string) (map[string]image.Image, error) {
	icons := make(map[string]image.Image, len(names))
	var errs []error
	for _, name := range names {
		img, err := loadPNG(filepath.Join(dir, name+".png"))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		icons[name] = img
	}
	return icons, errors.Join(errs...)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// themeWatcher calls back when a PNG in an icon directory changes, so that
// icon themes can be edited without restarting.
type themeWatcher struct {
	dir string
	log *zap.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

func newThemeWatcher(dir string, log *zap.Logger) *themeWatcher {
	return &themeWatcher{dir: dir, log: log}
}

// Start watches the directory in a goroutine. Failing to watch is logged and
// leaves the theme static.
func (tw *themeWatcher) Start(changed func(ctx context.Context)) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.watcher != nil {
		return
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		tw.log.Warn("watching icon theme", zap.Error(err))
		return
	}
	if err := w.Add(tw.dir); err != nil {
		tw.log.Warn("watching icon theme", zap.String("dir", tw.dir), zap.Error(err))
		w.Close()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	tw.watcher, tw.cancel, tw.done = w, cancel, make(chan struct{})
	go tw.run(ctx, w, changed)
}

func (tw *themeWatcher) run(ctx context.Context, w *fsnotify.Watcher, changed func(ctx context.Context)) {
	defer close(tw.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".png") {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				changed(ctx)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			tw.log.Warn("icon theme watcher", zap.Error(err))
		}
	}
}

func (tw *themeWatcher) Stop() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.watcher == nil {
		return
	}
	tw.cancel()
	<-tw.done
	tw.watcher.Close()
	tw.watcher = nil
}
