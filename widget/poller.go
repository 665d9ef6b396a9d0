package widget

import (
	"context"
	"time"
)

// Poller fetches a value every Interval on its own goroutine and hands it to
// Apply on the dispatch goroutine, through Post. Fetch may block; Apply must
// not.
type Poller[T any] struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) (T, error)
	Apply    func(T)
	Post     func(ctx context.Context, f func()) bool
	OnError  func(error)

	cancel context.CancelFunc
	done   chan struct{}
}

// Start begins polling. The first fetch happens immediately.
func (p *Poller[T]) Start(ctx context.Context) {
	if p.done != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *Poller[T]) run(ctx context.Context) {
	defer close(p.done)
	t := time.NewTicker(p.Interval)
	defer t.Stop()
	for {
		v, err := p.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if p.OnError != nil {
				p.OnError(err)
			}
		} else if !p.Post(ctx, func() { p.Apply(v) }) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Stop cancels polling and waits for the goroutine to exit. Stop must not be
// called while the dispatch goroutine is needed to drain Post, unless Post
// honours ctx cancellation.
func (p *Poller[T]) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}
