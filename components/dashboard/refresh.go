package dashboard

import (
	"context"
	"sync"
	"time"
)

// DefaultRefreshInterval is how often the analytics page perturbs its live
// metrics.
const DefaultRefreshInterval = 5 * time.Second

// RefreshTask runs a callback on a fixed interval until stopped. It is bound
// to the lifetime of the page view that started it.
type RefreshTask struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartRefreshTask launches the ticker goroutine. The task ends when Stop is
// called or parent is cancelled.
func StartRefreshTask(parent context.Context, interval time.Duration, tick func(now time.Time)) *RefreshTask {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	task := &RefreshTask{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go task.run(ctx, interval, tick)
	return task
}

func (t *RefreshTask) run(ctx context.Context, interval time.Duration, tick func(time.Time)) {
	defer close(t.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// a Stop racing the tick wins
			if ctx.Err() != nil {
				return
			}
			tick(now)
		}
	}
}

// Stop cancels the task and waits for its goroutine to exit. Safe to call more
// than once.
func (t *RefreshTask) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(t.cancel)
	<-t.done
}

// Done is closed once the goroutine has exited.
func (t *RefreshTask) Done() <-chan struct{} {
	return t.done
}
