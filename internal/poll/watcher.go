// Package poll keeps a low-frequency background check for game completion.
// Reads are advisory: errors are swallowed, and only a confirmed
// active->inactive edge is ever reported, exactly once per session.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// DefaultInterval is the polling period for game-state checks
const DefaultInterval = 15 * time.Second

// StatusSource fetches the global game status
type StatusSource interface {
	GetGameState(ctx context.Context) (*model.GameStatus, error)
}

// EdgeDetector reports the active->inactive transition at most once.
// A lone inactive sample with no previously-confirmed active state is not
// an edge; a flaky read cannot end the session on its own.
type EdgeDetector struct {
	sawActive bool
	fired     bool
}

// NewEdgeDetector creates a detector. confirmedActive seeds the detector
// when the caller has already observed an active game (e.g. at render).
func NewEdgeDetector(confirmedActive bool) *EdgeDetector {
	return &EdgeDetector{sawActive: confirmedActive}
}

// Observe feeds one successful read and reports whether this read is the edge
func (d *EdgeDetector) Observe(active bool) bool {
	if d.fired {
		return false
	}
	if active {
		d.sawActive = true
		return false
	}
	if !d.sawActive {
		return false
	}
	d.fired = true
	return true
}

// Watcher owns the repeating game-state poll for a board session.
// The owning screen starts it; the router stops it unconditionally on every
// transition, so Stop must be safe at any time.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	detector *EdgeDetector
	logger   *slog.Logger

	ended chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewWatcher creates a watcher polling source every interval.
// confirmedActive seeds edge detection (see NewEdgeDetector).
func NewWatcher(source StatusSource, interval time.Duration, confirmedActive bool, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		source:   source,
		interval: interval,
		detector: NewEdgeDetector(confirmedActive),
		logger:   logger,
		ended:    make(chan struct{}),
	}
}

// Ended is closed exactly once, when the game-end edge is detected
func (w *Watcher) Ended() <-chan struct{} {
	return w.ended
}

// Start begins polling in the background until the edge is detected,
// the context is cancelled, or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.cancel != nil || w.stopped {
		w.mu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(pollCtx)
}

// Stop ends polling. Idempotent and safe to call when nothing is running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := w.source.GetGameState(ctx)
			if err != nil {
				// Transient network noise; the poll stays on schedule
				w.logger.Debug("game state poll failed", slog.String("error", err.Error()))
				continue
			}
			if w.detector.Observe(status.Active) {
				close(w.ended)
				return
			}
		}
	}
}
