// Package events carries the best-effort engagement signals: view, click and
// share increments and link-driven subscriber registration. The contract is
// non-blocking and non-retrying — a failed emit is logged at debug level and
// never reaches the caller.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/metrics"
	"github.com/glancery/glancery/internal/repo"
)

// Stat is one increment batch for a glance.
type Stat struct {
	GCode  string
	Views  int64
	Clicks int64
	Shares int64
}

type Emitter interface {
	// Emit returns before the write happens and never reports failure.
	Emit(ctx context.Context, s Stat)
}

// Async writes stats through the store on a detached goroutine with its own
// timeout, so a slow or dead store cannot stall a page load.
type Async struct {
	store   repo.Store
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ Emitter = (*Async)(nil)

func NewAsync(store repo.Store, log *zap.Logger) *Async {
	return &Async{store: store, log: log, timeout: 3 * time.Second}
}

func (a *Async) Emit(_ context.Context, s Stat) {
	if s.GCode == "" {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.store.IncrementStats(ctx, s.GCode, s.Views, s.Clicks, s.Shares); err != nil {
			metrics.StatEmitsTotal.WithLabelValues("error").Inc()
			a.log.Debug("stat emit dropped", zap.String("gcode", s.GCode), zap.Error(err))
			return
		}
		metrics.StatEmitsTotal.WithLabelValues("ok").Inc()
	}()
}

// Flush waits for in-flight emits; tests use it to observe the counters
// deterministically.
func (a *Async) Flush() { a.wg.Wait() }

// Noop drops everything.
type Noop struct{}

func (Noop) Emit(context.Context, Stat) {}
