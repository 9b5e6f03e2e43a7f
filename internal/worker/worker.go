package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/alert"
	"github.com/spec-kit/queue-monitor/internal/realtime"
	"github.com/spec-kit/queue-monitor/internal/service"
)

// Worker owns the background machinery: the display render tick, the
// escalation scan tick and the mutation stream bridge. Start spins
// everything up once; Stop tears it all down deterministically and is safe
// to call more than once.
type Worker struct {
	queue   *service.QueueService
	monitor *alert.Monitor
	bridge  *realtime.Bridge
	logger  *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New bundles the background components.
func New(queue *service.QueueService, monitor *alert.Monitor, bridge *realtime.Bridge, logger *zap.Logger) *Worker {
	return &Worker{queue: queue, monitor: monitor, bridge: bridge, logger: logger}
}

// Start launches the timers and the bridge. A bridge subscription failure is
// logged but does not abort startup: the scan and display loops still work
// against periodic refreshes, just without push latency.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.queue.Run(runCtx)
	}()
	go func() {
		defer w.wg.Done()
		w.monitor.Run(runCtx)
	}()

	if err := w.bridge.Start(runCtx); err != nil {
		w.logger.Error("starting mutation bridge", zap.Error(err))
	}

	w.logger.Info("background workers started")
}

// Stop cancels the timers, stops the bridge and waits for everything to
// drain. Idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}

	w.bridge.Stop()
	cancel()
	w.wg.Wait()
	w.logger.Info("background workers stopped")
}
