package realtime

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/observability"
)

// ErrAlreadyStarted is returned when Start is called on a running bridge.
var ErrAlreadyStarted = errors.New("realtime: bridge already started")

// Notifier is the audio dispatch capability the bridge invokes on inserts.
type Notifier interface {
	Play(ctx context.Context) bool
}

// Presenter surfaces lightweight user-visible acknowledgments.
type Presenter interface {
	Info(message string)
}

// Bridge consumes the ticket mutation stream. Every event triggers the
// refresh callback; inserts additionally play the new-ticket sound and emit
// a toast. Events are handled in arrival order on a single goroutine.
//
// A bridge holds at most one subscription: Start acquires it, Stop releases
// it, and a stopped bridge can be started again without leaking or
// duplicating subscriptions. The bridge never reconnects on its own;
// transport errors are logged and left to the transport to resolve.
type Bridge struct {
	stream     Stream
	collection string
	refresh    func()
	notifier   Notifier
	presenter  Presenter
	logger     *zap.Logger
	metrics    *observability.Metrics

	mu      sync.Mutex
	sub     Subscription
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewBridge wires the bridge to its collaborators.
func NewBridge(stream Stream, collection string, refresh func(), notifier Notifier, presenter Presenter, logger *zap.Logger, metrics *observability.Metrics) *Bridge {
	return &Bridge{
		stream:     stream,
		collection: collection,
		refresh:    refresh,
		notifier:   notifier,
		presenter:  presenter,
		logger:     logger,
		metrics:    metrics,
	}
}

// Start subscribes and begins consuming events. It fails if the bridge is
// already running or the subscription cannot be established.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub, err := b.stream.Subscribe(runCtx, b.collection)
	if err != nil {
		cancel()
		b.logger.Error("mutation stream subscription failed", zap.Error(err))
		return err
	}

	b.sub = sub
	b.cancel = cancel
	b.done = make(chan struct{})
	b.running = true

	go b.consume(runCtx, sub, b.done)
	return nil
}

func (b *Bridge) consume(ctx context.Context, sub Subscription, done chan struct{}) {
	defer close(done)
	for event := range sub.Events() {
		b.handle(ctx, event)
	}
}

func (b *Bridge) handle(ctx context.Context, event Event) {
	b.metrics.RecordEvent(string(event.Kind))
	b.logger.Info("ticket mutation received",
		zap.String("kind", string(event.Kind)),
		zap.String("ticket_id", event.Record.ID),
		zap.String("ingest_id", event.IngestID))

	// Every mutation invalidates the snapshot.
	b.refresh()

	if event.Kind != KindInsert {
		return
	}
	played := b.notifier.Play(ctx)
	if !played {
		b.logger.Warn("new-ticket notification was not played",
			zap.String("ticket_id", event.Record.ID),
			zap.String("ingest_id", event.IngestID))
	}
	b.presenter.Info("New ticket in the queue")
}

// Stop tears the subscription down and waits for the consume loop to drain.
// Idempotent; stopping a never-started bridge is a no-op.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	sub := b.sub
	cancel := b.cancel
	done := b.done
	b.sub = nil
	b.cancel = nil
	b.done = nil
	b.running = false
	b.mu.Unlock()

	if err := sub.Close(); err != nil {
		b.logger.Warn("closing subscription", zap.Error(err))
	}
	cancel()
	<-done
	b.logger.Info("mutation stream bridge stopped")
}
