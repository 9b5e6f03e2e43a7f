package audio

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/observability"
	"github.com/spec-kit/queue-monitor/internal/settings"
)

// Dispatcher makes a best-effort attempt to audibly notify on an event. A
// play request walks an ordered chain of strategies until one starts
// playback or the chain is exhausted; every stage runs at most once per
// invocation and nothing is retried across invocations. Play never panics
// and never returns an error to its caller.
type Dispatcher struct {
	subsystem *Subsystem
	settings  *settings.Store
	logger    *zap.Logger
	metrics   *observability.Metrics

	mu          sync.Mutex
	primary     *Channel
	primaryName string
}

// NewDispatcher builds a dispatcher over the given subsystem. Sound name and
// volume are read from the settings store on every invocation, never cached
// here.
func NewDispatcher(subsystem *Subsystem, store *settings.Store, logger *zap.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		subsystem: subsystem,
		settings:  store,
		logger:    logger,
		metrics:   metrics,
	}
}

type attempt struct {
	name string
	fn   func() error
}

// Play walks the fallback chain for the configured notification sound.
// Returns true when some stage started playback, false when audio is still
// locked or the chain was exhausted.
func (d *Dispatcher) Play(ctx context.Context) bool {
	cfg := d.settings.Current()
	name := cfg.NotificationSound
	if name == "" {
		name = DefaultSound
	}
	volume := cfg.SoundVolume

	if !d.subsystem.Unlocked() {
		d.logger.Debug("audio locked, skipping notification", zap.String("sound", name))
		d.metrics.RecordNotification(false)
		return false
	}

	attempts := []attempt{
		{"primary", func() error { return d.playPrimary(ctx, name, volume) }},
		{"subsystem", func() error { return d.playCached(ctx, name, volume) }},
		{"fresh", func() error { return d.playFresh(ctx, name, volume) }},
	}

	for _, a := range attempts {
		if err := a.fn(); err != nil {
			d.logger.Warn("playback attempt failed",
				zap.String("stage", a.name),
				zap.String("sound", name),
				zap.Error(err))
			continue
		}
		d.logger.Debug("notification played",
			zap.String("stage", a.name),
			zap.String("sound", name))
		d.metrics.RecordNotification(true)
		return true
	}

	// Terminal failure: the notification is lost, the caller is not told.
	d.logger.Error("all playback attempts exhausted", zap.String("sound", name))
	d.metrics.RecordNotification(false)
	return false
}

// playPrimary uses the long-lived handle, rebinding it when the configured
// sound has changed since the last invocation.
func (d *Dispatcher) playPrimary(ctx context.Context, name string, volume float64) error {
	ch, err := d.primaryChannel(name)
	if err != nil {
		return err
	}
	ch.SetVolume(volume)
	return ch.Play(ctx)
}

func (d *Dispatcher) primaryChannel(name string) (*Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.primary != nil && d.primaryName == name {
		return d.primary, nil
	}

	ch := d.subsystem.NewChannel(name)
	if err := ch.Load(); err != nil {
		return nil, err
	}
	d.primary = ch
	d.primaryName = name
	return ch, nil
}

// playCached requests playback through the subsystem's shared channel cache,
// a handle distinct from the primary one.
func (d *Dispatcher) playCached(ctx context.Context, name string, volume float64) error {
	ch, err := d.subsystem.Channel(name)
	if err != nil {
		return err
	}
	if !ch.Loaded() {
		return ErrNotLoaded
	}
	ch.SetVolume(volume)
	return ch.Play(ctx)
}

// playFresh constructs a brand-new channel and forces a load before playing.
// This is the last resort.
func (d *Dispatcher) playFresh(ctx context.Context, name string, volume float64) error {
	ch := d.subsystem.NewChannel(name)
	if err := ch.Load(); err != nil {
		return err
	}
	ch.SetVolume(volume)
	return ch.Play(ctx)
}

// Warm preloads the primary channel for the configured sound so the first
// notification does not pay the load cost. Failures are logged only.
func (d *Dispatcher) Warm() {
	cfg := d.settings.Current()
	name := cfg.NotificationSound
	if name == "" {
		name = DefaultSound
	}
	if _, err := d.primaryChannel(name); err != nil {
		d.logger.Warn("failed to warm primary channel", zap.String("sound", name), zap.Error(err))
	}
}
