package alert

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/domain"
	"github.com/spec-kit/queue-monitor/internal/observability"
	"github.com/spec-kit/queue-monitor/internal/settings"
)

// TicketSource supplies the current ticket snapshot to each scan.
type TicketSource func() []domain.Ticket

// Monitor periodically selects at most one ticket for full-screen
// escalation. The active alert is re-derived wholesale on every scan, so
// re-running a scan with unchanged inputs yields the same result with no
// extra side effects.
type Monitor struct {
	source     TicketSource
	dismissals *DismissalTracker
	settings   *settings.Store
	logger     *zap.Logger
	metrics    *observability.Metrics
	interval   time.Duration

	now func() time.Time

	mu     sync.RWMutex
	active *domain.Ticket
}

// NewMonitor builds a monitor scanning at the given interval.
func NewMonitor(source TicketSource, dismissals *DismissalTracker, store *settings.Store, interval time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		source:     source,
		dismissals: dismissals,
		settings:   store,
		logger:     logger,
		metrics:    metrics,
		interval:   interval,
		now:        time.Now,
	}
}

// Scan recomputes the active alert from the current snapshot and settings.
// It returns the new active alert, or nil when none qualifies. Scans never
// fail: tickets with missing timestamps evaluate to zero elapsed minutes and
// are simply not urgent.
func (m *Monitor) Scan() *domain.Ticket {
	cfg := m.settings.Current()
	selected := selectAlert(m.source(), m.now(), cfg, m.dismissals)

	m.mu.Lock()
	previous := m.active
	m.active = selected
	m.mu.Unlock()

	m.metrics.RecordScan(selected != nil)
	switch {
	case selected != nil && (previous == nil || previous.ID != selected.ID):
		m.logger.Info("full-screen alert raised",
			zap.String("ticket_id", selected.ID),
			zap.Time("created_at", selected.CreatedAt))
	case selected == nil && previous != nil:
		m.logger.Info("full-screen alert cleared", zap.String("ticket_id", previous.ID))
	}
	return m.copyActive()
}

// selectAlert picks the first ticket in snapshot order that is awaiting
// attendance, not dismissed, and past the full-screen threshold. First match
// wins; the selection is not sorted by urgency.
func selectAlert(tickets []domain.Ticket, now time.Time, cfg settings.Settings, dismissals *DismissalTracker) *domain.Ticket {
	for _, ticket := range tickets {
		if !ticket.Awaiting() {
			continue
		}
		status := domain.EvaluateTimeStatus(ticket.CreatedAt, now, cfg.WarningTimeMinutes, cfg.CriticalTimeMinutes)
		if status.Minutes < cfg.FullScreenAlertMinutes {
			continue
		}
		if dismissals.IsDismissed(ticket.ID) {
			continue
		}
		t := ticket
		return &t
	}
	return nil
}

// Active returns a copy of the currently escalated ticket, or nil.
func (m *Monitor) Active() *domain.Ticket {
	return m.copyActive()
}

func (m *Monitor) copyActive() *domain.Ticket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return nil
	}
	t := *m.active
	return &t
}

// Run scans on the configured interval until ctx is cancelled. An initial
// scan fires immediately so a restart does not wait a full interval to
// surface an overdue ticket.
func (m *Monitor) Run(ctx context.Context) {
	m.Scan()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Scan()
		}
	}
}
