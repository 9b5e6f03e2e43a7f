package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/domain"
	"github.com/spec-kit/queue-monitor/internal/repository"
	"github.com/spec-kit/queue-monitor/internal/settings"
)

// QueueRow is one display line of the queue: the ticket plus its rendered
// elapsed-time text and severity. Rows are display state only; the scan
// works from the raw ticket snapshot.
type QueueRow struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	StageNumber int             `json:"stage_number"`
	Minutes     int             `json:"minutes"`
	Elapsed     string          `json:"elapsed"`
	Severity    domain.Severity `json:"severity"`
}

// QueueService owns the in-memory ticket and stage snapshot. Refresh
// replaces the snapshot wholesale; every reader sees a consistent version.
// A short display tick re-renders elapsed-time rows so the served text keeps
// moving between refreshes.
type QueueService struct {
	tickets  repository.TicketRepository
	stages   repository.StageRepository
	settings *settings.Store
	logger   *zap.Logger
	interval time.Duration

	now func() time.Time

	mu        sync.RWMutex
	snapshot  []domain.Ticket
	stageList []domain.Stage
	rows      []QueueRow
}

// NewQueueService builds the service; call Refresh before serving.
func NewQueueService(tickets repository.TicketRepository, stages repository.StageRepository, store *settings.Store, interval time.Duration, logger *zap.Logger) *QueueService {
	return &QueueService{
		tickets:  tickets,
		stages:   stages,
		settings: store,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Refresh reloads tickets and stages from the system of record and
// re-renders the display rows.
func (s *QueueService) Refresh(ctx context.Context) error {
	tickets, err := s.tickets.ListQueue(ctx)
	if err != nil {
		return fmt.Errorf("load tickets: %w", err)
	}
	stageList, err := s.stages.ListStages(ctx)
	if err != nil {
		return fmt.Errorf("load stages: %w", err)
	}

	s.mu.Lock()
	s.snapshot = tickets
	s.stageList = stageList
	s.mu.Unlock()

	s.renderRows()
	s.logger.Debug("queue snapshot refreshed", zap.Int("tickets", len(tickets)))
	return nil
}

// Tickets returns a copy of the current snapshot in fetch order.
func (s *QueueService) Tickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Stages returns a copy of the stage reference data.
func (s *QueueService) Stages() []domain.Stage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Stage, len(s.stageList))
	copy(out, s.stageList)
	return out
}

// Rows returns the most recently rendered display rows.
func (s *QueueService) Rows() []QueueRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]QueueRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// PendingCount returns how many tickets are awaiting attendance.
func (s *QueueService) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, t := range s.snapshot {
		if t.Awaiting() {
			count++
		}
	}
	return count
}

// WaitingTicketIDs returns the ids of every ticket awaiting attendance, used
// by the bulk dismiss operation.
func (s *QueueService) WaitingTicketIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, t := range s.snapshot {
		if t.Awaiting() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// renderRows recomputes display rows from the current snapshot and settings.
func (s *QueueService) renderRows() {
	cfg := s.settings.Current()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]QueueRow, 0, len(s.snapshot))
	for _, t := range s.snapshot {
		status := domain.EvaluateTimeStatus(t.CreatedAt, now, cfg.WarningTimeMinutes, cfg.CriticalTimeMinutes)
		rows = append(rows, QueueRow{
			ID:          t.ID,
			Title:       t.Title,
			StageNumber: t.StageNumber,
			Minutes:     status.Minutes,
			Elapsed:     fmt.Sprintf("%d min", status.Minutes),
			Severity:    status.Severity,
		})
	}
	s.rows = rows
}

// Run re-renders display rows on the configured interval until ctx is
// cancelled. The tick touches display state only, never the snapshot.
func (s *QueueService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.renderRows()
		}
	}
}
