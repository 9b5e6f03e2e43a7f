package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/config"
	"github.com/spec-kit/queue-monitor/internal/domain"
	"github.com/spec-kit/queue-monitor/internal/settings"
)

type fakeTicketRepo struct {
	tickets []domain.Ticket
	err     error
}

func (f *fakeTicketRepo) ListQueue(ctx context.Context) ([]domain.Ticket, error) {
	return f.tickets, f.err
}

type fakeStageRepo struct {
	stages []domain.Stage
}

func (f *fakeStageRepo) ListStages(ctx context.Context) ([]domain.Stage, error) {
	return f.stages, nil
}

func testSettings() *settings.Store {
	return settings.NewStore(
		config.AlertingConfig{WarningTimeMinutes: 10, CriticalTimeMinutes: 20, FullScreenAlertMinutes: 30},
		config.SoundConfig{NotificationSound: "notificacao", SoundVolume: 0.5},
	)
}

func TestRefreshRendersRows(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := &fakeTicketRepo{tickets: []domain.Ticket{
		{ID: "t1", Title: "Alice", StageNumber: 1, CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "t2", Title: "Bob", StageNumber: 1, CreatedAt: now.Add(-25 * time.Minute)},
		{ID: "t3", Title: "Carol", StageNumber: 2, CreatedAt: now.Add(-90 * time.Minute)},
	}}
	svc := NewQueueService(repo, &fakeStageRepo{stages: []domain.Stage{{Number: 1, Name: "Awaiting attendance"}}}, testSettings(), time.Second, zap.NewNop())
	svc.now = func() time.Time { return now }

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	rows := svc.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Severity != domain.SeverityNormal || rows[0].Elapsed != "5 min" {
		t.Errorf("t1 row = %+v", rows[0])
	}
	if rows[1].Severity != domain.SeverityCritical || rows[1].Elapsed != "25 min" {
		t.Errorf("t2 row = %+v", rows[1])
	}
	if rows[2].Severity != domain.SeverityCritical {
		t.Errorf("t3 severity = %q, want critical (severity ignores stage)", rows[2].Severity)
	}

	if got := svc.PendingCount(); got != 2 {
		t.Errorf("pending = %d, want 2", got)
	}
	if got := svc.WaitingTicketIDs(); len(got) != 2 || got[0] != "t1" || got[1] != "t2" {
		t.Errorf("waiting ids = %v", got)
	}
}

func TestRefreshErrorLeavesSnapshotIntact(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{ID: "t1", StageNumber: 1, CreatedAt: now.Add(-5 * time.Minute)}}}
	svc := NewQueueService(repo, &fakeStageRepo{}, testSettings(), time.Second, zap.NewNop())
	svc.now = func() time.Time { return now }

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	repo.err = errors.New("db down")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := svc.Tickets(); len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("snapshot should survive a failed refresh, got %v", got)
	}
}

func TestDisplayTickAdvancesElapsedText(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{ID: "t1", StageNumber: 1, CreatedAt: now.Add(-9 * time.Minute)}}}
	svc := NewQueueService(repo, &fakeStageRepo{}, testSettings(), time.Second, zap.NewNop())
	svc.now = func() time.Time { return now }

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := svc.Rows()[0]; got.Severity != domain.SeverityNormal {
		t.Fatalf("expected normal at 9 min, got %+v", got)
	}

	// Two minutes pass with no refresh; a render tick alone must move the
	// display into the warning band.
	svc.now = func() time.Time { return now.Add(2 * time.Minute) }
	svc.renderRows()

	got := svc.Rows()[0]
	if got.Elapsed != "11 min" || got.Severity != domain.SeverityWarning {
		t.Errorf("row after tick = %+v, want 11 min / warning", got)
	}
	if len(svc.Tickets()) != 1 {
		t.Error("render tick must not touch the snapshot")
	}
}

func TestRowsSettingsChangeAppliesOnNextRender(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{ID: "t1", StageNumber: 1, CreatedAt: now.Add(-15 * time.Minute)}}}
	store := testSettings()
	svc := NewQueueService(repo, &fakeStageRepo{}, store, time.Second, zap.NewNop())
	svc.now = func() time.Time { return now }

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := svc.Rows()[0].Severity; got != domain.SeverityWarning {
		t.Fatalf("severity = %q, want warning", got)
	}

	next := store.Current()
	next.WarningTimeMinutes = 16
	store.Replace(next)
	svc.renderRows()

	if got := svc.Rows()[0].Severity; got != domain.SeverityNormal {
		t.Errorf("severity after threshold change = %q, want normal", got)
	}
}

func TestToastLogRetention(t *testing.T) {
	log := NewToastLog(2, zap.NewNop())
	log.Info("one")
	log.Success("two")
	log.Info("three")

	got := log.Recent()
	if len(got) != 2 {
		t.Fatalf("retained = %d, want 2", len(got))
	}
	if got[0].Message != "two" || got[1].Message != "three" {
		t.Errorf("unexpected retained toasts: %v", got)
	}
	if got[0].Level != "success" {
		t.Errorf("level = %q, want success", got[0].Level)
	}
}
