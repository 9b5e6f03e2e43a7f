package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/alert"
	"github.com/spec-kit/queue-monitor/internal/api/http/handlers"
	"github.com/spec-kit/queue-monitor/internal/audio"
	"github.com/spec-kit/queue-monitor/internal/auth"
	"github.com/spec-kit/queue-monitor/internal/config"
	"github.com/spec-kit/queue-monitor/internal/domain"
	"github.com/spec-kit/queue-monitor/internal/observability"
	"github.com/spec-kit/queue-monitor/internal/persistence"
	"github.com/spec-kit/queue-monitor/internal/service"
	"github.com/spec-kit/queue-monitor/internal/settings"
)

const testSecret = "router-test-secret"

type fixedTicketRepo struct {
	tickets []domain.Ticket
}

func (f *fixedTicketRepo) ListQueue(ctx context.Context) ([]domain.Ticket, error) {
	return f.tickets, nil
}

type fixedStageRepo struct{}

func (fixedStageRepo) ListStages(ctx context.Context) ([]domain.Stage, error) {
	return []domain.Stage{{Number: 1, Name: "Awaiting attendance"}}, nil
}

type testEnv struct {
	app        *fiber.App
	monitor    *alert.Monitor
	dismissals *alert.DismissalTracker
	queue      *service.QueueService
}

func newTestEnv(t *testing.T, tickets []domain.Ticket) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := settings.NewStore(
		config.AlertingConfig{WarningTimeMinutes: 10, CriticalTimeMinutes: 20, FullScreenAlertMinutes: 30},
		config.SoundConfig{NotificationSound: "notificacao", SoundVolume: 0.5},
	)

	queue := service.NewQueueService(&fixedTicketRepo{tickets: tickets}, fixedStageRepo{}, store, time.Second, logger)
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	dismissals := alert.NewDismissalTracker()
	monitor := alert.NewMonitor(queue.Tickets, dismissals, store, 15*time.Second, logger, metrics)
	monitor.Scan()

	toasts := service.NewToastLog(10, logger)
	subsystem := audio.NewSubsystem(t.TempDir(), audio.NewExecSink("", logger), logger)
	dispatcher := audio.NewDispatcher(subsystem, store, logger, metrics)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("queue-monitor", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Queue:          handlers.NewQueueHandler(queue, toasts),
		Alert:          handlers.NewAlertHandler(monitor, dismissals, queue, toasts),
		Audio:          handlers.NewAudioHandler(subsystem, dispatcher),
		Settings:       handlers.NewSettingsHandler(store),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewTokenValidator(testSecret)),
	})

	return &testEnv{app: app, monitor: monitor, dismissals: dismissals, queue: queue}
}

func operatorToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "op-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func overdueTickets(now time.Time) []domain.Ticket {
	return []domain.Ticket{
		{ID: "t1", Title: "Alice", StageNumber: 1, CreatedAt: now.Add(-40 * time.Minute)},
		{ID: "t2", Title: "Bob", StageNumber: 1, CreatedAt: now.Add(-35 * time.Minute)},
	}
}

func TestGetQueue(t *testing.T) {
	env := newTestEnv(t, overdueTickets(time.Now()))

	req := httptest.NewRequest(fiber.MethodGet, "/api/queue", nil)
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Tickets []service.QueueRow `json:"tickets"`
		Pending int                `json:"pending"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tickets) != 2 || body.Pending != 2 {
		t.Errorf("tickets = %d pending = %d, want 2/2", len(body.Tickets), body.Pending)
	}
	if body.Tickets[0].Severity != domain.SeverityCritical {
		t.Errorf("severity = %q, want critical", body.Tickets[0].Severity)
	}
}

func TestGetActiveAlert(t *testing.T) {
	env := newTestEnv(t, overdueTickets(time.Now()))

	req := httptest.NewRequest(fiber.MethodGet, "/api/alert", nil)
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Alert *struct {
			TicketID string `json:"ticket_id"`
		} `json:"alert"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Alert == nil || body.Alert.TicketID != "t1" {
		t.Errorf("alert = %+v, want t1", body.Alert)
	}
}

func TestDismissRequiresAuth(t *testing.T) {
	env := newTestEnv(t, overdueTickets(time.Now()))

	req := httptest.NewRequest(fiber.MethodPost, "/api/alert/t1/dismiss", nil)
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if env.dismissals.IsDismissed("t1") {
		t.Error("unauthorized request must not dismiss")
	}
}

func TestDismissClearsAndAdvancesAlert(t *testing.T) {
	env := newTestEnv(t, overdueTickets(time.Now()))

	req := httptest.NewRequest(fiber.MethodPost, "/api/alert/t1/dismiss", nil)
	req.Header.Set("Authorization", operatorToken(t))
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	// t1 is suppressed; the next qualifying ticket takes its place at once.
	if active := env.monitor.Active(); active == nil || active.ID != "t2" {
		t.Errorf("active after dismiss = %v, want t2", active)
	}
}

func TestDismissAllReportsBatchCount(t *testing.T) {
	env := newTestEnv(t, overdueTickets(time.Now()))
	env.dismissals.Dismiss("t2") // already dismissed; still counted

	req := httptest.NewRequest(fiber.MethodPost, "/api/alert/dismiss-all", nil)
	req.Header.Set("Authorization", operatorToken(t))
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want nominal batch size 2", body.Count)
	}
	if active := env.monitor.Active(); active != nil {
		t.Errorf("active after dismiss-all = %v, want none", active)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := map[string]struct {
		payload    string
		wantStatus int
	}{
		"valid": {
			payload:    `{"warningTimeMinutes":5,"criticalTimeMinutes":10,"fullScreenAlertMinutes":15,"notificationSound":"senna","soundVolume":0.7}`,
			wantStatus: fiber.StatusOK,
		},
		"volume out of range": {
			payload:    `{"warningTimeMinutes":5,"criticalTimeMinutes":10,"fullScreenAlertMinutes":15,"notificationSound":"senna","soundVolume":1.5}`,
			wantStatus: fiber.StatusBadRequest,
		},
		"critical below warning": {
			payload:    `{"warningTimeMinutes":10,"criticalTimeMinutes":5,"fullScreenAlertMinutes":15,"notificationSound":"senna","soundVolume":0.5}`,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPut, "/api/settings", strings.NewReader(tc.payload))
			req.Header.Set("Authorization", operatorToken(t))
			req.Header.Set("Content-Type", "application/json")
			resp, err := env.app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}
