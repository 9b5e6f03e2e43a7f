package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Toast is a lightweight user-visible acknowledgment.
type Toast struct {
	Message string    `json:"message"`
	Level   string    `json:"level"`
	At      time.Time `json:"at"`
}

// ToastLog keeps the most recent toasts for the host UI to poll. It stands
// in for the toast widget of the original interface: the host renders
// whatever is in here, the core only appends.
type ToastLog struct {
	logger *zap.Logger
	max    int

	mu      sync.Mutex
	entries []Toast
}

// NewToastLog keeps at most max entries.
func NewToastLog(max int, logger *zap.Logger) *ToastLog {
	if max <= 0 {
		max = 20
	}
	return &ToastLog{logger: logger, max: max}
}

// Info appends an informational toast.
func (t *ToastLog) Info(message string) {
	t.append(Toast{Message: message, Level: "info", At: time.Now()})
}

// Success appends a success toast.
func (t *ToastLog) Success(message string) {
	t.append(Toast{Message: message, Level: "success", At: time.Now()})
}

func (t *ToastLog) append(toast Toast) {
	t.logger.Info("toast", zap.String("level", toast.Level), zap.String("message", toast.Message))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, toast)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
}

// Recent returns the retained toasts, newest last.
func (t *ToastLog) Recent() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.entries))
	copy(out, t.entries)
	return out
}
