package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the monitor loops and the
// HTTP surface. All methods are nil-safe so optional wiring stays simple.
type Metrics struct {
	mu                   sync.Mutex
	requestCount         map[string]int64
	errorCount           map[string]int64
	eventCount           map[string]int64
	scanCount            int64
	alertsRaised         int64
	notificationAttempts int64
	notificationMisses   int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		eventCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordEvent counts a received mutation event by kind.
func (m *Metrics) RecordEvent(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCount[kind]++
}

// RecordScan counts an escalation scan and whether it raised an alert.
func (m *Metrics) RecordScan(raised bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCount++
	if raised {
		m.alertsRaised++
	}
}

// RecordNotification counts a dispatch attempt; missed means the whole
// fallback chain was exhausted.
func (m *Metrics) RecordNotification(played bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationAttempts++
	if !played {
		m.notificationMisses++
	}
}

// Snapshot returns a copy of all counters for the /metrics endpoint.
func (m *Metrics) Snapshot() map[string]any {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make(map[string]int64, len(m.requestCount))
	for k, v := range m.requestCount {
		requests[k] = v
	}
	errors := make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errors[k] = v
	}
	events := make(map[string]int64, len(m.eventCount))
	for k, v := range m.eventCount {
		events[k] = v
	}

	return map[string]any{
		"requests":              requests,
		"errors":                errors,
		"events":                events,
		"scans":                 m.scanCount,
		"alerts_raised":         m.alertsRaised,
		"notification_attempts": m.notificationAttempts,
		"notification_misses":   m.notificationMisses,
	}
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
