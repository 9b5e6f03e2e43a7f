package domain

import (
	"testing"
	"time"
)

func TestEvaluateTimeStatus(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		createdAt    time.Time
		wantMinutes  int
		wantSeverity Severity
	}{
		"five minutes is normal": {
			createdAt:    now.Add(-5 * time.Minute),
			wantMinutes:  5,
			wantSeverity: SeverityNormal,
		},
		"just under warning stays normal": {
			createdAt:    now.Add(-10*time.Minute + time.Second),
			wantMinutes:  9,
			wantSeverity: SeverityNormal,
		},
		"warning boundary is inclusive": {
			createdAt:    now.Add(-10 * time.Minute),
			wantMinutes:  10,
			wantSeverity: SeverityWarning,
		},
		"just under critical stays warning": {
			createdAt:    now.Add(-20*time.Minute + time.Second),
			wantMinutes:  19,
			wantSeverity: SeverityWarning,
		},
		"critical boundary is inclusive": {
			createdAt:    now.Add(-20 * time.Minute),
			wantMinutes:  20,
			wantSeverity: SeverityCritical,
		},
		"twenty five minutes is critical": {
			createdAt:    now.Add(-25 * time.Minute),
			wantMinutes:  25,
			wantSeverity: SeverityCritical,
		},
		"missing timestamp degrades to normal": {
			createdAt:    time.Time{},
			wantMinutes:  0,
			wantSeverity: SeverityNormal,
		},
		"future timestamp clamps to zero": {
			createdAt:    now.Add(3 * time.Minute),
			wantMinutes:  0,
			wantSeverity: SeverityNormal,
		},
		"partial minutes floor": {
			createdAt:    now.Add(-12*time.Minute - 59*time.Second),
			wantMinutes:  12,
			wantSeverity: SeverityWarning,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := EvaluateTimeStatus(tc.createdAt, now, 10, 20)
			if got.Minutes != tc.wantMinutes {
				t.Errorf("minutes = %d, want %d", got.Minutes, tc.wantMinutes)
			}
			if got.Severity != tc.wantSeverity {
				t.Errorf("severity = %q, want %q", got.Severity, tc.wantSeverity)
			}
		})
	}
}

func TestParseEventTime(t *testing.T) {
	tests := map[string]struct {
		value    string
		wantZero bool
	}{
		"rfc3339":            {value: "2026-08-28T11:30:00Z", wantZero: false},
		"rfc3339 nano":       {value: "2026-08-28T11:30:00.123456Z", wantZero: false},
		"postgres timestamp": {value: "2026-08-28 11:30:00", wantZero: false},
		"no timezone":        {value: "2026-08-28T11:30:00", wantZero: false},
		"empty":              {value: "", wantZero: true},
		"garbage":            {value: "not-a-timestamp", wantZero: true},
		"numeric":            {value: "1756380600", wantZero: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := ParseEventTime(tc.value)
			if got.IsZero() != tc.wantZero {
				t.Errorf("ParseEventTime(%q).IsZero() = %v, want %v", tc.value, got.IsZero(), tc.wantZero)
			}
		})
	}
}

func TestParseEventTimeFeedsEvaluator(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	status := EvaluateTimeStatus(ParseEventTime("definitely broken"), now, 10, 20)
	if status.Minutes != 0 || status.Severity != SeverityNormal {
		t.Errorf("malformed timestamp should degrade to 0/normal, got %+v", status)
	}
}
