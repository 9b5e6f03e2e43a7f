package domain

import "time"

// Severity classifies how long a ticket has been waiting.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// TimeStatus is the derived wait classification for a single ticket.
type TimeStatus struct {
	Minutes  int
	Severity Severity
}

// EvaluateTimeStatus classifies elapsed wait time against the two minute
// thresholds. Callers supply now so the function stays deterministic.
//
// A zero creation timestamp means the value was missing or unparsable
// upstream; such tickets report zero elapsed minutes and normal severity
// rather than failing. Band boundaries are inclusive on the lower bound:
// elapsed < warning is normal, warning <= elapsed < critical is warning,
// elapsed >= critical is critical.
func EvaluateTimeStatus(createdAt, now time.Time, warningMinutes, criticalMinutes int) TimeStatus {
	if createdAt.IsZero() {
		return TimeStatus{Minutes: 0, Severity: SeverityNormal}
	}

	minutes := int(now.Sub(createdAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	severity := SeverityNormal
	switch {
	case minutes >= criticalMinutes:
		severity = SeverityCritical
	case minutes >= warningMinutes:
		severity = SeverityWarning
	}

	return TimeStatus{Minutes: minutes, Severity: severity}
}

// eventTimeLayouts covers the timestamp shapes seen on mutation-event records.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseEventTime parses a creation timestamp carried on a mutation event.
// Malformed or empty input yields the zero time, which EvaluateTimeStatus
// treats as "unknown"; event decoding must never fail the scan path.
func ParseEventTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range eventTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
