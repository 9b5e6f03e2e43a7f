package settings

import (
	"sync"

	"github.com/spec-kit/queue-monitor/internal/config"
)

// Settings is the runtime-adjustable slice of configuration. The dispatcher
// and the escalation monitor read a fresh copy on every invocation, so an
// update takes effect on the next event without recreating any channel or
// timer.
type Settings struct {
	WarningTimeMinutes     int     `json:"warningTimeMinutes"`
	CriticalTimeMinutes    int     `json:"criticalTimeMinutes"`
	FullScreenAlertMinutes int     `json:"fullScreenAlertMinutes"`
	NotificationSound      string  `json:"notificationSound"`
	SoundVolume            float64 `json:"soundVolume"`
}

// Store holds the current Settings behind a lock.
type Store struct {
	mu      sync.RWMutex
	current Settings
}

// NewStore seeds a store from the loaded configuration.
func NewStore(alerting config.AlertingConfig, sound config.SoundConfig) *Store {
	return &Store{
		current: Settings{
			WarningTimeMinutes:     alerting.WarningTimeMinutes,
			CriticalTimeMinutes:    alerting.CriticalTimeMinutes,
			FullScreenAlertMinutes: alerting.FullScreenAlertMinutes,
			NotificationSound:      sound.NotificationSound,
			SoundVolume:            sound.SoundVolume,
		},
	}
}

// Current returns a copy of the live settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new settings value.
func (s *Store) Replace(next Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
}
