package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-monitor/internal/settings"
	apperrors "github.com/spec-kit/queue-monitor/pkg/util/errorutil"
)

// SettingsHandler serves and updates the runtime settings.
type SettingsHandler struct {
	store *settings.Store
}

// NewSettingsHandler returns a new handler instance.
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Get returns the live settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.store.Current())
}

// Update replaces the runtime settings. Changes take effect on the next
// notification or scan without restarting anything.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var next settings.Settings
	if err := c.BodyParser(&next); err != nil {
		return apperrors.NewValidationError("invalid settings payload", nil)
	}

	details := map[string]any{}
	if next.SoundVolume < 0 || next.SoundVolume > 1 {
		details["soundVolume"] = "must be between 0 and 1"
	}
	if next.WarningTimeMinutes <= 0 {
		details["warningTimeMinutes"] = "must be positive"
	}
	if next.CriticalTimeMinutes < next.WarningTimeMinutes {
		details["criticalTimeMinutes"] = "must be >= warningTimeMinutes"
	}
	if next.FullScreenAlertMinutes < next.CriticalTimeMinutes {
		details["fullScreenAlertMinutes"] = "must be >= criticalTimeMinutes"
	}
	if next.NotificationSound == "" {
		details["notificationSound"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid settings", details)
	}

	h.store.Replace(next)
	return c.JSON(h.store.Current())
}
