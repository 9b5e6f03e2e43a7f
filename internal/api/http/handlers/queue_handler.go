package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-monitor/internal/service"
)

// QueueHandler serves the rendered queue display.
type QueueHandler struct {
	queue  *service.QueueService
	toasts *service.ToastLog
}

// NewQueueHandler returns a new handler instance.
func NewQueueHandler(queue *service.QueueService, toasts *service.ToastLog) *QueueHandler {
	return &QueueHandler{queue: queue, toasts: toasts}
}

// List returns the current display rows.
func (h *QueueHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tickets": h.queue.Rows(),
		"pending": h.queue.PendingCount(),
	})
}

// Stages returns stage reference data.
func (h *QueueHandler) Stages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stages": h.queue.Stages()})
}

// Toasts returns recent user-visible acknowledgments for the host UI.
func (h *QueueHandler) Toasts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"toasts": h.toasts.Recent()})
}

// Refresh forces a snapshot reload, for hosts without stream access.
func (h *QueueHandler) Refresh(c *fiber.Ctx) error {
	if err := h.queue.Refresh(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "refreshed"})
}
