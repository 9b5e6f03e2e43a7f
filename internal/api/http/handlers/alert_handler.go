package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-monitor/internal/alert"
	"github.com/spec-kit/queue-monitor/internal/service"
	apperrors "github.com/spec-kit/queue-monitor/pkg/util/errorutil"
)

// AlertHandler serves the active full-screen alert and the dismissal
// operations.
type AlertHandler struct {
	monitor    *alert.Monitor
	dismissals *alert.DismissalTracker
	queue      *service.QueueService
	toasts     *service.ToastLog
}

// NewAlertHandler returns a new handler instance.
func NewAlertHandler(monitor *alert.Monitor, dismissals *alert.DismissalTracker, queue *service.QueueService, toasts *service.ToastLog) *AlertHandler {
	return &AlertHandler{monitor: monitor, dismissals: dismissals, queue: queue, toasts: toasts}
}

// Active returns the currently escalated ticket, or null.
func (h *AlertHandler) Active(c *fiber.Ctx) error {
	active := h.monitor.Active()
	if active == nil {
		return c.JSON(fiber.Map{"alert": nil})
	}
	return c.JSON(fiber.Map{"alert": fiber.Map{
		"ticket_id":  active.ID,
		"title":      active.Title,
		"created_at": active.CreatedAt,
	}})
}

// Dismiss suppresses one ticket and re-derives the active alert so the
// dismissal takes effect immediately rather than on the next scan tick.
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id required", nil)
	}

	h.dismissals.Dismiss(ticketID)
	h.monitor.Scan()
	return c.JSON(fiber.Map{"status": "dismissed", "ticket_id": ticketID})
}

// DismissAll suppresses every ticket currently awaiting attendance. The
// acknowledged count is the batch size handed to the tracker.
func (h *AlertHandler) DismissAll(c *fiber.Ctx) error {
	waiting := h.queue.WaitingTicketIDs()
	count := h.dismissals.DismissAll(waiting)
	h.monitor.Scan()

	if count == 1 {
		h.toasts.Success("1 alert dismissed")
	} else {
		h.toasts.Success(fmt.Sprintf("%d alerts dismissed", count))
	}
	return c.JSON(fiber.Map{"status": "dismissed", "count": count})
}
