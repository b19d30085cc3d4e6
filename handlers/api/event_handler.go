package handlers

import (
	"takvim.link/models"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler /api/events uç noktaları için handler.
type EventHandler struct {
	eventService services.IEventService
}

func NewEventHandler(eventService services.IEventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent (POST /api/events)
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var input models.EventInput
	if err := c.BodyParser(&input); err != nil {
		return bodyError(c, err)
	}
	event, err := h.eventService.CreateEvent(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// ListEvents (GET /api/events) en yeni önce.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListEvents(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

// GetEvent (GET /api/events/:id)
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventService.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// UpdateEvent (PUT /api/events/:id) gövde: yama alanları + updateType + instanceDate.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	var req services.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	result, err := h.eventService.UpdateEvent(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// DeleteEvent (DELETE /api/events/:id) soft delete.
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	event, err := h.eventService.DeleteEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted, it can be recovered within 24 hours",
		"event":   event,
	})
}

// ListDeletedEvents (GET /api/events/deleted)
func (h *EventHandler) ListDeletedEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListDeletedEvents(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

// RecoverEvent (POST /api/events/:id/recover)
func (h *EventHandler) RecoverEvent(c *fiber.Ctx) error {
	event, err := h.eventService.RecoverEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// ExportICS (GET /api/events/export.ics)
func (h *EventHandler) ExportICS(c *fiber.Ctx) error {
	body, err := h.eventService.ExportICS(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="events.ics"`)
	return c.SendString(body)
}
