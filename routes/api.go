package routes

import (
	api_handlers "takvim.link/handlers/api"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerEventRoutes /api/events altındaki rotaları tanımlar.
// Sabit yollar (/deleted, /export.ics) /:id'den önce kaydedilmeli.
func registerEventRoutes(router fiber.Router, eventService services.IEventService) {
	eventHandler := api_handlers.NewEventHandler(eventService)

	events := router.Group("/events")
	events.Get("/", eventHandler.ListEvents)               // GET /api/events
	events.Post("/", eventHandler.CreateEvent)             // POST /api/events
	events.Get("/deleted", eventHandler.ListDeletedEvents) // GET /api/events/deleted
	events.Get("/export.ics", eventHandler.ExportICS)      // GET /api/events/export.ics
	events.Get("/:id", eventHandler.GetEvent)              // GET /api/events/{id}
	events.Put("/:id", eventHandler.UpdateEvent)           // PUT /api/events/{id}
	events.Delete("/:id", eventHandler.DeleteEvent)        // DELETE /api/events/{id}
	events.Post("/:id/recover", eventHandler.RecoverEvent) // POST /api/events/{id}/recover
}

func registerDirectoryRoutes(router fiber.Router, directoryService services.IDirectoryService) {
	directoryHandler := api_handlers.NewDirectoryHandler(directoryService)

	router.Get("/teams", directoryHandler.ListTeams) // GET /api/teams
	router.Get("/users", directoryHandler.ListUsers) // GET /api/users
}
