package routes

import (
	api_handlers "takvim.link/handlers/api"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies rotaların ihtiyaç duyduğu servisler.
type Dependencies struct {
	Events     services.IEventService
	Directory  services.IDirectoryService
	CORSOrigin string
	// AccessLog false ise istek loglama middleware'i eklenmez (testler).
	AccessLog bool
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	origin := deps.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/", api_handlers.Root)
	app.Get("/health", api_handlers.Health)

	// --- Rota Grupları ---
	apiGroup := app.Group("/api")
	registerEventRoutes(apiGroup, deps.Events)
	registerDirectoryRoutes(apiGroup, deps.Directory)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(api_handlers.NotFound)
}
