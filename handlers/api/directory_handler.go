package handlers

import (
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler takım ve kullanıcı referans listeleri.
type DirectoryHandler struct {
	directoryService services.IDirectoryService
}

func NewDirectoryHandler(directoryService services.IDirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// ListTeams (GET /api/teams)
func (h *DirectoryHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.directoryService.ListTeams(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(teams)
}

// ListUsers (GET /api/users)
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directoryService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
