package handlers

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse tüm hata yanıtlarının gövdesi.
type ErrorResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Errors  []services.FieldError `json:"errors,omitempty"`
}

func errorJSON(c *fiber.Ctx, status int, message string, fields []services.FieldError) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: message, Errors: fields})
}

// respondError servis hatasını durum koduna çevirir. Depolama hataları ayrıntı sızdırmaz.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorJSON(c, fiber.StatusBadRequest, "Validation error", verr.Fields)
	case errors.Is(err, services.ErrEventNotFound):
		return errorJSON(c, fiber.StatusNotFound, services.ErrEventNotFound.Error(), nil)
	case errors.Is(err, services.ErrEventAlreadyDeleted):
		return errorJSON(c, fiber.StatusBadRequest, services.ErrEventAlreadyDeleted.Error(), nil)
	case errors.Is(err, services.ErrEventNotDeleted):
		return errorJSON(c, fiber.StatusBadRequest, services.ErrEventNotDeleted.Error(), nil)
	case errors.Is(err, services.ErrRetentionExpired):
		return errorJSON(c, fiber.StatusBadRequest, services.ErrRetentionExpired.Error(), nil)
	}

	if !errors.Is(err, services.ErrStorageFailure) {
		configslog.Log.Error("Beklenmeyen handler hatası", zap.String("path", c.Path()), zap.Error(err))
	}
	return errorJSON(c, fiber.StatusInternalServerError, "internal error", nil)
}

// bodyError gövde çözümlenemediğinde alan listesiyle 400 döner.
func bodyError(c *fiber.Ctx, err error) error {
	configslog.Log.Debug("İstek gövdesi çözümlenemedi", zap.String("path", c.Path()), zap.Error(err))
	return errorJSON(c, fiber.StatusBadRequest, "Validation error", []services.FieldError{{Field: "body", Message: err.Error()}})
}
