package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
	"github.com/jhoicas/wms-estanterias/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP. Solo los 5xx se registran.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyOccupied):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_OCCUPIED", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyAvailable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_AVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// pathParam devuelve un parámetro de ruta decodificado ("Rua%20A-01-01" → "Rua A-01-01").
// El valor se copia: sin Immutable, fiber reutiliza el buffer de la petición.
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if raw == "" {
		return "", errors.New(name + " es requerido")
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", errors.New(name + " mal codificado")
	}
	return utils.CopyString(v), nil
}
