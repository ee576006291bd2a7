package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
)

// statusFor traduce la categoría del error de dominio a un status HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde {"code","message","details"} con el status correspondiente al error.
// Las fallas de storage no exponen la causa al cliente.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	resp := dto.ErrorResponse{
		Code:    domain.CodeOf(err),
		Message: err.Error(),
		Details: domain.FieldsOf(err),
	}
	if kind == domain.KindStorage {
		resp.Message = domain.ErrStorage.Message
	}
	return c.Status(statusFor(kind)).JSON(resp)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo da requisição inválido"})
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.Detailed(domain.ErrInvalidInput, map[string]any{name: c.Params(name)},
			"parâmetro %s inválido", name)
	}
	return int64(id), nil
}
