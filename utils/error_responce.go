package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondError maps a scheduling-core error onto the HTTP response. Domain
// conflicts answer 400 rather than 409 because the frontend renders them as
// ordinary form errors. Store failures are logged with the operation name
// and answered with a generic message only.
func RespondError(c *fiber.Ctx, op string, err error) error {
	var ve *scheduling.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg})
	}
	var ce *scheduling.ConflictError
	if errors.As(err, &ce) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ce.Msg})
	}
	var ne *scheduling.NotFoundError
	if errors.As(err, &ne) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ne.Msg})
	}
	var ae *scheduling.AuthorizationError
	if errors.As(err, &ae) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ae.Msg})
	}

	log.Printf("%s: %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
	})
}
