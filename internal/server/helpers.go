package server

import (
	"strconv"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the user ID the auth middleware stored on the request.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// parseIDParam parses a numeric route parameter, rejecting zero and garbage.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(id), nil
}

// fail writes the standardized error body with the status the error maps to.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
