package server

import (
	"lifeline/internal/models"
	"lifeline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BulkMessage handles POST /api/bulk-message. It fans an urgent-need email out
// to each selected donor; delivery is best-effort and happens after the response.
func (s *Server) BulkMessage(c *fiber.Ctx) error {
	var req struct {
		DonorIDs   []uint `json:"donorIds"`
		Message    string `json:"message"`
		BloodGroup string `json:"bloodGroup"`
		Hospital   string `json:"hospital"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	count, err := s.broadcastService.Send(c.Context(), service.BulkMessageInput{
		DonorIDs:   req.DonorIDs,
		Message:    req.Message,
		BloodGroup: req.BloodGroup,
		Hospital:   req.Hospital,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Urgent request sent to donors",
		"donorCount": count,
	})
}
