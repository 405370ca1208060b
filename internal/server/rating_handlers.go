package server

import (
	"lifeline/internal/models"
	"lifeline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitRating handles POST /api/ratings
func (s *Server) SubmitRating(c *fiber.Ctx) error {
	var req struct {
		DonorID uint   `json:"donorId"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.DonorID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("donorId is required"))
	}

	created, err := s.ratingService.Submit(c.Context(), s.currentUserID(c), service.SubmitRatingInput{
		DonorID: req.DonorID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	status := fiber.StatusOK
	message := "Rating updated"
	if created {
		status = fiber.StatusCreated
		message = "Rating submitted"
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// GetRatings handles GET /api/ratings?donorId=
func (s *Server) GetRatings(c *fiber.Ctx) error {
	donorID := c.QueryInt("donorId")
	if donorID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("donorId is required"))
	}
	return s.respondWithRatings(c, uint(donorID))
}

// GetDonorRatings handles GET /api/donors/:id/ratings
func (s *Server) GetDonorRatings(c *fiber.Ctx) error {
	donorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.respondWithRatings(c, donorID)
}

func (s *Server) respondWithRatings(c *fiber.Ctx, donorID uint) error {
	ratings, summary, err := s.ratingService.List(c.Context(), donorID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"ratings":       ratings,
		"averageRating": summary.Average,
		"totalRatings":  summary.Count,
	})
}
