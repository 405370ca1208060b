package server

import (
	"lifeline/internal/models"
	"lifeline/internal/repository"
	"lifeline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchDonors handles GET /api/donors. All filters are optional exact matches.
func (s *Server) SearchDonors(c *fiber.Ctx) error {
	filter := repository.DonorFilter{
		BloodGroup: c.Query("bloodGroup"),
		City:       c.Query("city"),
		Area:       c.Query("area"),
	}

	donors, err := s.donorService.Search(c.Context(), filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"donors": donors,
		"count":  len(donors),
	})
}

// GetDonor handles GET /api/donors/:id
func (s *Server) GetDonor(c *fiber.Ctx) error {
	donorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.donorService.Get(c.Context(), donorID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	return c.JSON(fiber.Map{
		"isDonor": user.IsDonor,
		"donor":   user,
	})
}

// UpdateMyProfile handles PATCH /api/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Phone      *string `json:"phone"`
		BloodGroup *string `json:"bloodGroup"`
		Area       *string `json:"area"`
		City       *string `json:"city"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.donorService.UpdateProfile(c.Context(), s.currentUserID(c), service.UpdateProfileInput{
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		Area:       req.Area,
		City:       req.City,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"donor":   user,
	})
}
