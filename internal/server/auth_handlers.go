package server

import (
	"errors"
	"strings"

	"lifeline/internal/models"
	"lifeline/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register. Self-registered users are listed
// as donors immediately; sign-in itself happens at the identity provider.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		BloodGroup string `json:"bloodGroup"`
		Area       string `json:"area"`
		City       string `json:"city"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Store the address in the same canonical form identity resolution uses,
	// so a later provider sign-in binds to this row instead of a placeholder.
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if !models.IsValidBloodGroup(req.BloodGroup) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid blood group"))
	}
	if err := validation.ValidateLocation("area", req.Area); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLocation("city", req.City); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:        email,
		Name:         req.Name,
		Phone:        req.Phone,
		BloodGroup:   req.BloodGroup,
		Area:         req.Area,
		City:         req.City,
		IsDonor:      true,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Email already registered"))
		}
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"userId":  user.ID,
	})
}

// Login handles POST /api/auth/login. Password login has been retired in
// favor of the external identity provider; the route stays registered so old
// clients get an explanatory error instead of a 404.
func (s *Server) Login(c *fiber.Ctx) error {
	return c.Status(fiber.StatusGone).JSON(fiber.Map{
		"error": "Password login has been retired. Sign in through the identity provider.",
	})
}
