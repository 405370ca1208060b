package server

import (
	"lifeline/internal/models"
	"lifeline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateContactRequest handles POST /api/contact-request
func (s *Server) CreateContactRequest(c *fiber.Ctx) error {
	var req struct {
		DonorID      uint   `json:"donorId"`
		Message      string `json:"message"`
		Hospital     string `json:"hospital"`
		Address      string `json:"address"`
		ContactPhone string `json:"contactPhone"`
		RequiredTime string `json:"requiredTime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.DonorID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("donorId is required"))
	}

	request, err := s.requestService.Create(c.Context(), s.currentUserID(c), service.CreateContactRequestInput{
		DonorID:      req.DonorID,
		Message:      req.Message,
		Hospital:     req.Hospital,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
		RequiredTime: req.RequiredTime,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Contact request sent",
		"requestId": request.ID,
	})
}

// GetMyContactRequests handles GET /api/contact-requests. The caller is
// treated as the donor: this is their inbox of received requests.
func (s *Server) GetMyContactRequests(c *fiber.Ctx) error {
	requests, err := s.requestService.Inbox(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// RespondToContactRequest handles PATCH /api/contact-requests
func (s *Server) RespondToContactRequest(c *fiber.Ctx) error {
	var req struct {
		RequestID uint   `json:"requestId"`
		Status    string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RequestID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("requestId is required"))
	}

	request, err := s.requestService.Respond(c.Context(), s.currentUserID(c), req.RequestID,
		models.ContactRequestStatus(req.Status))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Contact request " + string(request.Status),
		"request": request,
	})
}
