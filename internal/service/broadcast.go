package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lifeline/internal/mailer"
	"lifeline/internal/middleware"
	"lifeline/internal/models"
	"lifeline/internal/observability"
	"lifeline/internal/repository"
)

// BulkMessageInput targets an urgent-need message at a set of donors.
type BulkMessageInput struct {
	DonorIDs   []uint
	Message    string
	BloodGroup string
	Hospital   string
}

// BroadcastService sends urgent-need messages to selected donors.
type BroadcastService struct {
	userRepo repository.UserRepository
	mail     MailSender
	events   EventPublisher
}

// NewBroadcastService returns a new BroadcastService.
func NewBroadcastService(userRepo repository.UserRepository, mail MailSender, events EventPublisher) *BroadcastService {
	return &BroadcastService{userRepo: userRepo, mail: mail, events: events}
}

// Send emails each selected donor and publishes a broadcast event. Unknown or
// non-donor IDs are skipped. It returns the number of donors reached; delivery
// itself is best-effort and detached from the request.
func (s *BroadcastService) Send(ctx context.Context, input BulkMessageInput) (int, error) {
	if len(input.DonorIDs) == 0 {
		return 0, models.NewValidationError("At least one donor must be selected")
	}
	if input.Message == "" {
		return 0, models.NewValidationError("Message body is required")
	}
	if input.BloodGroup != "" && !models.IsValidBloodGroup(input.BloodGroup) {
		return 0, models.NewValidationError("Invalid blood group")
	}

	donors := make([]models.User, 0, len(input.DonorIDs))
	for _, id := range input.DonorIDs {
		donor, err := s.userRepo.GetDonorByID(ctx, id)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
				continue
			}
			return 0, err
		}
		donors = append(donors, *donor)
	}
	if len(donors) == 0 {
		return 0, models.NewNotFoundError("Donor", input.DonorIDs[0])
	}

	go s.deliver(donors, input)

	return len(donors), nil
}

func (s *BroadcastService) deliver(donors []models.User, input BulkMessageInput) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for i := range donors {
		donor := &donors[i]
		bloodGroup := input.BloodGroup
		if bloodGroup == "" {
			bloodGroup = donor.BloodGroup
		}
		subject, html, err := mailer.BulkUrgentEmail(mailer.BulkUrgentEmailData{
			DonorName:  donor.Name,
			BloodGroup: bloodGroup,
			Hospital:   input.Hospital,
			Body:       input.Message,
		})
		if err != nil {
			middleware.Logger.Error("Failed to render urgent need email", "error", err)
			return
		}
		if err := s.mail.Send(ctx, mailer.Message{To: []string{donor.Email}, Subject: subject, HTML: html}); err != nil {
			observability.MailSendTotal.WithLabelValues("bulk_urgent", "error").Inc()
			middleware.Logger.Error("Failed to send urgent need email", "error", err, "donor_id", donor.ID)
			continue
		}
		observability.MailSendTotal.WithLabelValues("bulk_urgent", "success").Inc()
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":        "urgent_need",
		"blood_group": input.BloodGroup,
		"hospital":    input.Hospital,
		"donor_count": len(donors),
	})
	if err != nil {
		return
	}
	if err := s.events.PublishBroadcast(ctx, string(payload)); err != nil {
		middleware.Logger.Warn("Failed to publish urgent need broadcast", "error", err)
	}
}
