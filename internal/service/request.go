package service

import (
	"context"
	"time"

	"lifeline/internal/mailer"
	"lifeline/internal/middleware"
	"lifeline/internal/models"
	"lifeline/internal/observability"
	"lifeline/internal/repository"
)

// MailSender delivers transactional email.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
	Enabled() bool
}

// EventPublisher pushes domain events to connected clients.
type EventPublisher interface {
	PublishContactRequestCreated(ctx context.Context, donorID uint, request *models.ContactRequest, requesterName string) error
	PublishContactRequestResolved(ctx context.Context, request *models.ContactRequest) error
	PublishBroadcast(ctx context.Context, payload string) error
}

// CreateContactRequestInput carries the requester-supplied fields of a new request.
type CreateContactRequestInput struct {
	DonorID      uint
	Message      string
	Hospital     string
	Address      string
	ContactPhone string
	RequiredTime string
}

// RequestService implements the contact-request workflow between requesters and donors.
type RequestService struct {
	requestRepo repository.ContactRequestRepository
	userRepo    repository.UserRepository
	mail        MailSender
	events      EventPublisher
}

// NewRequestService returns a new RequestService.
func NewRequestService(requestRepo repository.ContactRequestRepository, userRepo repository.UserRepository, mail MailSender, events EventPublisher) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		mail:        mail,
		events:      events,
	}
}

// Create opens a pending contact request from the requester to the donor and
// notifies the donor out of band. Notification failures never fail the request.
func (s *RequestService) Create(ctx context.Context, requesterID uint, input CreateContactRequestInput) (*models.ContactRequest, error) {
	if input.DonorID == requesterID {
		return nil, models.NewValidationError("You cannot send a contact request to yourself")
	}

	donor, err := s.userRepo.GetDonorByID(ctx, input.DonorID)
	if err != nil {
		observability.ContactRequestsTotal.WithLabelValues("create", "donor_not_found").Inc()
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	request := &models.ContactRequest{
		RequesterID:  requesterID,
		DonorID:      donor.ID,
		Message:      input.Message,
		Hospital:     input.Hospital,
		Address:      input.Address,
		ContactPhone: input.ContactPhone,
		RequiredTime: input.RequiredTime,
	}
	if err := s.requestRepo.CreatePending(ctx, request); err != nil {
		observability.ContactRequestsTotal.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}
	observability.ContactRequestsTotal.WithLabelValues("create", "success").Inc()

	go s.notifyDonor(donor, requester, request)

	return request, nil
}

// notifyDonor delivers the new-request email and realtime event. Runs detached
// from the request context so client disconnects do not cancel delivery.
func (s *RequestService) notifyDonor(donor, requester *models.User, request *models.ContactRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subject, html, err := mailer.ContactRequestEmail(mailer.ContactRequestEmailData{
		DonorName:     donor.Name,
		RequesterName: requester.Name,
		RequesterArea: requester.Area,
		BloodGroup:    donor.BloodGroup,
		Hospital:      request.Hospital,
		Address:       request.Address,
		ContactPhone:  request.ContactPhone,
		RequiredTime:  request.RequiredTime,
		Message:       request.Message,
	})
	msg := mailer.Message{
		To:      []string{donor.Email},
		ReplyTo: requester.Email,
		Subject: subject,
		HTML:    html,
	}
	if err != nil {
		middleware.Logger.Error("Failed to render contact request email", "error", err, "request_id", request.ID)
	} else if err := s.mail.Send(ctx, msg); err != nil {
		observability.MailSendTotal.WithLabelValues("contact_request", "error").Inc()
		middleware.Logger.Error("Failed to send contact request email", "error", err, "request_id", request.ID)
	} else {
		observability.MailSendTotal.WithLabelValues("contact_request", "success").Inc()
	}

	if err := s.events.PublishContactRequestCreated(ctx, donor.ID, request, requester.Name); err != nil {
		middleware.Logger.Warn("Failed to publish contact request event", "error", err, "request_id", request.ID)
	}
}

// Inbox returns the donor's received requests, newest first, with the
// requester's contact details joined in.
func (s *RequestService) Inbox(ctx context.Context, donorID uint) ([]models.ContactRequestInbox, error) {
	return s.requestRepo.ListForDonor(ctx, donorID)
}

// Respond records the donor's decision on a pending request. Only the donor
// the request is addressed to may respond, and a decided request stays decided.
func (s *RequestService) Respond(ctx context.Context, donorID, requestID uint, status models.ContactRequestStatus) (*models.ContactRequest, error) {
	if !status.IsTerminal() {
		return nil, models.NewValidationError("Status must be approved or rejected")
	}

	request, err := s.requestRepo.UpdateStatus(ctx, requestID, donorID, status)
	if err != nil {
		observability.ContactRequestsTotal.WithLabelValues("respond", "rejected").Inc()
		return nil, err
	}
	observability.ContactRequestsTotal.WithLabelValues("respond", string(status)).Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.events.PublishContactRequestResolved(ctx, request); err != nil {
			middleware.Logger.Warn("Failed to publish request resolution event", "error", err, "request_id", request.ID)
		}
	}()

	return request, nil
}
