package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lifeline/internal/mailer"
	"lifeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

type requestRepoStub struct {
	createPendingFn func(context.Context, *models.ContactRequest) error
	getByIDFn       func(context.Context, uint) (*models.ContactRequest, error)
	listForDonorFn  func(context.Context, uint) ([]models.ContactRequestInbox, error)
	updateStatusFn  func(context.Context, uint, uint, models.ContactRequestStatus) (*models.ContactRequest, error)
}

func (s *requestRepoStub) CreatePending(ctx context.Context, request *models.ContactRequest) error {
	return s.createPendingFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.ContactRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) ListForDonor(ctx context.Context, donorID uint) ([]models.ContactRequestInbox, error) {
	return s.listForDonorFn(ctx, donorID)
}
func (s *requestRepoStub) UpdateStatus(ctx context.Context, id, donorID uint, status models.ContactRequestStatus) (*models.ContactRequest, error) {
	return s.updateStatusFn(ctx, id, donorID, status)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		createPendingFn: func(_ context.Context, r *models.ContactRequest) error {
			r.ID = 1
			r.Status = models.ContactRequestStatusPending
			return nil
		},
		getByIDFn: func(context.Context, uint) (*models.ContactRequest, error) {
			return &models.ContactRequest{}, nil
		},
		listForDonorFn: func(context.Context, uint) ([]models.ContactRequestInbox, error) { return nil, nil },
		updateStatusFn: func(_ context.Context, id, donorID uint, status models.ContactRequestStatus) (*models.ContactRequest, error) {
			return &models.ContactRequest{ID: id, DonorID: donorID, Status: status}, nil
		},
	}
}

type mailStub struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *mailStub) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mailStub) Enabled() bool { return true }

func (m *mailStub) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mailStub) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type eventsStub struct {
	mu        sync.Mutex
	created   []uint
	resolved  []models.ContactRequestStatus
	broadcast []string
}

func (e *eventsStub) PublishContactRequestCreated(_ context.Context, donorID uint, _ *models.ContactRequest, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, donorID)
	return nil
}

func (e *eventsStub) PublishContactRequestResolved(_ context.Context, request *models.ContactRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolved = append(e.resolved, request.Status)
	return nil
}

func (e *eventsStub) PublishBroadcast(_ context.Context, payload string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.broadcast = append(e.broadcast, payload)
	return nil
}

func (e *eventsStub) createdCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.created)
}

func (e *eventsStub) resolvedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.resolved)
}

func (e *eventsStub) broadcastCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.broadcast)
}

func TestRequestServiceCreateToSelf(t *testing.T) {
	svc := NewRequestService(noopRequestRepo(), noopUserRepo(), &mailStub{}, &eventsStub{})

	_, err := svc.Create(context.Background(), 5, CreateContactRequestInput{DonorID: 5})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
}

func TestRequestServiceCreateUnknownDonor(t *testing.T) {
	users := noopUserRepo()
	users.getDonorByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("Donor", id)
	}
	svc := NewRequestService(noopRequestRepo(), users, &mailStub{}, &eventsStub{})

	_, err := svc.Create(context.Background(), 5, CreateContactRequestInput{DonorID: 9})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestRequestServiceCreateNotifiesDonor(t *testing.T) {
	users := noopUserRepo()
	users.getDonorByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Dulal", Email: "dulal@example.com", BloodGroup: "O-", IsDonor: true}, nil
	}
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Rina", Email: "rina@example.com", Area: "Mirpur"}, nil
	}
	mail := &mailStub{}
	events := &eventsStub{}
	svc := NewRequestService(noopRequestRepo(), users, mail, events)

	request, err := svc.Create(context.Background(), 5, CreateContactRequestInput{
		DonorID:      9,
		Message:      "Need O- urgently",
		Hospital:     "Dhaka Medical College",
		Address:      "Ward 7, Secretariat Road",
		ContactPhone: "01811111111",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequestStatusPending, request.Status)
	assert.Equal(t, uint(5), request.RequesterID)
	assert.Equal(t, uint(9), request.DonorID)

	assert.Eventually(t, func() bool {
		return mail.count() == 1 && events.createdCount() == 1
	}, time.Second, 10*time.Millisecond)
	sent := mail.last()
	assert.Equal(t, []string{"dulal@example.com"}, sent.To)
	// Replies go straight to the requester, not the notification address.
	assert.Equal(t, "rina@example.com", sent.ReplyTo)
	assert.Contains(t, sent.Subject, "Rina")
	assert.Contains(t, sent.HTML, "Mirpur")
	assert.Contains(t, sent.HTML, "Ward 7, Secretariat Road")
	assert.Contains(t, sent.HTML, "01811111111")
}

func TestRequestServiceCreatePropagatesConflict(t *testing.T) {
	repo := noopRequestRepo()
	repo.createPendingFn = func(context.Context, *models.ContactRequest) error {
		return models.NewConflictError("a pending request to this donor already exists")
	}
	mail := &mailStub{}
	svc := NewRequestService(repo, noopUserRepo(), mail, &eventsStub{})

	_, err := svc.Create(context.Background(), 5, CreateContactRequestInput{DonorID: 9})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", errCode(t, err))
	assert.Equal(t, 0, mail.count())
}

func TestRequestServiceRespondRequiresTerminalStatus(t *testing.T) {
	svc := NewRequestService(noopRequestRepo(), noopUserRepo(), &mailStub{}, &eventsStub{})

	_, err := svc.Respond(context.Background(), 9, 1, models.ContactRequestStatusPending)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
}

func TestRequestServiceRespondPublishesResolution(t *testing.T) {
	events := &eventsStub{}
	svc := NewRequestService(noopRequestRepo(), noopUserRepo(), &mailStub{}, events)

	request, err := svc.Respond(context.Background(), 9, 1, models.ContactRequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequestStatusApproved, request.Status)

	assert.Eventually(t, func() bool { return events.resolvedCount() == 1 }, time.Second, 10*time.Millisecond)
}
