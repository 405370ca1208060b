package repository

import (
	"context"
	"errors"

	"lifeline/internal/models"

	"gorm.io/gorm"
)

// ContactRequestRepository defines persistence operations for contact requests.
type ContactRequestRepository interface {
	CreatePending(ctx context.Context, request *models.ContactRequest) error
	GetByID(ctx context.Context, id uint) (*models.ContactRequest, error)
	ListForDonor(ctx context.Context, donorID uint) ([]models.ContactRequestInbox, error)
	UpdateStatus(ctx context.Context, id, donorID uint, status models.ContactRequestStatus) (*models.ContactRequest, error)
}

type contactRequestRepository struct {
	db *gorm.DB
}

// NewContactRequestRepository returns a new ContactRequestRepository implementation.
func NewContactRequestRepository(db *gorm.DB) ContactRequestRepository {
	return &contactRequestRepository{db: db}
}

// CreatePending inserts a new pending request unless the requester already has
// a pending one to the same donor. The duplicate check and the insert run in a
// single transaction so concurrent submissions cannot both pass the check.
func (r *contactRequestRepository) CreatePending(ctx context.Context, request *models.ContactRequest) error {
	request.Status = models.ContactRequestStatusPending

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ContactRequest{}).
			Where("requester_id = ? AND donor_id = ? AND status = ?",
				request.RequesterID, request.DonorID, models.ContactRequestStatusPending).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewConflictError("a pending request to this donor already exists")
		}
		if err := tx.Create(request).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}

func (r *contactRequestRepository) GetByID(ctx context.Context, id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Donor").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *contactRequestRepository) ListForDonor(ctx context.Context, donorID uint) ([]models.ContactRequestInbox, error) {
	inbox := []models.ContactRequestInbox{}

	// Join requester contact details so the donor can reach back out.
	if err := r.db.WithContext(ctx).
		Table("contact_requests").
		Select(`contact_requests.id, contact_requests.status, contact_requests.message,
			contact_requests.hospital, contact_requests.address, contact_requests.contact_phone,
			contact_requests.required_time, contact_requests.created_at,
			users.name AS requester_name, users.email AS requester_email,
			users.phone AS requester_phone, users.blood_group AS requester_blood_group,
			users.area AS requester_area`).
		Joins("JOIN users ON users.id = contact_requests.requester_id").
		Where("contact_requests.donor_id = ?", donorID).
		Order("contact_requests.created_at DESC").
		Scan(&inbox).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return inbox, nil
}

// UpdateStatus transitions a pending request to the given status. The row is
// looked up by id and donor so a donor can only act on requests addressed to
// them; a mismatch reads as not found. Approved and rejected requests are
// final and answer any further transition with a conflict.
func (r *contactRequestRepository) UpdateStatus(ctx context.Context, id, donorID uint, status models.ContactRequestStatus) (*models.ContactRequest, error) {
	var request models.ContactRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND donor_id = ?", id, donorID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Contact request", id)
			}
			return models.NewInternalError(err)
		}
		if request.Status.IsTerminal() {
			return models.NewConflictError("contact request has already been " + string(request.Status))
		}
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
