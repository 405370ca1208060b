package models

import "time"

// ContactRequestStatus defines lifecycle states for contact requests.
type ContactRequestStatus string

const (
	// ContactRequestStatusPending indicates the request is awaiting the donor's response.
	ContactRequestStatusPending ContactRequestStatus = "pending"
	// ContactRequestStatusApproved indicates the donor accepted the request.
	ContactRequestStatusApproved ContactRequestStatus = "approved"
	// ContactRequestStatusRejected indicates the donor declined the request.
	ContactRequestStatusRejected ContactRequestStatus = "rejected"
)

// IsTerminal reports whether the status is a final state. Approved and
// rejected requests never transition again.
func (s ContactRequestStatus) IsTerminal() bool {
	return s == ContactRequestStatusApproved || s == ContactRequestStatusRejected
}

// ContactRequest is a requester's solicitation to a donor.
type ContactRequest struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	RequesterID uint                 `gorm:"not null;index" json:"requester_id"`
	DonorID     uint                 `gorm:"not null;index" json:"donor_id"`
	Status      ContactRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message     string               `gorm:"type:text" json:"message,omitempty"`

	// Structured request details, carried alongside the free-text message.
	Hospital     string `json:"hospital,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	RequiredTime string `json:"required_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Donor     *User `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}

// TableName specifies the table name for GORM
func (ContactRequest) TableName() string {
	return "contact_requests"
}

// ContactRequestInbox is a contact request joined with the requester's
// contact details, as shown to the donor.
type ContactRequestInbox struct {
	ID                  uint                 `json:"id"`
	Status              ContactRequestStatus `json:"status"`
	Message             string               `json:"message,omitempty"`
	Hospital            string               `json:"hospital,omitempty"`
	Address             string               `json:"address,omitempty"`
	ContactPhone        string               `json:"contact_phone,omitempty"`
	RequiredTime        string               `json:"required_time,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	RequesterName       string               `json:"requester_name"`
	RequesterEmail      string               `json:"requester_email"`
	RequesterPhone      string               `json:"requester_phone,omitempty"`
	RequesterBloodGroup string               `json:"requester_blood_group"`
	RequesterArea       string               `json:"requester_area"`
}
