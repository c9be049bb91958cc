package blood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestRejected  RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestFulfilled || s == RequestRejected
}

type Request struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID   uuid.UUID      `gorm:"type:uuid;index;not null;column:requester_id" json:"requester_id"`
	HospitalID    uuid.UUID      `gorm:"type:uuid;index;not null;column:hospital_id" json:"hospital_id"`
	BloodType     string         `gorm:"not null;column:blood_type" json:"blood_type"`
	Quantity      int            `gorm:"not null;column:quantity" json:"quantity"`
	Urgency       Urgency        `gorm:"not null;column:urgency" json:"urgency"`
	Reason        string         `gorm:"column:reason" json:"reason"`
	Status        RequestStatus  `gorm:"not null;default:pending;index;column:status" json:"status"`
	RequestedDate time.Time      `gorm:"type:date;not null;column:requested_date" json:"requested_date"`
	FulfilledDate *time.Time     `gorm:"type:date;column:fulfilled_date" json:"fulfilled_date,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Request) TableName() string { return "blood_requests" }

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
