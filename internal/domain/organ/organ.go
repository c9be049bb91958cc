package organ

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationEligible  DonationStatus = "eligible"
	DonationCompleted DonationStatus = "completed"
	DonationRejected  DonationStatus = "rejected"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationEligible, DonationCompleted, DonationRejected:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestRejected  RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestFulfilled || s == RequestRejected
}

type Donation struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID         uuid.UUID      `gorm:"type:uuid;index;not null;column:donor_id" json:"donor_id"`
	HospitalID      uuid.UUID      `gorm:"type:uuid;index;not null;column:hospital_id" json:"hospital_id"`
	OrganType       string         `gorm:"not null;column:organ_type" json:"organ_type"`
	Status          DonationStatus `gorm:"not null;default:pending;column:status" json:"status"`
	DonationDate    *time.Time     `gorm:"type:date;column:donation_date" json:"donation_date,omitempty"`
	Notes           string         `gorm:"column:notes" json:"notes"`
	HealthCondition string         `gorm:"column:health_condition" json:"health_condition"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Donation) TableName() string { return "organ_donations" }

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Request struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID   uuid.UUID      `gorm:"type:uuid;index;not null;column:requester_id" json:"requester_id"`
	HospitalID    uuid.UUID      `gorm:"type:uuid;index;not null;column:hospital_id" json:"hospital_id"`
	OrganType     string         `gorm:"not null;column:organ_type" json:"organ_type"`
	Urgency       string         `gorm:"not null;column:urgency" json:"urgency"`
	Reason        string         `gorm:"column:reason" json:"reason"`
	Status        RequestStatus  `gorm:"not null;default:pending;column:status" json:"status"`
	RequestedDate time.Time      `gorm:"type:date;not null;column:requested_date" json:"requested_date"`
	FulfilledDate *time.Time     `gorm:"type:date;column:fulfilled_date" json:"fulfilled_date,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Request) TableName() string { return "organ_requests" }

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
