package blood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationActive  DonationStatus = "active"
	DonationExpired DonationStatus = "expired"
	DonationUsed    DonationStatus = "used"
)

func (s DonationStatus) Valid() bool {
	return s == DonationActive || s == DonationExpired || s == DonationUsed
}

type Donation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID      uuid.UUID      `gorm:"type:uuid;index;not null;column:donor_id" json:"donor_id"`
	HospitalID   uuid.UUID      `gorm:"type:uuid;index;not null;column:hospital_id" json:"hospital_id"`
	BloodType    string         `gorm:"not null;column:blood_type" json:"blood_type"`
	Quantity     int            `gorm:"not null;column:quantity" json:"quantity"`
	DonationDate time.Time      `gorm:"type:date;not null;column:donation_date" json:"donation_date"`
	ExpiryDate   time.Time      `gorm:"type:date;not null;column:expiry_date" json:"expiry_date"`
	Status       DonationStatus `gorm:"not null;default:active;column:status" json:"status"`
	Notes        string         `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Donation) TableName() string { return "blood_donations" }

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
