package blood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LotStatus string

const (
	LotActive  LotStatus = "active"
	LotExpired LotStatus = "expired"
	LotUsed    LotStatus = "used"
)

func (s LotStatus) Valid() bool {
	return s == LotActive || s == LotExpired || s == LotUsed
}

// InventoryLot is a stocked quantity of one blood type at one hospital.
// DonationID is set when the lot was stocked from a recorded donation.
type InventoryLot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BloodType  string         `gorm:"not null;index;column:blood_type" json:"blood_type"`
	Quantity   int            `gorm:"not null;column:quantity" json:"quantity"`
	ExpiryDate time.Time      `gorm:"type:date;not null;column:expiry_date" json:"expiry_date"`
	HospitalID *uuid.UUID     `gorm:"type:uuid;index;column:hospital_id" json:"hospital_id"`
	DonationID *uuid.UUID     `gorm:"type:uuid;index;column:donation_id" json:"donation_id,omitempty"`
	Status     LotStatus      `gorm:"not null;default:active;index;column:status" json:"status"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (InventoryLot) TableName() string { return "blood_inventory" }

func (l *InventoryLot) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LotStatusFor mirrors a donation status onto the lot it stocked.
func LotStatusFor(s DonationStatus) LotStatus {
	switch s {
	case DonationExpired:
		return LotExpired
	case DonationUsed:
		return LotUsed
	default:
		return LotActive
	}
}
